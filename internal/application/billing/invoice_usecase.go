package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/invoice"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

const (
	invoicesTable     = "invoices"
	invoiceItemsTable = "invoice_items"
)

// InvoiceUseCase invoice creation, reads and line attachment.
type InvoiceUseCase struct {
	tx          BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	audit       *audit.Recorder
	now         func() time.Time
}

// NewInvoiceUseCase builds the use case. invoiceRepo serves reads outside transactions.
func NewInvoiceUseCase(tx BillingTxRunner, invoiceRepo repository.InvoiceRepository, rec *audit.Recorder) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, invoiceRepo: invoiceRepo, audit: rec, now: time.Now}
}

// Create stores an invoice without lines: subtotal 0, total = tax.
// The customer must belong to the same company (domain.ErrCustomerNotFound,
// reported as invalid input) and the number must be unused in the company
// (domain.ErrDuplicate).
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	in.InvoiceNumber = strings.TrimSpace(in.InvoiceNumber)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	var tax decimal.NullDecimal
	if in.Tax != nil {
		tax = decimal.NewNullDecimal(*in.Tax)
	}
	if err := invoice.ValidateTax(tax); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		InvoiceNumber: in.InvoiceNumber,
		Title:         in.Title,
		TitleAr:       in.TitleAr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		Tax:           tax,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if userID != "" {
		inv.CreatedByUserID = &userID
	}
	invoice.Init(inv)

	err := uc.tx.RunBilling(ctx, func(customerRepo repository.CustomerRepository, _ repository.ItemRepository, invoiceRepo repository.InvoiceRepository) error {
		customer, err := customerRepo.GetByID(ctx, companyID, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.Reference(domain.ErrCustomerNotFound)
		}
		taken, err := invoiceRepo.NumberTaken(ctx, companyID, inv.InvoiceNumber)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, inv.InvoiceNumber)
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	out := toInvoiceResponse(inv, nil)
	uc.audit.Created(ctx, companyID, invoicesTable, inv.ID, out)
	return out, nil
}

// GetByID invoice with its lines.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	lines, err := uc.invoiceRepo.ItemsByInvoiceIDs(ctx, []string{inv.ID})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, lines[inv.ID]), nil
}

// List newest first, each invoice with its lines.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ListResponse[dto.InvoiceResponse], error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, inv := range list {
		ids = append(ids, inv.ID)
	}
	lines, err := uc.invoiceRepo.ItemsByInvoiceIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, lines[inv.ID]))
	}
	return &dto.ListResponse[dto.InvoiceResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// AddItems attaches a batch of lines to the invoice with the given id.
func (uc *InvoiceUseCase) AddItems(ctx context.Context, companyID, invoiceID string, in dto.AddInvoiceItemsRequest) (*dto.InvoiceResponse, error) {
	return uc.addItems(ctx, companyID, in, func(r repository.InvoiceRepository) (*entity.Invoice, error) {
		return r.LockByID(ctx, companyID, invoiceID)
	})
}

// AddItemsByNumber same as AddItems, addressing the invoice by its number.
// The number is trimmed the same way Create stores it.
func (uc *InvoiceUseCase) AddItemsByNumber(ctx context.Context, companyID, number string, in dto.AddInvoiceItemsRequest) (*dto.InvoiceResponse, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.ErrInvoiceNotFound
	}
	return uc.addItems(ctx, companyID, in, func(r repository.InvoiceRepository) (*entity.Invoice, error) {
		return r.LockByNumber(ctx, companyID, number)
	})
}

// addItems runs the whole batch in one transaction holding the invoice row
// lock: every catalog item must exist in the company or nothing is written
// (domain.ErrItemNotFound). Concurrent batches on the same invoice add up.
func (uc *InvoiceUseCase) addItems(
	ctx context.Context,
	companyID string,
	in dto.AddInvoiceItemsRequest,
	lock func(repository.InvoiceRepository) (*entity.Invoice, error),
) (*dto.InvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}

	var (
		before *dto.InvoiceResponse
		out    *dto.InvoiceResponse
		added  []*entity.InvoiceItem
	)
	err := uc.tx.RunBilling(ctx, func(_ repository.CustomerRepository, itemRepo repository.ItemRepository, invoiceRepo repository.InvoiceRepository) error {
		inv, err := lock(invoiceRepo)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrInvoiceNotFound
		}
		before = toInvoiceResponse(inv, nil)

		catalog, err := itemRepo.GetByIDs(ctx, companyID, uniqueItemIDs(in.Items))
		if err != nil {
			return err
		}

		now := uc.now().UTC()
		lines := make([]*entity.InvoiceItem, 0, len(in.Items))
		for _, req := range in.Items {
			item, ok := catalog[req.ItemID]
			if !ok {
				return domain.Reference(fmt.Errorf("%w: %s", domain.ErrItemNotFound, req.ItemID))
			}
			price := item.UnitPrice
			if req.UnitPrice != nil {
				price = *req.UnitPrice
			}
			if err := invoice.ValidateLine(req.Quantity, price); err != nil {
				return err
			}
			lines = append(lines, &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ItemID:    item.ID,
				Snapshot:  snapshotFor(item, req),
				Quantity:  req.Quantity,
				UnitPrice: price,
				CreatedAt: now,
			})
		}

		if _, err := invoice.ApplyBatch(inv, lines); err != nil {
			return err
		}
		inv.UpdatedAt = now
		if err := invoiceRepo.AddItems(ctx, lines); err != nil {
			return err
		}
		if err := invoiceRepo.UpdateTotals(ctx, inv); err != nil {
			return err
		}
		all, err := invoiceRepo.ItemsByInvoiceIDs(ctx, []string{inv.ID})
		if err != nil {
			return err
		}
		out = toInvoiceResponse(inv, all[inv.ID])
		added = lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, l := range added {
		uc.audit.Created(ctx, companyID, invoiceItemsTable, l.ID, toInvoiceItemResponse(l))
	}
	after := *out
	after.Items = nil
	uc.audit.Modified(ctx, companyID, invoicesTable, out.ID, before, &after)
	return out, nil
}

// snapshotFor texts given on the request win; the rest come from the catalog.
func snapshotFor(item *entity.Item, req dto.InvoiceItemRequest) entity.ItemSnapshot {
	s := item.Snapshot()
	if req.Name != "" {
		s.Name = req.Name
	}
	if req.NameAr != "" {
		s.NameAr = req.NameAr
	}
	if req.Description != "" {
		s.Description = req.Description
	}
	if req.DescriptionAr != "" {
		s.DescriptionAr = req.DescriptionAr
	}
	return s
}

func uniqueItemIDs(lines []dto.InvoiceItemRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	return ids
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceItem) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:              inv.ID,
		CompanyID:       inv.CompanyID,
		CustomerID:      inv.CustomerID,
		InvoiceNumber:   inv.InvoiceNumber,
		Title:           inv.Title,
		TitleAr:         inv.TitleAr,
		Description:     inv.Description,
		DescriptionAr:   inv.DescriptionAr,
		Subtotal:        inv.Subtotal,
		Total:           inv.Total,
		CreatedByUserID: inv.CreatedByUserID,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Items:           make([]dto.InvoiceItemResponse, 0, len(lines)),
	}
	if inv.Tax.Valid {
		tax := inv.Tax.Decimal
		out.Tax = &tax
	}
	for _, l := range lines {
		out.Items = append(out.Items, *toInvoiceItemResponse(l))
	}
	return out
}

func toInvoiceItemResponse(l *entity.InvoiceItem) *dto.InvoiceItemResponse {
	return &dto.InvoiceItemResponse{
		ID:            l.ID,
		ItemID:        l.ItemID,
		Name:          l.Snapshot.Name,
		NameAr:        l.Snapshot.NameAr,
		Description:   l.Snapshot.Description,
		DescriptionAr: l.Snapshot.DescriptionAr,
		Quantity:      l.Quantity,
		UnitPrice:     l.UnitPrice,
		Total:         l.Total,
	}
}
