package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo in-memory InvoiceRepository. Lock* are plain reads: the
// TxRunner already serializes transactions.
type InvoiceRepo struct {
	s    *Store
	undo *undoLog // set on repositories bound to a transaction
}

func NewInvoiceRepository(s *Store) *InvoiceRepo {
	return &InvoiceRepo{s: s}
}

func storedInvoice(inv *entity.Invoice) *entity.Invoice {
	cp := clone(inv)
	cp.Items = nil
	return cp
}

func (r *InvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[invoice.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if c, ok := r.s.customers[invoice.CustomerID]; !ok || c.CompanyID != invoice.CompanyID {
		return domain.ErrCustomerNotFound
	}
	if r.numberTakenLocked(invoice.CompanyID, invoice.InvoiceNumber) {
		return domain.ErrDuplicate
	}
	r.s.invoices[invoice.ID] = storedInvoice(invoice)
	r.s.track(invoice.ID)
	r.undo.add(undoInsert(r.s, r.s.invoices, invoice.ID))
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.invoices[id]; ok && v.CompanyID == companyID {
		return clone(v), nil
	}
	return nil, nil
}

func (r *InvoiceRepo) GetByNumber(_ context.Context, companyID, number string) (*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.invoices {
		if v.CompanyID == companyID && v.InvoiceNumber == number {
			return clone(v), nil
		}
	}
	return nil, nil
}

func (r *InvoiceRepo) LockByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *InvoiceRepo) LockByNumber(ctx context.Context, companyID, number string) (*entity.Invoice, error) {
	return r.GetByNumber(ctx, companyID, number)
}

func (r *InvoiceRepo) NumberTaken(_ context.Context, companyID, number string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.numberTakenLocked(companyID, number), nil
}

func (r *InvoiceRepo) numberTakenLocked(companyID, number string) bool {
	for _, v := range r.s.invoices {
		if v.CompanyID == companyID && v.InvoiceNumber == number {
			return true
		}
	}
	return false
}

func (r *InvoiceRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.Invoice
	for _, v := range r.s.invoices {
		if v.CompanyID == companyID {
			rows = append(rows, clone(v))
		}
	}
	newestFirst(r.s, rows, func(v *entity.Invoice) string { return v.ID }, func(v *entity.Invoice) time.Time { return v.CreatedAt })
	return page(rows, limit, offset), nil
}

func (r *InvoiceRepo) ItemsByInvoiceIDs(_ context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string][]*entity.InvoiceItem, len(invoiceIDs))
	for _, id := range invoiceIDs {
		lines := r.s.invoiceItems[id]
		cp := make([]*entity.InvoiceItem, 0, len(lines))
		for _, l := range lines {
			cp = append(cp, clone(l))
		}
		out[id] = cp
	}
	return out, nil
}

func (r *InvoiceRepo) AddItems(_ context.Context, items []*entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range items {
		inv, ok := r.s.invoices[l.InvoiceID]
		if !ok {
			return domain.ErrInvoiceNotFound
		}
		if it, ok := r.s.items[l.ItemID]; !ok || it.CompanyID != inv.CompanyID {
			return domain.ErrItemNotFound
		}
	}
	for _, l := range items {
		r.s.invoiceItems[l.InvoiceID] = append(r.s.invoiceItems[l.InvoiceID], clone(l))
		r.s.track(l.ID)
		r.undo.add(r.undoLine(l.InvoiceID, l.ID))
	}
	return nil
}

func (r *InvoiceRepo) UpdateTotals(_ context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.invoices[invoice.ID]
	if !ok || cur.CompanyID != invoice.CompanyID {
		return domain.ErrInvoiceNotFound
	}
	cp := clone(cur)
	cp.Subtotal = invoice.Subtotal
	cp.Total = invoice.Total
	cp.UpdatedAt = invoice.UpdatedAt
	r.s.invoices[invoice.ID] = cp
	r.undo.add(undoReplace(r.s.invoices, invoice.ID, cur))
	return nil
}

// undoLine drops one attached line, leaving the invoice's other lines alone.
func (r *InvoiceRepo) undoLine(invoiceID, lineID string) func() {
	return func() {
		lines := r.s.invoiceItems[invoiceID]
		kept := make([]*entity.InvoiceItem, 0, len(lines))
		for _, l := range lines {
			if l.ID != lineID {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(r.s.invoiceItems, invoiceID)
		} else {
			r.s.invoiceItems[invoiceID] = kept
		}
		delete(r.s.order, lineID)
	}
}
