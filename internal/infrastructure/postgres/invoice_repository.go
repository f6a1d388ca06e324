package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo InvoiceRepository over a pool or a tx. The Lock* methods only
// make sense inside a transaction.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository pass a pool or a tx.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, invoice_number, title, title_ar, description, description_ar,
	subtotal, tax, total, created_by_user_id, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.InvoiceNumber, &inv.Title, &inv.TitleAr,
		&inv.Description, &inv.DescriptionAr, &inv.Subtotal, &inv.Tax, &inv.Total,
		&inv.CreatedByUserID, &inv.CreatedAt, &inv.UpdatedAt,
	)
	return &inv, err
}

func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, inv.CustomerID, inv.InvoiceNumber, inv.Title, inv.TitleAr,
		inv.Description, inv.DescriptionAr, inv.Subtotal, inv.Tax, inv.Total,
		inv.CreatedByUserID, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Reference(domain.ErrCustomerNotFound)
		}
		return writeErr("insert invoice", err)
	}
	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, op, where string, args ...any) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + where
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, "get invoice", `company_id = $1 AND id = $2`, companyID, id)
}

func (r *InvoiceRepo) GetByNumber(ctx context.Context, companyID, number string) (*entity.Invoice, error) {
	return r.getOne(ctx, "get invoice by number", `company_id = $1 AND invoice_number = $2`, companyID, number)
}

// LockByID SELECT ... FOR UPDATE: concurrent batches on the same invoice
// queue behind the lock, so each reads the subtotal the previous one wrote.
func (r *InvoiceRepo) LockByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, "lock invoice", `company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *InvoiceRepo) LockByNumber(ctx context.Context, companyID, number string) (*entity.Invoice, error) {
	return r.getOne(ctx, "lock invoice by number", `company_id = $1 AND invoice_number = $2 FOR UPDATE`, companyID, number)
}

func (r *InvoiceRepo) NumberTaken(ctx context.Context, companyID, number string) (bool, error) {
	var taken bool
	query := `SELECT EXISTS (SELECT 1 FROM invoices WHERE company_id = $1 AND invoice_number = $2)`
	if err := r.q.QueryRow(ctx, query, companyID, number).Scan(&taken); err != nil {
		return false, fmt.Errorf("invoice number check: %w", err)
	}
	return taken, nil
}

func (r *InvoiceRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) ItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error) {
	out := make(map[string][]*entity.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return out, nil
	}
	for _, id := range invoiceIDs {
		out[id] = []*entity.InvoiceItem{}
	}
	query := `
		SELECT id, invoice_id, item_id, name, name_ar, description, description_ar,
		       quantity, unit_price, total, created_at
		FROM invoice_items
		WHERE invoice_id = ANY($1::uuid[])
		ORDER BY invoice_id, seq`
	rows, err := r.q.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceItem
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ItemID, &l.Snapshot.Name, &l.Snapshot.NameAr,
			&l.Snapshot.Description, &l.Snapshot.DescriptionAr,
			&l.Quantity, &l.UnitPrice, &l.Total, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		out[l.InvoiceID] = append(out[l.InvoiceID], &l)
	}
	return out, rows.Err()
}

// AddItems inserts the lines as one batch; seq keeps the attach order.
func (r *InvoiceRepo) AddItems(ctx context.Context, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, item_id, name, name_ar, description, description_ar,
		                           quantity, unit_price, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for _, l := range items {
		batch.Queue(query,
			l.ID, l.InvoiceID, l.ItemID, l.Snapshot.Name, l.Snapshot.NameAr,
			l.Snapshot.Description, l.Snapshot.DescriptionAr,
			l.Quantity, l.UnitPrice, l.Total, l.CreatedAt,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.Reference(domain.ErrItemNotFound)
			}
			return writeErr("insert invoice item", err)
		}
	}
	return nil
}

func (r *InvoiceRepo) UpdateTotals(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET subtotal = $3, total = $4, updated_at = $5
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, inv.CompanyID, inv.ID, inv.Subtotal, inv.Total, inv.UpdatedAt)
	if err != nil {
		return writeErr("update invoice totals", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
