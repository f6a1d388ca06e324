package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// InvoiceRepository persistence port for invoices and their lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	GetByNumber(ctx context.Context, companyID, number string) (*entity.Invoice, error)
	// LockByID / LockByNumber read the header and hold a row lock until the
	// surrounding transaction ends.
	LockByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	LockByNumber(ctx context.Context, companyID, number string) (*entity.Invoice, error)
	NumberTaken(ctx context.Context, companyID, number string) (bool, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Invoice, error)
	// ItemsByInvoiceIDs returns the lines of each invoice in attach order.
	ItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error)
	AddItems(ctx context.Context, items []*entity.InvoiceItem) error
	UpdateTotals(ctx context.Context, invoice *entity.Invoice) error
}
