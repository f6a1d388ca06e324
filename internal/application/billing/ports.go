package billing

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// BillingTxRunner runs fn inside one storage transaction with repositories
// bound to it. A non-nil error from fn rolls everything back.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		itemRepo repository.ItemRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceDocument everything needed to render an invoice. Invoice.Items holds the lines.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
}

// InvoicePDFGenerator renders an invoice document to PDF bytes.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
