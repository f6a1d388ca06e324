package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// PDFUseCase renders an invoice of the caller's company as PDF.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase builds the use case.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF returns the PDF bytes and a file name. Lines are printed
// from their snapshots, never from the current catalog.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get invoice: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrInvoiceNotFound
	}
	lines, err := uc.invoiceRepo.ItemsByInvoiceIDs(ctx, []string{inv.ID})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get lines: %w", err)
	}
	inv.Items = lines[inv.ID]

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get company: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrCompanyNotFound
	}
	customer, err := uc.customerRepo.GetByID(ctx, companyID, inv.CustomerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: get customer: %w", err)
	}
	if customer == nil {
		return nil, "", domain.ErrCustomerNotFound
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, InvoiceDocument{Invoice: inv, Company: company, Customer: customer})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render: %w", err)
	}
	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber), nil
}
