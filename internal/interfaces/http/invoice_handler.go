package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
)

// InvoiceHandler invoices of the caller's company and their line items.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Create POST /api/invoices. Starts with no lines: subtotal 0, total = tax.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return err
	}
	return created(c, "/api/invoices/"+out.ID, out)
}

// List GET /api/invoices, newest first, lines included.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrInvoiceNotFound)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddItems POST /api/invoices/:id/items. The whole batch lands or none of it;
// the response is the invoice with its new totals.
func (h *InvoiceHandler) AddItems(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrInvoiceNotFound)
	if err != nil {
		return err
	}
	var in dto.AddInvoiceItemsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddItems(c.UserContext(), GetCompanyID(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddItemsByNumber POST /api/invoices/number/:number/items. The number is
// percent-decoded, so "INV%207" and "A%2F1" reach "INV 7" and "A/1".
func (h *InvoiceHandler) AddItemsByNumber(c *fiber.Ctx) error {
	number, err := url.PathUnescape(c.Params("number"))
	if err != nil || number == "" {
		return domain.ErrInvoiceNotFound
	}
	var in dto.AddInvoiceItemsRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddItemsByNumber(c.UserContext(), GetCompanyID(c), number, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id", domain.ErrInvoiceNotFound)
	if err != nil {
		return err
	}
	body, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), GetCompanyID(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(body)
}
