package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body of POST /api/invoices. Totals are never accepted
// from the client; the invoice starts with no lines.
type CreateInvoiceRequest struct {
	InvoiceNumber string           `json:"invoiceNumber" validate:"required,max=50"`
	Title         string           `json:"title" validate:"required,max=200"`
	TitleAr       string           `json:"titleAr" validate:"required,max=200,arabic"`
	Description   string           `json:"description" validate:"max=1000"`
	DescriptionAr string           `json:"descriptionAr" validate:"omitempty,max=1000,arabic"`
	CustomerID    string           `json:"customerId" validate:"required,uuid"`
	Tax           *decimal.Decimal `json:"tax,omitempty"`
}

// AddInvoiceItemsRequest batch of lines attached atomically.
type AddInvoiceItemsRequest struct {
	Items []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// InvoiceItemRequest one line. UnitPrice and the texts default to the catalog item.
type InvoiceItemRequest struct {
	ItemID        string           `json:"itemId" validate:"required,uuid"`
	Quantity      int              `json:"quantity" validate:"gte=1,lte=2147483647"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty" validate:"omitempty,money"`
	Name          string           `json:"name,omitempty" validate:"omitempty,max=100,english"`
	NameAr        string           `json:"nameAr,omitempty" validate:"omitempty,max=100,arabic"`
	Description   string           `json:"description,omitempty" validate:"max=500"`
	DescriptionAr string           `json:"descriptionAr,omitempty" validate:"omitempty,max=500,arabic"`
}

// InvoiceResponse invoice header with its lines.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	CompanyID       string                `json:"companyId"`
	CustomerID      string                `json:"customerId"`
	InvoiceNumber   string                `json:"invoiceNumber"`
	Title           string                `json:"title"`
	TitleAr         string                `json:"titleAr"`
	Description     string                `json:"description,omitempty"`
	DescriptionAr   string                `json:"descriptionAr,omitempty"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Tax             *decimal.Decimal      `json:"tax"`
	Total           decimal.Decimal       `json:"total"`
	CreatedByUserID *string               `json:"createdByUserId,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	Items           []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse a line with its snapshot texts.
type InvoiceItemResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"itemId"`
	Name          string          `json:"name"`
	NameAr        string          `json:"nameAr"`
	Description   string          `json:"description,omitempty"`
	DescriptionAr string          `json:"descriptionAr,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Total         decimal.Decimal `json:"total"`
}
