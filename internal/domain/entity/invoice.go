package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice header. Total is always Subtotal + Tax (absent tax counts as zero)
// and is never set directly.
type Invoice struct {
	ID              string
	CompanyID       string
	CustomerID      string
	InvoiceNumber   string
	Title           string
	TitleAr         string
	Description     string
	DescriptionAr   string
	Subtotal        decimal.Decimal
	Tax             decimal.NullDecimal
	Total           decimal.Decimal
	CreatedByUserID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []*InvoiceItem
}

// TaxOrZero tax amount, zero when absent.
func (i *Invoice) TaxOrZero() decimal.Decimal {
	if i.Tax.Valid {
		return i.Tax.Decimal
	}
	return decimal.Zero
}
