package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemSnapshot catalog texts copied onto a line when it is attached.
// Later catalog edits never change it.
type ItemSnapshot struct {
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
}

// InvoiceItem line of an invoice. Total = Quantity × UnitPrice.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ItemID    string
	Snapshot  ItemSnapshot
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
}
