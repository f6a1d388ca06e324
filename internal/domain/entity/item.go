package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item catalog entry with a positive unit price.
type Item struct {
	ID            string
	CompanyID     string
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	UnitPrice     decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Snapshot captures the current catalog texts.
func (i *Item) Snapshot() ItemSnapshot {
	return ItemSnapshot{
		Name:          i.Name,
		NameAr:        i.NameAr,
		Description:   i.Description,
		DescriptionAr: i.DescriptionAr,
	}
}
