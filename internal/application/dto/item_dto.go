package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest body for creating or updating a catalog item.
type ItemRequest struct {
	Name          string          `json:"name" validate:"required,max=100,english"`
	NameAr        string          `json:"nameAr" validate:"required,max=100,arabic"`
	Description   string          `json:"description" validate:"max=500"`
	DescriptionAr string          `json:"descriptionAr" validate:"omitempty,max=500,arabic"`
	UnitPrice     decimal.Decimal `json:"unitPrice" validate:"money"`
}

// ItemResponse read projection of an item.
type ItemResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"companyId"`
	Name          string          `json:"name"`
	NameAr        string          `json:"nameAr"`
	Description   string          `json:"description,omitempty"`
	DescriptionAr string          `json:"descriptionAr,omitempty"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
