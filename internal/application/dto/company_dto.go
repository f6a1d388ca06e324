package dto

import "time"

// CompanyRequest body for creating or updating a company.
type CompanyRequest struct {
	Name          string `json:"name" validate:"required,max=100,english"`
	NameAr        string `json:"nameAr" validate:"required,max=100,arabic"`
	Description   string `json:"description" validate:"max=500"`
	DescriptionAr string `json:"descriptionAr" validate:"omitempty,max=500,arabic"`
}

// CompanyResponse read projection of a company.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	Description   string    `json:"description,omitempty"`
	DescriptionAr string    `json:"descriptionAr,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
