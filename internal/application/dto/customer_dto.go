package dto

import "time"

// CustomerRequest body for creating or updating a customer.
type CustomerRequest struct {
	Name   string  `json:"name" validate:"required,max=100,english"`
	NameAr string  `json:"nameAr" validate:"required,max=100,arabic"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email,max=100"`
	Phone  *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// CustomerResponse read projection of a customer.
type CustomerResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	NameAr    string    `json:"nameAr"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
