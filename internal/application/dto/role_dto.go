package dto

import "time"

// RoleRequest body for creating or updating a role.
type RoleRequest struct {
	Name          string `json:"name" validate:"required,max=50,english"`
	NameAr        string `json:"nameAr" validate:"required,max=50,arabic"`
	Description   string `json:"description" validate:"max=250"`
	DescriptionAr string `json:"descriptionAr" validate:"omitempty,max=250,arabic"`
}

// RoleResponse read projection of a role.
type RoleResponse struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"companyId"`
	Name          string    `json:"name"`
	NameAr        string    `json:"nameAr"`
	Description   string    `json:"description,omitempty"`
	DescriptionAr string    `json:"descriptionAr,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
