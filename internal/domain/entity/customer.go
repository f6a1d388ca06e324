package entity

import "time"

// Customer billed party of a company. Email and Phone are optional and,
// when present, unique within the company.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	NameAr    string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
