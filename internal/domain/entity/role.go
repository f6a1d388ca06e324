package entity

import "time"

// Well-known role names. Authorization compares names case-insensitively.
const (
	RoleAdmin      = "Admin"
	RoleManager    = "Manager"
	RoleAccountant = "Accountant"
	RoleUser       = "User"
)

// Role belongs to one company; names are not unique.
type Role struct {
	ID            string
	CompanyID     string
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
