package entity

import "time"

// Company is the tenant root. Name and NameAr are unique across all companies.
type Company struct {
	ID            string
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
