package entity

import "time"

// User belongs to a company and holds a role of the same company.
// (CompanyID, Email) and (CompanyID, Username) are unique.
type User struct {
	ID           string
	CompanyID    string
	RoleID       string
	Username     string
	Email        string
	PasswordHash string // base64(salt‖key), never the plain secret
	FullName     string
	FullNameAr   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithRole user joined with its role name, used at login.
type UserWithRole struct {
	User
	RoleName string
}
