package dto

import "time"

// CreateUserRequest the password is hashed by the use case.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,max=50,english"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Password   string `json:"password" validate:"required,min=6,max=100"`
	FullName   string `json:"fullName" validate:"required,max=100,english"`
	FullNameAr string `json:"fullNameAr" validate:"required,max=100,arabic"`
	RoleID     string `json:"roleId" validate:"required,uuid"`
}

// UpdateUserRequest an empty password keeps the current one.
type UpdateUserRequest struct {
	Username   string `json:"username" validate:"required,max=50,english"`
	Email      string `json:"email" validate:"required,email,max=100"`
	Password   string `json:"password" validate:"omitempty,min=6,max=100"`
	FullName   string `json:"fullName" validate:"required,max=100,english"`
	FullNameAr string `json:"fullNameAr" validate:"required,max=100,arabic"`
	RoleID     string `json:"roleId" validate:"required,uuid"`
}

// UserResponse never includes the password hash.
type UserResponse struct {
	ID         string    `json:"id"`
	CompanyID  string    `json:"companyId"`
	RoleID     string    `json:"roleId"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	FullNameAr string    `json:"fullNameAr"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
