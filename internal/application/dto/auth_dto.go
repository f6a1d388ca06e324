package dto

// LoginRequest body of POST /api/auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required,max=100"`
	Password        string `json:"password" validate:"required"`
}

// LoginResponse issued token plus the identity it carries.
type LoginResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	RoleID    string `json:"roleId"`
	RoleName  string `json:"roleName"`
}
