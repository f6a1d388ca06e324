package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/auth"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/tenant"
)

// AuthHandler handles login.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *Metrics
}

func NewAuthHandler(uc *auth.AuthUseCase, metrics *Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: metrics}
}

// Login POST /api/auth/login. An X-Company-Id header narrows the lookup to
// one company. Unknown user and wrong password produce the same response.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	var companyID string
	if raw := c.Get(tenant.HeaderName); raw != "" {
		id, ok := tenant.Parse(raw)
		if !ok {
			return domain.ErrInvalidTenant
		}
		companyID = id
	}
	out, err := h.uc.Login(c.UserContext(), companyID, in)
	if err != nil {
		h.metrics.LoginAttempt("failure")
		return err
	}
	h.metrics.LoginAttempt("success")
	return c.JSON(out)
}
