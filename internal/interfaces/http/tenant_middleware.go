package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/domain/tenant"
	"github.com/jhoicas/Invoicing-api/pkg/i18n"
)

// TenantMiddleware resolves the acting company once per request: token
// claim, then X-Company-Id, then a value already in the pipeline. Handlers
// only read the result through GetCompanyID. It also puts the caller into
// the request context for the audit trail.
func TenantMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, err := tenant.Resolve(tenant.Sources{
			Claim:    localString(c, LocalClaimCompany),
			Header:   c.Get(tenant.HeaderName),
			Pipeline: localString(c, LocalCompanyID),
		})
		if err != nil {
			return respond(c, fiber.StatusBadRequest, "INVALID_TENANT", i18n.MsgInvalidTenant)
		}
		c.Locals(LocalCompanyID, companyID)
		c.SetUserContext(audit.WithActor(c.UserContext(), GetUserID(c)))
		return c.Next()
	}
}
