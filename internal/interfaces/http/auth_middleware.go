package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/domain/policy"
	"github.com/jhoicas/Invoicing-api/pkg/i18n"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
)

// Locals keys.
const (
	LocalUserID       = "user_id"
	LocalCompanyID    = "company_id" // resolved tenant
	LocalClaimCompany = "claim_company_id"
	LocalRoleID       = "role_id"
	LocalRole         = "role"
	LocalLang         = "lang"
)

// AuthMiddleware validates the Bearer token and stores the caller identity in
// c.Locals. It does not decide the tenant; TenantMiddleware does.
func AuthMiddleware(cfg jwt.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return respond(c, fiber.StatusUnauthorized, "MISSING_TOKEN", i18n.MsgMissingToken)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return respond(c, fiber.StatusUnauthorized, "INVALID_TOKEN", i18n.MsgInvalidToken)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return respond(c, fiber.StatusUnauthorized, "MISSING_TOKEN", i18n.MsgMissingToken)
		}
		claims, err := jwt.Parse(cfg, tokenString)
		if err != nil || claims.UserID == "" {
			return respond(c, fiber.StatusUnauthorized, "INVALID_TOKEN", i18n.MsgInvalidToken)
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalClaimCompany, claims.CompanyID)
		c.Locals(LocalRoleID, claims.RoleID)
		c.Locals(LocalRole, claims.RoleName)
		return c.Next()
	}
}

// RequireRole lets the request through when the caller's role (compared
// case-insensitively) is one of roles. Use after AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return respond(c, fiber.StatusUnauthorized, "MISSING_ROLE", i18n.MsgInvalidToken)
		}
		if !policy.HasRole(role, roles...) {
			return respond(c, fiber.StatusForbidden, "FORBIDDEN", i18n.MsgForbidden)
		}
		return c.Next()
	}
}

// RequirePolicy RequireRole with the roles of a named policy.
func RequirePolicy(p policy.Policy) fiber.Handler {
	return RequireRole(policy.Roles(p)...)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID caller id (after AuthMiddleware).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID resolved tenant (after TenantMiddleware).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole caller role name (after AuthMiddleware).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetLang response language; English when LanguageMiddleware did not run.
func GetLang(c *fiber.Ctx) i18n.Lang {
	if l, ok := c.Locals(LocalLang).(i18n.Lang); ok {
		return l
	}
	return i18n.English
}
