package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Invoicing-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
	pkgjwt "github.com/jhoicas/Invoicing-api/pkg/jwt"
)

const (
	testUserID    = "00000000-0000-4000-8000-000000000001"
	testCompanyID = "00000000-0000-4000-8000-000000000002"
	testRoleID    = "00000000-0000-4000-8000-000000000003"
)

var testJWT = pkgjwt.Config{
	Secret:     "test-secret-key-for-unit-tests",
	Issuer:     "invoicing-test",
	Audience:   "invoicing-test-clients",
	ExpMinutes: 60,
}

// buildTestApp minimal app: AuthMiddleware + RequireRole + a handler that
// answers 200 when both let the request through.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(logger.Nop(), false)})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWT),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenFor(t *testing.T, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWT, testUserID, companyID, testRoleID, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AllowedRolePasses(t *testing.T) {
	app := buildTestApp("Admin")
	resp := getProtected(t, app, tokenFor(t, testCompanyID, "Admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Admin", body["role"])
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	app := buildTestApp("Admin", "Accountant")
	resp := getProtected(t, app, tokenFor(t, testCompanyID, "accountant"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_OtherRoleForbidden(t *testing.T) {
	app := buildTestApp("Admin")
	resp := getProtected(t, app, tokenFor(t, testCompanyID, "User"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenWithoutRole(t *testing.T) {
	app := buildTestApp("Admin")
	resp := getProtected(t, app, tokenFor(t, testCompanyID, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	resp := getProtected(t, buildTestApp("Admin"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	for _, header := range []string{"Bearer token.invalid.here", "Basic abc", "Bearer"} {
		resp := getProtected(t, buildTestApp("Admin"), header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_WrongAudienceRejected(t *testing.T) {
	other := testJWT
	other.Audience = "someone-else"
	tok, err := pkgjwt.Generate(other, testUserID, testCompanyID, testRoleID, "Admin")
	require.NoError(t, err)

	resp := getProtected(t, buildTestApp("Admin"), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtractsClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWT), apphttp.TenantMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testCompanyID, "Manager"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, "Manager", body["role"])
}

func TestTenantMiddleware_ClaimBeatsHeader(t *testing.T) {
	const headerCompany = "00000000-0000-4000-8000-0000000000ff"
	app := fiber.New()
	app.Get("/tenant", apphttp.AuthMiddleware(testJWT), apphttp.TenantMiddleware(), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetCompanyID(c))
	})

	call := func(companyClaim, header string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
		req.Header.Set("Authorization", tokenFor(t, companyClaim, "Admin"))
		if header != "" {
			req.Header.Set("X-Company-Id", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(b)
	}

	status, body := call(testCompanyID, headerCompany)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, testCompanyID, body)

	status, body = call("", headerCompany)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, headerCompany, body)

	status, _ = call("", "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call("", "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, http.StatusBadRequest, status)
}
