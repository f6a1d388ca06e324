package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/auth"
	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/memory"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Invoicing-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Invoicing-api/pkg/jwt"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
	"github.com/jhoicas/Invoicing-api/pkg/password"
)

const (
	companyA  = "6f1c1a52-6a0b-4d55-9a57-2d0c0a6e6a01"
	companyB  = "0b7e43f4-90a3-45a0-8d67-5b1f4fd2c102"
	adminRole = "a0000000-0000-4000-8000-000000000001"
	userA     = "c0000000-0000-4000-8000-000000000001"
)

type server struct {
	app   *fiber.App
	store *memory.Store
}

func newServer(t *testing.T) *server {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	log := logger.Nop()
	hasher := password.NewHasher(1000)
	rec := audit.NewRecorder(memory.NewAuditRepository(s), log)

	companyRepo := memory.NewCompanyRepository(s)
	roleRepo := memory.NewRoleRepository(s)
	userRepo := memory.NewUserRepository(s)
	customerRepo := memory.NewCustomerRepository(s)
	itemRepo := memory.NewItemRepository(s)
	invoiceRepo := memory.NewInvoiceRepository(s)

	require.NoError(t, companyRepo.Create(ctx, &entity.Company{ID: companyA, Name: "Acme", NameAr: "أكمي"}))
	require.NoError(t, companyRepo.Create(ctx, &entity.Company{ID: companyB, Name: "Globex", NameAr: "جلوبكس"}))
	require.NoError(t, roleRepo.Create(ctx, &entity.Role{ID: adminRole, CompanyID: companyA, Name: entity.RoleAdmin, NameAr: "مدير"}))
	hash, err := hasher.Hash("s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, &entity.User{
		ID: userA, CompanyID: companyA, RoleID: adminRole,
		Username: "alice", Email: "alice@acme.test", PasswordHash: hash,
		FullName: "Alice", FullNameAr: "أليس",
	}))

	metrics := apphttp.NewMetrics("invoicing")
	app := apphttp.NewApp(apphttp.AppOptions{Name: "invoicing-test"}, log, metrics)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(userRepo, hasher, testJWT, log),
		CompanyUC:  usecase.NewCompanyUseCase(companyRepo, rec),
		RoleUC:     usecase.NewRoleUseCase(roleRepo, rec),
		UserUC:     usecase.NewUserUseCase(userRepo, roleRepo, hasher, rec),
		ItemUC:     usecase.NewItemUseCase(itemRepo, rec),
		CustomerUC: billing.NewCustomerUseCase(customerRepo, rec),
		InvoiceUC:  billing.NewInvoiceUseCase(memory.NewTxRunner(s), invoiceRepo, rec),
		InvoicePDF: billing.NewPDFUseCase(invoiceRepo, companyRepo, customerRepo, pdf.NewMarotoPDFGenerator()),
		JWT:        testJWT,
		Metrics:    metrics,
	})
	return &server{app: app, store: s}
}

type reply struct {
	status int
	header http.Header
	body   []byte
}

func (r reply) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, out), string(r.body))
}

func (r reply) errorBody(t *testing.T) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	r.decode(t, &e)
	return e
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}, headers ...string) reply {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return reply{status: resp.StatusCode, header: resp.Header, body: b}
}

// admin signs a token for the seeded administrator, scoped to companyID.
func admin(t *testing.T, companyID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWT, userA, companyID, adminRole, entity.RoleAdmin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestLogin_IssuesTokenForValidCredentials(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "ALICE", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, r.status, string(r.body))

	var out dto.LoginResponse
	r.decode(t, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, userA, out.UserID)
	assert.Equal(t, companyA, out.CompanyID)
	assert.Equal(t, entity.RoleAdmin, out.RoleName)

	claims, err := pkgjwt.Parse(testJWT, out.Token)
	require.NoError(t, err)
	assert.Equal(t, companyA, claims.CompanyID)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	s := newServer(t)
	wrong := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "alice", Password: "nope-nope"})
	unknown := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "mallory", Password: "nope-nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.status)
	assert.Equal(t, wrong.status, unknown.status)
	assert.JSONEq(t, string(wrong.body), string(unknown.body))
	assert.Equal(t, "INVALID_CREDENTIALS", wrong.errorBody(t).Code)
}

func TestLogin_HeaderScopesTenant(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "alice", Password: "s3cret-pass"},
		"X-Company-Id", companyB)
	assert.Equal(t, http.StatusUnauthorized, r.status)

	r = s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "alice", Password: "s3cret-pass"},
		"X-Company-Id", "garbage")
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "INVALID_TENANT", r.errorBody(t).Code)
}

func TestCompanies_MyUsesClaimOverHeader(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodGet, "/api/companies/my", admin(t, companyA), nil, "X-Company-Id", companyB)
	require.Equal(t, http.StatusOK, r.status)

	var c dto.CompanyResponse
	r.decode(t, &c)
	assert.Equal(t, companyA, c.ID)
	assert.Equal(t, "Acme", c.Name)
}

func TestCompanies_OtherTenantIsNotFound(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodGet, "/api/companies/"+companyB, admin(t, companyA), nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "COMPANY_NOT_FOUND", r.errorBody(t).Code)
}

func TestPolicy_UserRoleCannotMutateItems(t *testing.T) {
	s := newServer(t)
	user := tokenFor(t, companyA, entity.RoleUser)

	r := s.do(t, http.MethodPost, "/api/items", user, dto.ItemRequest{Name: "Chair", NameAr: "كرسي", UnitPrice: decimal.RequireFromString("10.00")})
	assert.Equal(t, http.StatusForbidden, r.status)

	r = s.do(t, http.MethodGet, "/api/items", user, nil)
	assert.Equal(t, http.StatusOK, r.status)

	r = s.do(t, http.MethodGet, "/api/users", tokenFor(t, companyA, entity.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, r.status)
}

func TestItems_ChairLifecycle(t *testing.T) {
	s := newServer(t)
	tok := admin(t, companyA)
	req := dto.ItemRequest{Name: "Chair", NameAr: "كرسي", Description: "Wooden chair", UnitPrice: decimal.RequireFromString("49.99")}

	r := s.do(t, http.MethodPost, "/api/items", tok, req)
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var item dto.ItemResponse
	r.decode(t, &item)
	assert.Equal(t, "/api/items/"+item.ID, r.header.Get("Location"))
	assert.True(t, decimal.RequireFromString("49.99").Equal(item.UnitPrice))

	r = s.do(t, http.MethodPost, "/api/items", tok, req)
	assert.Equal(t, http.StatusConflict, r.status)
	assert.Equal(t, "DUPLICATE", r.errorBody(t).Code)

	// same name in another company is fine
	r = s.do(t, http.MethodPost, "/api/items", admin(t, companyB), req)
	assert.Equal(t, http.StatusCreated, r.status)

	r = s.do(t, http.MethodGet, "/api/items/"+item.ID, admin(t, companyB), nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = s.do(t, http.MethodDelete, "/api/items/"+item.ID, admin(t, companyB), nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = s.do(t, http.MethodGet, "/api/items/not-a-uuid", tok, nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = s.do(t, http.MethodDelete, "/api/items/"+item.ID, tok, nil)
	assert.Equal(t, http.StatusNoContent, r.status)
}

func TestValidation_ReportsFieldsAndLocalizes(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodPost, "/api/items", admin(t, companyA),
		map[string]interface{}{"name": "Chair 2", "nameAr": "chair", "unitPrice": "1.999"},
		"Accept-Language", "ar")
	require.Equal(t, http.StatusBadRequest, r.status)

	e := r.errorBody(t)
	assert.Equal(t, "INVALID_INPUT", e.Code)
	assert.Equal(t, "الطلب يحتوي على بيانات غير صالحة.", e.Message)
	fields := map[string]string{}
	for _, f := range e.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, "english", fields["name"])
	assert.Equal(t, "arabic", fields["nameAr"])
	assert.Equal(t, "money", fields["unitPrice"])
}

func TestMalformedBody(t *testing.T) {
	s := newServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", admin(t, companyA))
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func createInvoiceFixture(t *testing.T, s *server, tok string) (customerID, chairID, penID string) {
	t.Helper()
	email := "buyer@example.com"
	r := s.do(t, http.MethodPost, "/api/customers", tok, dto.CustomerRequest{Name: "Jane Buyer", NameAr: "جين", Email: &email})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var cu dto.CustomerResponse
	r.decode(t, &cu)

	var chair, pen dto.ItemResponse
	r = s.do(t, http.MethodPost, "/api/items", tok, dto.ItemRequest{Name: "Chair", NameAr: "كرسي", UnitPrice: decimal.RequireFromString("10.00")})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	r.decode(t, &chair)
	r = s.do(t, http.MethodPost, "/api/items", tok, dto.ItemRequest{Name: "Pen", NameAr: "قلم", UnitPrice: decimal.RequireFromString("5.00")})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	r.decode(t, &pen)
	return cu.ID, chair.ID, pen.ID
}

func TestInvoices_TotalsAcrossBatches(t *testing.T) {
	s := newServer(t)
	tok := admin(t, companyA)
	customerID, chairID, penID := createInvoiceFixture(t, s, tok)

	tax := decimal.RequireFromString("3.50")
	r := s.do(t, http.MethodPost, "/api/invoices", tok, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001", Title: "March order", TitleAr: "طلب مارس", CustomerID: customerID, Tax: &tax,
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var inv dto.InvoiceResponse
	r.decode(t, &inv)
	assert.True(t, inv.Subtotal.IsZero())
	assert.True(t, tax.Equal(inv.Total))
	require.NotNil(t, inv.CreatedByUserID)
	assert.Equal(t, userA, *inv.CreatedByUserID)

	r = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/items", tok, dto.AddInvoiceItemsRequest{
		Items: []dto.InvoiceItemRequest{{ItemID: chairID, Quantity: 2}},
	})
	require.Equal(t, http.StatusOK, r.status, string(r.body))

	r = s.do(t, http.MethodPost, "/api/invoices/number/INV-001/items", tok, dto.AddInvoiceItemsRequest{
		Items: []dto.InvoiceItemRequest{{ItemID: penID, Quantity: 1}},
	})
	require.Equal(t, http.StatusOK, r.status, string(r.body))
	r.decode(t, &inv)
	assert.True(t, decimal.RequireFromString("25.00").Equal(inv.Subtotal), inv.Subtotal.String())
	assert.True(t, decimal.RequireFromString("28.50").Equal(inv.Total), inv.Total.String())
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Chair", inv.Items[0].Name)
	assert.True(t, decimal.RequireFromString("20.00").Equal(inv.Items[0].Total))

	// a batch naming a missing item changes nothing
	r = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/items", tok, dto.AddInvoiceItemsRequest{
		Items: []dto.InvoiceItemRequest{{ItemID: chairID, Quantity: 1}, {ItemID: "ffffffff-0000-4000-8000-000000000000", Quantity: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "ITEM_NOT_FOUND", r.errorBody(t).Code)

	r = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID, tok, nil)
	require.Equal(t, http.StatusOK, r.status)
	var after dto.InvoiceResponse
	r.decode(t, &after)
	assert.True(t, decimal.RequireFromString("25.00").Equal(after.Subtotal))
	assert.Len(t, after.Items, 2)

	r = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID, admin(t, companyB), nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "INVOICE_NOT_FOUND", r.errorBody(t).Code)
}

func TestInvoices_ByNumberDecodesPath(t *testing.T) {
	s := newServer(t)
	tok := admin(t, companyA)
	customerID, chairID, _ := createInvoiceFixture(t, s, tok)

	for _, tc := range []struct{ number, path string }{
		{"INV 7", "INV%207"},
		{"A/1", "A%2F1"},
	} {
		r := s.do(t, http.MethodPost, "/api/invoices", tok, dto.CreateInvoiceRequest{
			InvoiceNumber: tc.number, Title: "Spaced", TitleAr: "مسافة", CustomerID: customerID,
		})
		require.Equal(t, http.StatusCreated, r.status, string(r.body))
		var inv dto.InvoiceResponse
		r.decode(t, &inv)

		r = s.do(t, http.MethodPost, "/api/invoices/number/"+tc.path+"/items", tok, dto.AddInvoiceItemsRequest{
			Items: []dto.InvoiceItemRequest{{ItemID: chairID, Quantity: 1}},
		})
		require.Equal(t, http.StatusOK, r.status, "%s: %s", tc.number, string(r.body))
		var out dto.InvoiceResponse
		r.decode(t, &out)
		assert.Equal(t, inv.ID, out.ID)
	}
}

func TestInvoices_OversizedQuantityIsBadRequest(t *testing.T) {
	s := newServer(t)
	tok := admin(t, companyA)
	customerID, chairID, _ := createInvoiceFixture(t, s, tok)

	r := s.do(t, http.MethodPost, "/api/invoices", tok, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-BIG", Title: "Big", TitleAr: "كبير", CustomerID: customerID,
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var inv dto.InvoiceResponse
	r.decode(t, &inv)

	r = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/items", tok,
		map[string]interface{}{"items": []map[string]interface{}{{"itemId": chairID, "quantity": 3000000000}}})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "INVALID_INPUT", r.errorBody(t).Code)

	r = s.do(t, http.MethodPost, "/api/items", tok,
		map[string]interface{}{"name": "Yacht", "nameAr": "يخت", "unitPrice": "10000000000000000"})
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestInvoices_UnknownCustomerIsBadRequest(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodPost, "/api/invoices", admin(t, companyA), dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-404", Title: "Nobody", TitleAr: "لا أحد", CustomerID: "ffffffff-0000-4000-8000-000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, r.status)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", r.errorBody(t).Code)
}

func TestInvoices_PDFDownload(t *testing.T) {
	s := newServer(t)
	tok := admin(t, companyA)
	customerID, chairID, _ := createInvoiceFixture(t, s, tok)

	r := s.do(t, http.MethodPost, "/api/invoices", tok, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-PDF", Title: "Printed", TitleAr: "مطبوع", CustomerID: customerID,
	})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))
	var inv dto.InvoiceResponse
	r.decode(t, &inv)
	r = s.do(t, http.MethodPost, "/api/invoices/"+inv.ID+"/items", tok, dto.AddInvoiceItemsRequest{
		Items: []dto.InvoiceItemRequest{{ItemID: chairID, Quantity: 3}},
	})
	require.Equal(t, http.StatusOK, r.status, string(r.body))

	r = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", tokenFor(t, companyA, entity.RoleAccountant), nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Equal(t, "application/pdf", r.header.Get("Content-Type"))
	assert.Contains(t, r.header.Get("Content-Disposition"), "invoice_INV-PDF.pdf")
	assert.True(t, bytes.HasPrefix(r.body, []byte("%PDF")))
}

func TestAudit_RecordsActorFromToken(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodPost, "/api/roles", admin(t, companyA), dto.RoleRequest{Name: "Auditor", NameAr: "مدقق"})
	require.Equal(t, http.StatusCreated, r.status, string(r.body))

	entries := s.store.AuditEntries()
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, entity.AuditCreated, last.Action)
	assert.Equal(t, userA, last.UserID)
	assert.Equal(t, companyA, last.CompanyID)
}

func TestRoles_DeleteHeldRoleConflicts(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodDelete, "/api/roles/"+adminRole, admin(t, companyA), nil)
	assert.Equal(t, http.StatusConflict, r.status)
	assert.Equal(t, "IN_USE", r.errorBody(t).Code)
}

func TestUnknownRouteAndHealth(t *testing.T) {
	s := newServer(t)
	r := s.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)
	assert.Equal(t, "NOT_FOUND", r.errorBody(t).Code)

	r = s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, r.status)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	s.do(t, http.MethodGet, "/health", "", nil)
	s.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{UsernameOrEmail: "alice", Password: "bad-pass"})

	r := s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), "invoicing_http_requests_total")
	assert.Contains(t, string(r.body), `invoicing_login_attempts_total{outcome="failure"} 1`)
}
