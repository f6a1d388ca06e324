package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Invoicing-api/internal/application/auth"
	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/domain/policy"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// AppOptions fiber server settings.
type AppOptions struct {
	Name         string
	Production   bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewApp builds the fiber app with the global middleware chain (request id,
// language, access log + metrics, panic recovery), /health and, when metrics
// is not nil, /metrics.
func NewApp(opts AppOptions, log *logger.Logger, metrics *Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log, opts.Production),
	})
	app.Use(requestid.New())
	app.Use(LanguageMiddleware())
	app.Use(AccessLog(log, metrics))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	if metrics != nil {
		app.Get("/metrics", metrics.Handler())
	}
	return app
}

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CompanyUC  *usecase.CompanyUseCase
	RoleUC     *usecase.RoleUseCase
	UserUC     *usecase.UserUseCase
	ItemUC     *usecase.ItemUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	InvoicePDF *billing.PDFUseCase
	JWT        jwt.Config
	Metrics    *Metrics
}

// Router registers the API routes. Everything except login requires a token,
// a resolvable tenant and the policy named on the route.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	api.Post("/auth/login", authHandler.Login)

	authn := AuthMiddleware(deps.JWT)
	tenantMW := TenantMiddleware()
	can := RequirePolicy

	companies := api.Group("/companies", authn, tenantMW)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/my", can(policy.CompanyViewOwn), companyHandler.GetMine)
	companies.Post("/", can(policy.CompanyMutate), companyHandler.Create)
	companies.Get("/:id", can(policy.CompanyView), companyHandler.GetByID)
	companies.Put("/:id", can(policy.CompanyMutate), companyHandler.Update)
	companies.Delete("/:id", can(policy.CompanyMutate), companyHandler.Delete)

	customers := api.Group("/customers", authn, tenantMW)
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", can(policy.CustomerView), customerHandler.List)
	customers.Post("/", can(policy.CustomerMutate), customerHandler.Create)
	customers.Get("/:id", can(policy.CustomerView), customerHandler.GetByID)
	customers.Put("/:id", can(policy.CustomerMutate), customerHandler.Update)
	customers.Delete("/:id", can(policy.CustomerMutate), customerHandler.Delete)

	items := api.Group("/items", authn, tenantMW)
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", can(policy.ItemView), itemHandler.List)
	items.Post("/", can(policy.ItemMutate), itemHandler.Create)
	items.Get("/:id", can(policy.ItemView), itemHandler.GetByID)
	items.Put("/:id", can(policy.ItemMutate), itemHandler.Update)
	items.Delete("/:id", can(policy.ItemMutate), itemHandler.Delete)

	roles := api.Group("/roles", authn, tenantMW)
	roleHandler := NewRoleHandler(deps.RoleUC)
	roles.Get("/", can(policy.RoleView), roleHandler.List)
	roles.Post("/", can(policy.RoleMutate), roleHandler.Create)
	roles.Get("/:id", can(policy.RoleView), roleHandler.GetByID)
	roles.Put("/:id", can(policy.RoleMutate), roleHandler.Update)
	roles.Delete("/:id", can(policy.RoleMutate), roleHandler.Delete)

	users := api.Group("/users", authn, tenantMW, can(policy.UserManage))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	invoices := api.Group("/invoices", authn, tenantMW)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Get("/", can(policy.ViewInvoice), invoiceHandler.List)
	invoices.Post("/", can(policy.CreateInvoice), invoiceHandler.Create)
	invoices.Post("/number/:number/items", can(policy.CreateInvoiceItems), invoiceHandler.AddItemsByNumber)
	invoices.Get("/:id", can(policy.ViewInvoice), invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", can(policy.ViewInvoice), invoiceHandler.DownloadPDF)
	invoices.Post("/:id/items", can(policy.CreateInvoiceItems), invoiceHandler.AddItems)
}
