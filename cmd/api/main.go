package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/auth"
	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/seed"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Invoicing-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Invoicing-api/internal/interfaces/http"
	"github.com/jhoicas/Invoicing-api/pkg/config"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
	"github.com/jhoicas/Invoicing-api/pkg/password"
)

// repositories storage selected by DB_DRIVER.
type repositories struct {
	company  repository.CompanyRepository
	role     repository.RoleRepository
	user     repository.UserRepository
	customer repository.CustomerRepository
	item     repository.ItemRepository
	invoice  repository.InvoiceRepository
	audit    repository.AuditRepository
	tx       billing.BillingTxRunner
	close    func()
}

func openPostgres(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*repositories, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("database schema up to date")
	}
	return &repositories{
		company:  postgres.NewCompanyRepository(pool),
		role:     postgres.NewRoleRepository(pool),
		user:     postgres.NewUserRepository(pool),
		customer: postgres.NewCustomerRepository(pool),
		item:     postgres.NewItemRepository(pool),
		invoice:  postgres.NewInvoiceRepository(pool),
		audit:    postgres.NewAuditRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}

func openMemory() *repositories {
	s := memory.NewStore()
	return &repositories{
		company:  memory.NewCompanyRepository(s),
		role:     memory.NewRoleRepository(s),
		user:     memory.NewUserRepository(s),
		customer: memory.NewCustomerRepository(s),
		item:     memory.NewItemRepository(s),
		invoice:  memory.NewInvoiceRepository(s),
		audit:    memory.NewAuditRepository(s),
		tx:       memory.NewTxRunner(s),
		close:    func() {},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("starting application")

	ctx := context.Background()
	var repos *repositories
	if cfg.DB.Driver == "memory" {
		repos = openMemory()
		log.Warn().Msg("in-memory storage: data is lost on exit")
	} else {
		repos, err = openPostgres(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
	}
	defer repos.close()

	jwtCfg := jwt.Config{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Audience:   cfg.JWT.Audience,
		ExpMinutes: cfg.JWT.Expiration,
	}
	hasher := password.NewHasher(cfg.Password.Iterations)
	recorder := audit.NewRecorder(repos.audit, log)

	if cfg.Seed.AdminPassword != "" {
		seeder := seed.NewSeeder(repos.company, repos.role, repos.user, hasher, log)
		if _, err := seeder.Run(ctx, seed.Admin{
			Username: cfg.Seed.AdminUsername,
			Email:    cfg.Seed.AdminEmail,
			Password: cfg.Seed.AdminPassword,
		}); err != nil {
			log.Fatal().Err(err).Msg("seed bootstrap administrator")
		}
	}

	var metrics *httpRouter.Metrics
	if cfg.App.MetricsEnabled {
		metrics = httpRouter.NewMetrics("invoicing")
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:         cfg.App.Name,
		Production:   cfg.App.IsProduction(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}, log, metrics)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     auth.NewAuthUseCase(repos.user, hasher, jwtCfg, log),
		CompanyUC:  usecase.NewCompanyUseCase(repos.company, recorder),
		RoleUC:     usecase.NewRoleUseCase(repos.role, recorder),
		UserUC:     usecase.NewUserUseCase(repos.user, repos.role, hasher, recorder),
		ItemUC:     usecase.NewItemUseCase(repos.item, recorder),
		CustomerUC: billing.NewCustomerUseCase(repos.customer, recorder),
		InvoiceUC:  billing.NewInvoiceUseCase(repos.tx, repos.invoice, recorder),
		InvoicePDF: billing.NewPDFUseCase(repos.invoice, repos.company, repos.customer, infrapdf.NewMarotoPDFGenerator()),
		JWT:        jwtCfg,
		Metrics:    metrics,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
