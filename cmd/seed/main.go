// seed applies the schema and creates the bootstrap company, Admin role and
// administrator account in PostgreSQL.
//
// Usage: SEED_ADMIN_PASSWORD=... go run ./cmd/seed
// Safe to run again: an existing bootstrap company leaves the database untouched.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/application/seed"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Invoicing-api/pkg/config"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
	"github.com/jhoicas/Invoicing-api/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	seeder := seed.NewSeeder(
		postgres.NewCompanyRepository(pool),
		postgres.NewRoleRepository(pool),
		postgres.NewUserRepository(pool),
		password.NewHasher(cfg.Password.Iterations),
		log,
	)
	created, err := seeder.Run(ctx, seed.Admin{
		Username: cfg.Seed.AdminUsername,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	fmt.Printf("seed done (created=%t, company=%s)\n", created, seed.CompanyID)
}
