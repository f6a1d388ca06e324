// Package seed bootstraps an empty installation with one company, its Admin
// role and an administrator account, so the first token can be issued.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// Fixed ids of the bootstrap rows. Re-running the seed finds them and stops.
const (
	CompanyID = "11111111-1111-1111-1111-111111111111"
	RoleID    = "22222222-2222-2222-2222-222222222222"
	UserID    = "33333333-3333-3333-3333-333333333333"
)

var errNoPassword = errors.New("seed: admin password is required")

// Admin credentials of the bootstrap account.
type Admin struct {
	Username string
	Email    string
	Password string
}

// PasswordHasher produces the stored form of a secret.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// Seeder writes the bootstrap rows through the regular repositories.
type Seeder struct {
	companies repository.CompanyRepository
	roles     repository.RoleRepository
	users     repository.UserRepository
	hasher    PasswordHasher
	log       *logger.Logger
}

func NewSeeder(
	companies repository.CompanyRepository,
	roles repository.RoleRepository,
	users repository.UserRepository,
	hasher PasswordHasher,
	log *logger.Logger,
) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{companies: companies, roles: roles, users: users, hasher: hasher, log: log}
}

// Run creates the bootstrap company, role and user unless the company already
// exists. It reports whether anything was written.
func (s *Seeder) Run(ctx context.Context, admin Admin) (bool, error) {
	if admin.Password == "" {
		return false, errNoPassword
	}
	existing, err := s.companies.GetByID(ctx, CompanyID)
	if err != nil {
		return false, fmt.Errorf("seed: look up company: %w", err)
	}
	if existing != nil {
		s.log.Info().Str("company_id", CompanyID).Msg("seed company present, nothing to do")
		return false, nil
	}

	hash, err := s.hasher.Hash(admin.Password)
	if err != nil {
		return false, fmt.Errorf("seed: hash password: %w", err)
	}

	now := time.Now().UTC()
	company := &entity.Company{
		ID:            CompanyID,
		Name:          "Seeded Company",
		NameAr:        "شركة افتراضية",
		Description:   "Created automatically",
		DescriptionAr: "تم الإنشاء تلقائيًا",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return false, fmt.Errorf("seed: company: %w", err)
	}

	role := &entity.Role{
		ID:            RoleID,
		CompanyID:     CompanyID,
		Name:          entity.RoleAdmin,
		NameAr:        "مدير",
		Description:   "Full access",
		DescriptionAr: "صلاحيات كاملة",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return false, fmt.Errorf("seed: role: %w", err)
	}

	user := &entity.User{
		ID:           UserID,
		CompanyID:    CompanyID,
		RoleID:       RoleID,
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		FullName:     "Admin User",
		FullNameAr:   "المسؤول",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return false, fmt.Errorf("seed: user: %w", err)
	}

	s.log.Info().
		Str("company_id", CompanyID).
		Str("username", admin.Username).
		Msg("bootstrap administrator created")
	return true, nil
}
