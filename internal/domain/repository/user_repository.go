package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// UserRepository persistence port for User, scoped by company.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
	// IdentityTaken reports whether another user of the company (id != excludeID)
	// has the same username or email.
	IdentityTaken(ctx context.Context, companyID, username, email, excludeID string) (bool, error)
	// FindByLogin matches username or email. An empty companyID searches every tenant.
	FindByLogin(ctx context.Context, companyID, usernameOrEmail string) ([]*entity.UserWithRole, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, companyID, id string) error
}
