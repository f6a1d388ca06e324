package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// RoleRepository persistence port for Role, always scoped by company.
type RoleRepository interface {
	Create(ctx context.Context, role *entity.Role) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Role, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Role, error)
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, companyID, id string) error
}
