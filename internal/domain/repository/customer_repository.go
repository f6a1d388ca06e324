package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// CustomerRepository persistence port for Customer, scoped by company.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error)
	// ContactTaken checks email and phone (each only when non-nil) against
	// other customers of the company.
	ContactTaken(ctx context.Context, companyID string, email, phone *string, excludeID string) (bool, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, companyID, id string) error
}
