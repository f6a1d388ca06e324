package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// CompanyRepository persistence port for Company. Get methods return (nil, nil)
// when nothing matches.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// NameTaken reports whether another company (id != excludeID) already uses
	// name or nameAr. Company names are unique across tenants.
	NameTaken(ctx context.Context, name, nameAr, excludeID string) (bool, error)
	Update(ctx context.Context, company *entity.Company) error
	// Delete fails with domain.ErrInUse while other rows still reference the company.
	Delete(ctx context.Context, id string) error
}
