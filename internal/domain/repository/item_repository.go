package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// ItemRepository persistence port for catalog items, scoped by company.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Item, error)
	// GetByIDs returns the items found, keyed by id. Missing ids are simply absent.
	GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*entity.Item, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error)
	NameTaken(ctx context.Context, companyID, name, nameAr, excludeID string) (bool, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, companyID, id string) error
}
