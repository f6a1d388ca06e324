package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ItemRepository over a pool or a tx.
type ItemRepo struct {
	q Querier
}

func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, company_id, name, name_ar, description, description_ar, unit_price, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.CompanyID, &it.Name, &it.NameAr, &it.Description, &it.DescriptionAr, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.CompanyID, it.Name, it.NameAr, it.Description, it.DescriptionAr, it.UnitPrice, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCompanyNotFound
		}
		return writeErr("insert item", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND id = $2`
	it, err := scanItem(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*entity.Item, error) {
	out := make(map[string]*entity.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND id = ANY($2::uuid[])`
	rows, err := r.q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("get items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[it.ID] = it
	}
	return out, rows.Err()
}

func (r *ItemRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Item, error) {
	query := `
		SELECT ` + itemColumns + ` FROM items
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func (r *ItemRepo) NameTaken(ctx context.Context, companyID, name, nameAr, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM items
			WHERE company_id = $1 AND (name = $2 OR name_ar = $3) AND id::text <> $4
		)`
	var taken bool
	if err := r.q.QueryRow(ctx, query, companyID, name, nameAr, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("item name check: %w", err)
	}
	return taken, nil
}

func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items
		SET name = $3, name_ar = $4, description = $5, description_ar = $6, unit_price = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		it.CompanyID, it.ID, it.Name, it.NameAr, it.Description, it.DescriptionAr, it.UnitPrice, it.UpdatedAt,
	)
	if err != nil {
		return writeErr("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Delete fails with ErrInUse while invoice lines reference the item.
func (r *ItemRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return deleteErr("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
