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

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo RoleRepository over a pool or a tx.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

const roleColumns = `id, company_id, name, name_ar, description, description_ar, created_at, updated_at`

func scanRole(row pgx.Row) (*entity.Role, error) {
	var ro entity.Role
	err := row.Scan(&ro.ID, &ro.CompanyID, &ro.Name, &ro.NameAr, &ro.Description, &ro.DescriptionAr, &ro.CreatedAt, &ro.UpdatedAt)
	return &ro, err
}

func (r *RoleRepo) Create(ctx context.Context, ro *entity.Role) error {
	query := `
		INSERT INTO roles (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ro.ID, ro.CompanyID, ro.Name, ro.NameAr, ro.Description, ro.DescriptionAr, ro.CreatedAt, ro.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCompanyNotFound
		}
		return writeErr("insert role", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE company_id = $1 AND id = $2`
	ro, err := scanRole(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return ro, nil
}

func (r *RoleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Role, error) {
	query := `
		SELECT ` + roleColumns + ` FROM roles
		WHERE company_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		ro, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, ro)
	}
	return list, rows.Err()
}

func (r *RoleRepo) Update(ctx context.Context, ro *entity.Role) error {
	query := `
		UPDATE roles
		SET name = $3, name_ar = $4, description = $5, description_ar = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, ro.CompanyID, ro.ID, ro.Name, ro.NameAr, ro.Description, ro.DescriptionAr, ro.UpdatedAt)
	if err != nil {
		return writeErr("update role", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// Delete fails with ErrInUse while users still hold the role.
func (r *RoleRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM roles WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return deleteErr("delete role", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}
