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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo UserRepository over a pool or a tx. Username and email compare
// case-insensitively, matching the lower() unique indexes.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `u.id, u.company_id, u.role_id, u.username, u.email, u.password_hash, u.full_name, u.full_name_ar, u.created_at, u.updated_at`

func userFields(u *entity.User) []any {
	return []any{&u.ID, &u.CompanyID, &u.RoleID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.FullNameAr, &u.CreatedAt, &u.UpdatedAt}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, role_id, username, email, password_hash, full_name, full_name_ar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, u.RoleID, u.Username, u.Email, u.PasswordHash, u.FullName, u.FullNameAr, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Reference(domain.ErrRoleNotFound)
		}
		return writeErr("insert user", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.company_id = $1 AND u.id = $2`
	var u entity.User
	if err := r.q.QueryRow(ctx, query, companyID, id).Scan(userFields(&u)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users u
		WHERE u.company_id = $1
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) IdentityTaken(ctx context.Context, companyID, username, email, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE company_id = $1
			  AND (lower(username) = lower($2) OR lower(email) = lower($3))
			  AND id::text <> $4
		)`
	var taken bool
	if err := r.q.QueryRow(ctx, query, companyID, username, email, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("user identity check: %w", err)
	}
	return taken, nil
}

// FindByLogin builds the tenant filter only when companyID is set; an empty
// string never reaches a uuid comparison.
func (r *UserRepo) FindByLogin(ctx context.Context, companyID, usernameOrEmail string) ([]*entity.UserWithRole, error) {
	query := `
		SELECT ` + userColumns + `, ro.name
		FROM users u
		JOIN roles ro ON ro.company_id = u.company_id AND ro.id = u.role_id
		WHERE (lower(u.username) = lower($1) OR lower(u.email) = lower($1))`
	args := []any{usernameOrEmail}
	if companyID != "" {
		query += ` AND u.company_id = $2`
		args = append(args, companyID)
	}
	query += ` LIMIT 2`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find user by login: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserWithRole
	for rows.Next() {
		var uw entity.UserWithRole
		if err := rows.Scan(append(userFields(&uw.User), &uw.RoleName)...); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &uw)
	}
	return list, rows.Err()
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET role_id = $3, username = $4, email = $5, password_hash = $6,
		    full_name = $7, full_name_ar = $8, updated_at = $9
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		u.CompanyID, u.ID, u.RoleID, u.Username, u.Email, u.PasswordHash, u.FullName, u.FullNameAr, u.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Reference(domain.ErrRoleNotFound)
		}
		return writeErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete leaves invoices in place; their created_by_user_id becomes NULL.
func (r *UserRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return deleteErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
