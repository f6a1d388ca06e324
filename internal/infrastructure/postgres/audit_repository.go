package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo appends to audit_logs. Empty company/user ids are stored as NULL.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (company_id, user_id, table_name, action, key_value, old_values, new_values, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		nullable(e.CompanyID), nullable(e.UserID), e.TableName, e.Action, e.KeyValue,
		jsonOrNull(e.OldValues), jsonOrNull(e.NewValues), e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// jsonOrNull passes the snapshot as text so the server casts it to jsonb.
func jsonOrNull(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}
