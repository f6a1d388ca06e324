package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// AuditRepository append-only sink for audit records.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
}
