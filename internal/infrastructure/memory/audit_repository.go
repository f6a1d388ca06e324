package memory

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo in-memory append-only audit sink.
type AuditRepo struct {
	s *Store
}

func NewAuditRepository(s *Store) *AuditRepo {
	return &AuditRepo{s: s}
}

func (r *AuditRepo) Append(_ context.Context, e *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := clone(e)
	cp.ID = int64(len(r.s.audit) + 1)
	r.s.audit = append(r.s.audit, cp)
	return nil
}
