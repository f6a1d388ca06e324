package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo in-memory RoleRepository.
type RoleRepo struct {
	s *Store
}

func NewRoleRepository(s *Store) *RoleRepo {
	return &RoleRepo{s: s}
}

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[role.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	r.s.roles[role.ID] = clone(role)
	r.s.track(role.ID)
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, companyID, id string) (*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.roles[id]; ok && v.CompanyID == companyID {
		return clone(v), nil
	}
	return nil, nil
}

func (r *RoleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.Role
	for _, v := range r.s.roles {
		if v.CompanyID == companyID {
			rows = append(rows, clone(v))
		}
	}
	newestFirst(r.s, rows, func(v *entity.Role) string { return v.ID }, func(v *entity.Role) time.Time { return v.CreatedAt })
	return page(rows, limit, offset), nil
}

func (r *RoleRepo) Update(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.roles[role.ID]; !ok || v.CompanyID != role.CompanyID {
		return domain.ErrRoleNotFound
	}
	r.s.roles[role.ID] = clone(role)
	return nil
}

// Delete refuses while users still hold the role.
func (r *RoleRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.roles[id]; !ok || v.CompanyID != companyID {
		return domain.ErrRoleNotFound
	}
	for _, u := range r.s.users {
		if u.RoleID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.roles, id)
	delete(r.s.order, id)
	return nil
}
