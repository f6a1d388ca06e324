package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo in-memory UserRepository.
type UserRepo struct {
	s *Store
}

func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkRefsLocked(user); err != nil {
		return err
	}
	if r.identityTakenLocked(user.CompanyID, user.Username, user.Email, user.ID) {
		return domain.ErrDuplicate
	}
	r.s.users[user.ID] = clone(user)
	r.s.track(user.ID)
	return nil
}

// checkRefsLocked mirrors the company and (company, role) foreign keys.
func (r *UserRepo) checkRefsLocked(user *entity.User) error {
	if _, ok := r.s.companies[user.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if role, ok := r.s.roles[user.RoleID]; !ok || role.CompanyID != user.CompanyID {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, companyID, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.users[id]; ok && v.CompanyID == companyID {
		return clone(v), nil
	}
	return nil, nil
}

func (r *UserRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.User
	for _, v := range r.s.users {
		if v.CompanyID == companyID {
			rows = append(rows, clone(v))
		}
	}
	newestFirst(r.s, rows, func(v *entity.User) string { return v.ID }, func(v *entity.User) time.Time { return v.CreatedAt })
	return page(rows, limit, offset), nil
}

func (r *UserRepo) IdentityTaken(_ context.Context, companyID, username, email, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.identityTakenLocked(companyID, username, email, excludeID), nil
}

func (r *UserRepo) identityTakenLocked(companyID, username, email, excludeID string) bool {
	for _, u := range r.s.users {
		if u.CompanyID != companyID || u.ID == excludeID {
			continue
		}
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) FindByLogin(_ context.Context, companyID, usernameOrEmail string) ([]*entity.UserWithRole, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.UserWithRole
	for _, u := range r.s.users {
		if companyID != "" && u.CompanyID != companyID {
			continue
		}
		if !strings.EqualFold(u.Username, usernameOrEmail) && !strings.EqualFold(u.Email, usernameOrEmail) {
			continue
		}
		uw := &entity.UserWithRole{User: *u}
		if role, ok := r.s.roles[u.RoleID]; ok {
			uw.RoleName = role.Name
		}
		out = append(out, uw)
	}
	return out, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.users[user.ID]; !ok || v.CompanyID != user.CompanyID {
		return domain.ErrUserNotFound
	}
	if err := r.checkRefsLocked(user); err != nil {
		return err
	}
	if r.identityTakenLocked(user.CompanyID, user.Username, user.Email, user.ID) {
		return domain.ErrDuplicate
	}
	r.s.users[user.ID] = clone(user)
	return nil
}

// Delete clears the creator reference on invoices (ON DELETE SET NULL).
func (r *UserRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if v, ok := r.s.users[id]; !ok || v.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	for invID, inv := range r.s.invoices {
		if inv.CreatedByUserID != nil && *inv.CreatedByUserID == id {
			cp := clone(inv)
			cp.CreatedByUserID = nil
			r.s.invoices[invID] = cp
		}
	}
	delete(r.s.users, id)
	delete(r.s.order, id)
	return nil
}
