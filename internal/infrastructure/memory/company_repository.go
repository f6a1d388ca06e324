package memory

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo in-memory CompanyRepository.
type CompanyRepo struct {
	s *Store
}

// NewCompanyRepository builds the adapter over s.
func NewCompanyRepository(s *Store) *CompanyRepo {
	return &CompanyRepo{s: s}
}

func (r *CompanyRepo) Create(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTakenLocked(company.Name, company.NameAr, company.ID) {
		return domain.ErrDuplicate
	}
	r.s.companies[company.ID] = clone(company)
	r.s.track(company.ID)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return clone(r.s.companies[id]), nil
}

func (r *CompanyRepo) NameTaken(_ context.Context, name, nameAr, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTakenLocked(name, nameAr, excludeID), nil
}

func (r *CompanyRepo) nameTakenLocked(name, nameAr, excludeID string) bool {
	for _, c := range r.s.companies {
		if c.ID != excludeID && (c.Name == name || c.NameAr == nameAr) {
			return true
		}
	}
	return false
}

func (r *CompanyRepo) Update(_ context.Context, company *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[company.ID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if r.nameTakenLocked(company.Name, company.NameAr, company.ID) {
		return domain.ErrDuplicate
	}
	r.s.companies[company.ID] = clone(company)
	return nil
}

// Delete refuses while any row still belongs to the company.
func (r *CompanyRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[id]; !ok {
		return domain.ErrCompanyNotFound
	}
	if r.referencedLocked(id) {
		return domain.ErrInUse
	}
	delete(r.s.companies, id)
	delete(r.s.order, id)
	return nil
}

func (r *CompanyRepo) referencedLocked(id string) bool {
	for _, v := range r.s.roles {
		if v.CompanyID == id {
			return true
		}
	}
	for _, v := range r.s.users {
		if v.CompanyID == id {
			return true
		}
	}
	for _, v := range r.s.customers {
		if v.CompanyID == id {
			return true
		}
	}
	for _, v := range r.s.items {
		if v.CompanyID == id {
			return true
		}
	}
	for _, v := range r.s.invoices {
		if v.CompanyID == id {
			return true
		}
	}
	return false
}
