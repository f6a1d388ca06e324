package memory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo in-memory CustomerRepository.
type CustomerRepo struct {
	s    *Store
	undo *undoLog // set on repositories bound to a transaction
}

func NewCustomerRepository(s *Store) *CustomerRepo {
	return &CustomerRepo{s: s}
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[customer.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if r.contactTakenLocked(customer.CompanyID, customer.Email, customer.Phone, customer.ID) {
		return domain.ErrDuplicate
	}
	r.s.customers[customer.ID] = clone(customer)
	r.s.track(customer.ID)
	r.undo.add(undoInsert(r.s, r.s.customers, customer.ID))
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.customers[id]; ok && v.CompanyID == companyID {
		return clone(v), nil
	}
	return nil, nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.Customer
	for _, v := range r.s.customers {
		if v.CompanyID == companyID {
			rows = append(rows, clone(v))
		}
	}
	newestFirst(r.s, rows, func(v *entity.Customer) string { return v.ID }, func(v *entity.Customer) time.Time { return v.CreatedAt })
	return page(rows, limit, offset), nil
}

func (r *CustomerRepo) ContactTaken(_ context.Context, companyID string, email, phone *string, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.contactTakenLocked(companyID, email, phone, excludeID), nil
}

func (r *CustomerRepo) contactTakenLocked(companyID string, email, phone *string, excludeID string) bool {
	for _, c := range r.s.customers {
		if c.CompanyID != companyID || c.ID == excludeID {
			continue
		}
		if email != nil && c.Email != nil && strings.EqualFold(*c.Email, *email) {
			return true
		}
		if phone != nil && c.Phone != nil && *c.Phone == *phone {
			return true
		}
	}
	return false
}

func (r *CustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.customers[customer.ID]
	if !ok || prev.CompanyID != customer.CompanyID {
		return domain.ErrCustomerNotFound
	}
	if r.contactTakenLocked(customer.CompanyID, customer.Email, customer.Phone, customer.ID) {
		return domain.ErrDuplicate
	}
	r.s.customers[customer.ID] = clone(customer)
	r.undo.add(undoReplace(r.s.customers, customer.ID, prev))
	return nil
}

// Delete refuses while invoices reference the customer.
func (r *CustomerRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.customers[id]
	if !ok || prev.CompanyID != companyID {
		return domain.ErrCustomerNotFound
	}
	for _, inv := range r.s.invoices {
		if inv.CustomerID == id {
			return domain.ErrInUse
		}
	}
	r.undo.add(undoRemove(r.s, r.s.customers, id, prev))
	delete(r.s.customers, id)
	delete(r.s.order, id)
	return nil
}
