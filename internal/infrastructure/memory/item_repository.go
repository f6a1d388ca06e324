package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo in-memory ItemRepository.
type ItemRepo struct {
	s    *Store
	undo *undoLog // set on repositories bound to a transaction
}

func NewItemRepository(s *Store) *ItemRepo {
	return &ItemRepo{s: s}
}

func (r *ItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[item.CompanyID]; !ok {
		return domain.ErrCompanyNotFound
	}
	if r.nameTakenLocked(item.CompanyID, item.Name, item.NameAr, item.ID) {
		return domain.ErrDuplicate
	}
	r.s.items[item.ID] = clone(item)
	r.s.track(item.ID)
	r.undo.add(undoInsert(r.s, r.s.items, item.ID))
	return nil
}

func (r *ItemRepo) GetByID(_ context.Context, companyID, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if v, ok := r.s.items[id]; ok && v.CompanyID == companyID {
		return clone(v), nil
	}
	return nil, nil
}

func (r *ItemRepo) GetByIDs(_ context.Context, companyID string, ids []string) (map[string]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Item, len(ids))
	for _, id := range ids {
		if v, ok := r.s.items[id]; ok && v.CompanyID == companyID {
			out[id] = clone(v)
		}
	}
	return out, nil
}

func (r *ItemRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var rows []*entity.Item
	for _, v := range r.s.items {
		if v.CompanyID == companyID {
			rows = append(rows, clone(v))
		}
	}
	newestFirst(r.s, rows, func(v *entity.Item) string { return v.ID }, func(v *entity.Item) time.Time { return v.CreatedAt })
	return page(rows, limit, offset), nil
}

func (r *ItemRepo) NameTaken(_ context.Context, companyID, name, nameAr, excludeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.nameTakenLocked(companyID, name, nameAr, excludeID), nil
}

func (r *ItemRepo) nameTakenLocked(companyID, name, nameAr, excludeID string) bool {
	for _, v := range r.s.items {
		if v.CompanyID == companyID && v.ID != excludeID && (v.Name == name || v.NameAr == nameAr) {
			return true
		}
	}
	return false
}

func (r *ItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.items[item.ID]
	if !ok || prev.CompanyID != item.CompanyID {
		return domain.ErrItemNotFound
	}
	if r.nameTakenLocked(item.CompanyID, item.Name, item.NameAr, item.ID) {
		return domain.ErrDuplicate
	}
	r.s.items[item.ID] = clone(item)
	r.undo.add(undoReplace(r.s.items, item.ID, prev))
	return nil
}

// Delete refuses while invoice lines reference the item.
func (r *ItemRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.items[id]
	if !ok || prev.CompanyID != companyID {
		return domain.ErrItemNotFound
	}
	for _, lines := range r.s.invoiceItems {
		for _, l := range lines {
			if l.ItemID == id {
				return domain.ErrInUse
			}
		}
	}
	r.undo.add(undoRemove(r.s, r.s.items, id, prev))
	delete(r.s.items, id)
	delete(r.s.order, id)
	return nil
}
