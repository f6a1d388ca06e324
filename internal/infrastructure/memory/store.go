// Package memory is an in-process storage engine implementing the repository
// ports. It mirrors the relational constraints of the postgres schema
// (tenant-scoped uniqueness, restrict-on-delete) and backs DB_DRIVER=memory
// and the use case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// Store holds every table. Repositories share one Store.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializes transactions; stands in for row locks

	seq          int64
	order        map[string]int64 // insertion order per row id
	companies    map[string]*entity.Company
	roles        map[string]*entity.Role
	users        map[string]*entity.User
	customers    map[string]*entity.Customer
	items        map[string]*entity.Item
	invoices     map[string]*entity.Invoice
	invoiceItems map[string][]*entity.InvoiceItem // by invoice id
	audit        []*entity.AuditLog
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		order:        map[string]int64{},
		companies:    map[string]*entity.Company{},
		roles:        map[string]*entity.Role{},
		users:        map[string]*entity.User{},
		customers:    map[string]*entity.Customer{},
		items:        map[string]*entity.Item{},
		invoices:     map[string]*entity.Invoice{},
		invoiceItems: map[string][]*entity.InvoiceItem{},
	}
}

// undoLog inverse operations of the writes made inside one transaction,
// applied newest first on rollback. Writes made outside the transaction are
// never touched. A nil *undoLog records nothing. Callers hold s.mu.
type undoLog struct {
	ops []func()
}

func (u *undoLog) add(op func()) {
	if u != nil {
		u.ops = append(u.ops, op)
	}
}

// rollback reverts the recorded writes.
func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(u.ops) - 1; i >= 0; i-- {
		u.ops[i]()
	}
	u.ops = nil
}

// undoInsert, undoReplace and undoRemove build the inverse of a row write
// on table m.
func undoInsert[V any](s *Store, m map[string]V, id string) func() {
	return func() {
		delete(m, id)
		delete(s.order, id)
	}
}

func undoReplace[V any](m map[string]V, id string, prev V) func() {
	return func() { m[id] = prev }
}

func undoRemove[V any](s *Store, m map[string]V, id string, prev V) func() {
	seq, tracked := s.order[id]
	return func() {
		m[id] = prev
		if tracked {
			s.order[id] = seq
		}
	}
}

// track records insertion order; callers hold s.mu.
func (s *Store) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// AuditEntries copy of the audit log, oldest first.
func (s *Store) AuditEntries() []entity.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.AuditLog, 0, len(s.audit))
	for _, e := range s.audit {
		out = append(out, *e)
	}
	return out
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// newestFirst sorts rows by creation time, then insertion order, both descending.
func newestFirst[T any](s *Store, rows []*T, id func(*T) string, created func(*T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := created(rows[i]), created(rows[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return s.order[id(rows[i])] > s.order[id(rows[j])]
	})
}

func page[T any](rows []*T, limit, offset int) []*T {
	if offset >= len(rows) {
		return []*T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}
