package memory

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner runs one transaction at a time over the store. A callback error
// (or a cancelled context) reverts the writes made through the repositories
// handed to the callback; concurrent writes outside the transaction survive.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunBilling serializes with other transactions, which gives the attach-items
// batch the same read-increment-write isolation a row lock gives in postgres.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	itemRepo repository.ItemRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	undo := &undoLog{}
	err := fn(
		&CustomerRepo{s: r.s, undo: undo},
		&ItemRepo{s: r.s, undo: undo},
		&InvoiceRepo{s: r.s, undo: undo},
	)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.s.rollback(undo)
		return err
	}
	return nil
}
