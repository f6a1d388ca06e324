package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/memory"
)

const (
	acme      = "6f1c1a52-6a0b-4d55-9a57-2d0c0a6e6a01"
	globex    = "0b7e43f4-90a3-45a0-8d67-5b1f4fd2c102"
	buyerID   = "b0000000-0000-4000-8000-000000000001"
	invoiceID = "d0000000-0000-4000-8000-000000000001"
	chairID   = "e0000000-0000-4000-8000-000000000001"
)

var errBoom = errors.New("boom")

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	companies := memory.NewCompanyRepository(s)
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: acme, Name: "Acme", NameAr: "أكمي"}))
	require.NoError(t, companies.Create(ctx, &entity.Company{ID: globex, Name: "Globex", NameAr: "جلوبكس"}))
	require.NoError(t, memory.NewCustomerRepository(s).Create(ctx, &entity.Customer{ID: buyerID, CompanyID: acme, Name: "Buyer", NameAr: "مشتري"}))
	require.NoError(t, memory.NewItemRepository(s).Create(ctx, &entity.Item{ID: chairID, CompanyID: acme, Name: "Chair", NameAr: "كرسي", UnitPrice: decimal.RequireFromString("10.00")}))
	require.NoError(t, memory.NewInvoiceRepository(s).Create(ctx, &entity.Invoice{ID: invoiceID, CompanyID: acme, CustomerID: buyerID, InvoiceNumber: "INV-1", Title: "t", TitleAr: "ت"}))
	return s
}

func TestRunBilling_RollbackKeepsConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	outside := &entity.Item{ID: "e0000000-0000-4000-8000-000000000099", CompanyID: globex, Name: "Desk", NameAr: "مكتب", UnitPrice: decimal.RequireFromString("99.00")}

	err := memory.NewTxRunner(s).RunBilling(ctx, func(_ repository.CustomerRepository, itemRepo repository.ItemRepository, invoiceRepo repository.InvoiceRepository) error {
		done := make(chan error, 1)
		go func() { done <- memory.NewItemRepository(s).Create(ctx, outside) }()
		require.NoError(t, <-done)

		require.NoError(t, itemRepo.Create(ctx, &entity.Item{ID: "e0000000-0000-4000-8000-000000000002", CompanyID: acme, Name: "Pen", NameAr: "قلم", UnitPrice: decimal.RequireFromString("1.00")}))
		require.NoError(t, invoiceRepo.AddItems(ctx, []*entity.InvoiceItem{{
			ID: "f0000000-0000-4000-8000-000000000001", InvoiceID: invoiceID, ItemID: chairID, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"),
		}}))
		require.NoError(t, invoiceRepo.UpdateTotals(ctx, &entity.Invoice{ID: invoiceID, CompanyID: acme, Subtotal: decimal.RequireFromString("20.00"), Total: decimal.RequireFromString("20.00")}))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	items := memory.NewItemRepository(s)
	got, err := items.GetByID(ctx, globex, outside.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "write committed outside the transaction must survive its rollback")

	pen, err := items.GetByID(ctx, acme, "e0000000-0000-4000-8000-000000000002")
	require.NoError(t, err)
	assert.Nil(t, pen)

	inv, err := memory.NewInvoiceRepository(s).GetByID(ctx, acme, invoiceID)
	require.NoError(t, err)
	assert.True(t, inv.Subtotal.IsZero())
	lines, err := memory.NewInvoiceRepository(s).ItemsByInvoiceIDs(ctx, []string{invoiceID})
	require.NoError(t, err)
	assert.Empty(t, lines[invoiceID])
}

func TestRunBilling_RollbackRevertsUpdatesAndDeletes(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	email := "buyer@acme.test"

	err := memory.NewTxRunner(s).RunBilling(ctx, func(customerRepo repository.CustomerRepository, itemRepo repository.ItemRepository, _ repository.InvoiceRepository) error {
		require.NoError(t, customerRepo.Update(ctx, &entity.Customer{ID: buyerID, CompanyID: acme, Name: "Renamed", NameAr: "مشتري", Email: &email}))
		require.NoError(t, customerRepo.Create(ctx, &entity.Customer{ID: "b0000000-0000-4000-8000-000000000002", CompanyID: acme, Name: "Other", NameAr: "آخر"}))
		require.NoError(t, itemRepo.Delete(ctx, acme, chairID))
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	c, err := memory.NewCustomerRepository(s).GetByID(ctx, acme, buyerID)
	require.NoError(t, err)
	assert.Equal(t, "Buyer", c.Name)
	assert.Nil(t, c.Email)

	list, err := memory.NewCustomerRepository(s).ListByCompany(ctx, acme, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	chair, err := memory.NewItemRepository(s).GetByID(ctx, acme, chairID)
	require.NoError(t, err)
	assert.NotNil(t, chair)
}

func TestRunBilling_CommitKeepsWrites(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	err := memory.NewTxRunner(s).RunBilling(ctx, func(_ repository.CustomerRepository, _ repository.ItemRepository, invoiceRepo repository.InvoiceRepository) error {
		return invoiceRepo.AddItems(ctx, []*entity.InvoiceItem{{
			ID: "f0000000-0000-4000-8000-000000000001", InvoiceID: invoiceID, ItemID: chairID, Quantity: 1, UnitPrice: decimal.RequireFromString("10.00"),
		}})
	})
	require.NoError(t, err)

	lines, err := memory.NewInvoiceRepository(s).ItemsByInvoiceIDs(ctx, []string{invoiceID})
	require.NoError(t, err)
	assert.Len(t, lines[invoiceID], 1)
}
