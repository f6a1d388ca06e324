package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/memory"
)

type env struct {
	store     *memory.Store
	customers *billing.CustomerUseCase
	invoices  *billing.InvoiceUseCase
	itemRepo  *memory.ItemRepo
}

func newEnv() *env {
	s := memory.NewStore()
	rec := audit.NewRecorder(memory.NewAuditRepository(s), nil)
	return &env{
		store:     s,
		customers: billing.NewCustomerUseCase(memory.NewCustomerRepository(s), rec),
		invoices:  billing.NewInvoiceUseCase(memory.NewTxRunner(s), memory.NewInvoiceRepository(s), rec),
		itemRepo:  memory.NewItemRepository(s),
	}
}

var companySeq = map[string]string{
	"a": "6f1c1a52-6a0b-4d55-9a57-2d0c0a6e6a01",
	"b": "0b7e43f4-90a3-45a0-8d67-5b1f4fd2c102",
}

func (e *env) company(t *testing.T, key, name, nameAr string) string {
	t.Helper()
	id := companySeq[key]
	require.NoError(t, memory.NewCompanyRepository(e.store).Create(context.Background(), &entity.Company{ID: id, Name: name, NameAr: nameAr}))
	return id
}

func (e *env) customer(t *testing.T, companyID string) string {
	t.Helper()
	c, err := e.customers.Create(context.Background(), companyID, dto.CustomerRequest{Name: "John Smith", NameAr: "جون سميث"})
	require.NoError(t, err)
	return c.ID
}

func (e *env) item(t *testing.T, companyID, id, name, nameAr, price string) string {
	t.Helper()
	require.NoError(t, e.itemRepo.Create(context.Background(), &entity.Item{
		ID:        id,
		CompanyID: companyID,
		Name:      name,
		NameAr:    nameAr,
		UnitPrice: decimal.RequireFromString(price),
	}))
	return id
}

func (e *env) invoice(t *testing.T, companyID, customerID, number string, tax *decimal.Decimal) *dto.InvoiceResponse {
	t.Helper()
	inv, err := e.invoices.Create(context.Background(), companyID, "", dto.CreateInvoiceRequest{
		InvoiceNumber: number,
		Title:         "Office furniture",
		TitleAr:       "اثاث مكتبي",
		CustomerID:    customerID,
		Tax:           tax,
	})
	require.NoError(t, err)
	return inv
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func line(itemID string, qty int, price string) dto.InvoiceItemRequest {
	l := dto.InvoiceItemRequest{ItemID: itemID, Quantity: qty}
	if price != "" {
		l.UnitPrice = decPtr(price)
	}
	return l
}
