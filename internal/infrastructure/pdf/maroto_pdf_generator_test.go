package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "0.00",
		"5":         "5.00",
		"999.9":     "999.90",
		"1000":      "1,000.00",
		"1234567.5": "1,234,567.50",
		"-2500.25":  "-2,500.25",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	email := "buyer@example.com"
	doc := billing.InvoiceDocument{
		Company:  &entity.Company{ID: "c1", Name: "Acme", Description: "Office supplies"},
		Customer: &entity.Customer{ID: "cu1", Name: "Jane Buyer", Email: &email},
		Invoice: &entity.Invoice{
			ID: "i1", InvoiceNumber: "INV-001", Title: "March order",
			Subtotal:  decimal.RequireFromString("25.00"),
			Tax:       decimal.NewNullDecimal(decimal.RequireFromString("3.50")),
			Total:     decimal.RequireFromString("28.50"),
			CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Items: []*entity.InvoiceItem{
				{Snapshot: entity.ItemSnapshot{Name: "Chair"}, Quantity: 2,
					UnitPrice: decimal.RequireFromString("10.00"), Total: decimal.RequireFromString("20.00")},
				{Snapshot: entity.ItemSnapshot{Name: "Pen"}, Quantity: 1,
					UnitPrice: decimal.RequireFromString("5.00"), Total: decimal.RequireFromString("5.00")},
			},
		},
	}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateInvoicePDF_IncompleteDocument(t *testing.T) {
	_, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), billing.InvoiceDocument{})
	assert.Error(t, err)
}
