// Package invoice keeps invoice totals consistent with their lines.
// All arithmetic is fixed-point (shopspring/decimal); amounts carry two
// fraction digits.
package invoice

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// Scale fraction digits of every monetary amount.
const Scale = 2

// MaxQuantity largest line quantity (a 32-bit INTEGER column).
const MaxQuantity = math.MaxInt32

// amountLimit every stored amount is NUMERIC(18,2), i.e. below 10^16.
var amountLimit = decimal.New(1, 16)

// FitsAmount reports whether d can be stored as a monetary amount.
func FitsAmount(d decimal.Decimal) bool {
	return d.Abs().LessThan(amountLimit)
}

// ValidateLine quantity must be an integer in [1, MaxQuantity] and unitPrice
// a positive amount with at most two fraction digits. The line total must
// itself fit an amount.
func ValidateLine(quantity int, unitPrice decimal.Decimal) error {
	if quantity < 1 || quantity > MaxQuantity {
		return fmt.Errorf("%w: quantity must be between 1 and %d", domain.ErrInvalidInput, MaxQuantity)
	}
	if !unitPrice.IsPositive() || !hasScale(unitPrice) || !FitsAmount(unitPrice) {
		return fmt.Errorf("%w: unit price must be positive with at most %d decimals", domain.ErrInvalidInput, Scale)
	}
	if !FitsAmount(LineTotal(quantity, unitPrice)) {
		return fmt.Errorf("%w: line total out of range", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateTax absent tax is fine; present tax must be >= 0 with two decimals at most.
func ValidateTax(tax decimal.NullDecimal) error {
	if !tax.Valid {
		return nil
	}
	if tax.Decimal.IsNegative() || !hasScale(tax.Decimal) || !FitsAmount(tax.Decimal) {
		return fmt.Errorf("%w: tax must be non-negative with at most %d decimals", domain.ErrInvalidInput, Scale)
	}
	return nil
}

// LineTotal quantity × unitPrice.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(Scale)
}

// Init sets the totals of a freshly created invoice: subtotal 0, total = tax.
func Init(inv *entity.Invoice) {
	inv.Subtotal = decimal.Zero
	Recompute(inv)
}

// Recompute total = subtotal + tax.
func Recompute(inv *entity.Invoice) {
	inv.Total = inv.Subtotal.Add(inv.TaxOrZero()).Round(Scale)
}

// ApplyBatch fills each line's Total and adds the batch sum to the invoice
// subtotal. Lines must already be validated. Subtotals only grow. When the
// new subtotal or total would not fit an amount the invoice is left as is
// and domain.ErrInvalidInput is returned.
func ApplyBatch(inv *entity.Invoice, lines []*entity.InvoiceItem) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range lines {
		l.Total = LineTotal(l.Quantity, l.UnitPrice)
		sum = sum.Add(l.Total)
	}
	subtotal := inv.Subtotal.Add(sum).Round(Scale)
	if !FitsAmount(subtotal) || !FitsAmount(subtotal.Add(inv.TaxOrZero())) {
		return decimal.Zero, fmt.Errorf("%w: invoice total out of range", domain.ErrInvalidInput)
	}
	inv.Subtotal = subtotal
	Recompute(inv)
	return sum, nil
}

func hasScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}
