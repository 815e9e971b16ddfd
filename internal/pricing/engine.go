// Package pricing turns requested order lines into rounded totals.
// The engine is pure: no I/O, no clock, so identical input always
// yields identical money.
package pricing

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/launchpad/bookstore/internal/domain"
)

// TaxRate is fixed for every order.
var TaxRate = decimal.NewFromFloat(0.08)

var (
	one          = decimal.NewFromInt(1)
	minUnitPrice = decimal.NewFromFloat(0.01)
	maxUnitPrice = decimal.NewFromInt(100000)
)

var validate = validator.New()

// LineInput is one requested order line before pricing.
type LineInput struct {
	ProductName string          `json:"product_name" validate:"required,min=1,max=200"`
	Quantity    int             `json:"quantity" validate:"min=1,max=100000"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type Engine struct{}

func NewEngine() Engine { return Engine{} }

// Price computes the totals in a fixed step order, rounding each
// derived value to 2 places (half-up) before it feeds the next step.
// The step order is load-bearing: reordering the rounding changes
// cents on real inputs.
func (Engine) Price(items []LineInput, discountPercent decimal.Decimal) (*domain.PricedOrder, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one order item is required", domain.ErrValidation)
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(one) {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 1", domain.ErrValidation)
	}

	lines := make([]domain.OrderItem, 0, len(items))
	subtotal := decimal.Zero
	for i, it := range items {
		if err := validateLine(i, it); err != nil {
			return nil, err
		}
		lineTotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		lines = append(lines, domain.OrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	// Each addend already has 2 places; the extra Round guards against
	// representation drift.
	subtotal = subtotal.Round(2)

	discountAmount := subtotal.Mul(discountPercent).Round(2)
	taxableAmount := subtotal.Sub(discountAmount)
	taxAmount := taxableAmount.Mul(TaxRate).Round(2)
	total := taxableAmount.Add(taxAmount).Round(2)

	return &domain.PricedOrder{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		TaxRate:         TaxRate,
		TaxAmount:       taxAmount,
		Total:           total,
		Items:           lines,
	}, nil
}

func validateLine(i int, it LineInput) error {
	if err := validate.Struct(it); err != nil {
		return fmt.Errorf("%w: item %d: %v", domain.ErrValidation, i, err)
	}
	if it.UnitPrice.LessThan(minUnitPrice) || it.UnitPrice.GreaterThan(maxUnitPrice) {
		return fmt.Errorf("%w: item %d: unit price must be between 0.01 and 100000", domain.ErrValidation, i)
	}
	if !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
		return fmt.Errorf("%w: item %d: unit price must have at most 2 decimal places", domain.ErrValidation, i)
	}
	return nil
}
