package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// Book is a catalog record. ID is assigned by the store on insert and
// never changes afterwards.
type Book struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title" validate:"required,min=1,max=200"`
	Author string          `json:"author" validate:"required,min=1,max=200"`
	ISBN   string          `json:"isbn" validate:"required,min=10,max=20"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock" validate:"min=0,max=100000"`
	Year   int             `json:"year" validate:"min=1000,max=2100"`
}

var (
	minBookPrice = decimal.NewFromFloat(0.01)
	maxBookPrice = decimal.NewFromInt(10000)
)

// Validate checks the field constraints. Price bounds are checked by
// hand since the validator does not understand decimal.Decimal.
func (b Book) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if b.Price.LessThan(minBookPrice) || b.Price.GreaterThan(maxBookPrice) {
		return fmt.Errorf("%w: price must be between 0.01 and 10000", ErrValidation)
	}
	return nil
}
