package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a single priced line of an order. LineTotal is derived
// from Quantity and UnitPrice by the pricing engine.
type OrderItem struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Order is immutable once created; every monetary field is re-derivable
// from Items and DiscountPercent.
type Order struct {
	ID              int64           `json:"id"`
	CreatedAt       time.Time       `json:"created_at"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Items           []OrderItem     `json:"items"`
}

// PricedOrder is the output of the pricing engine: all derived totals
// plus the priced lines, not yet persisted.
type PricedOrder struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Total           decimal.Decimal `json:"total"`
	Items           []OrderItem     `json:"items"`
}

// OrderTotals are the raw sums a store computes over a date range.
type OrderTotals struct {
	Orders   int64
	Revenue  decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
}

// OrderSummary is the reporting view over a date range.
type OrderSummary struct {
	TotalOrders       int64           `json:"total_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	FromDate          *time.Time      `json:"from_date,omitempty"`
	ToDate            *time.Time      `json:"to_date,omitempty"`
}

// TopItem is one product group in the top-selling ranking.
type TopItem struct {
	ProductName   string          `json:"product_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}
