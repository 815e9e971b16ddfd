// Package reporting answers listing and aggregate queries over
// persisted orders. All heavy grouping happens in SQL; this layer
// validates inputs and shapes the results.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/domain"
)

//go:generate mockgen -source service.go -destination=service_mock_test.go -package=reporting

const maxTopItemsLimit = 100

type Store interface {
	QueryPage(ctx context.Context, offset, limit int) ([]domain.Order, error)
	SummarizeRange(ctx context.Context, from, to *time.Time) (domain.OrderTotals, error)
	GroupItemsByProduct(ctx context.Context, limit int) ([]domain.TopItem, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// ListOrders returns orders newest first. A page past the available
// data is an empty slice.
func (s *Service) ListOrders(ctx context.Context, pageNumber, pageSize int) ([]domain.Order, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: pageNumber and pageSize must be positive", domain.ErrValidation)
	}
	orders, err := s.store.QueryPage(ctx, (pageNumber-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Summarize aggregates orders created within [from, to], both bounds
// optional and inclusive. averageOrderValue is 0 when there are no
// orders, never a division by zero.
func (s *Service) Summarize(ctx context.Context, from, to *time.Time) (domain.OrderSummary, error) {
	if from != nil && to != nil && from.After(*to) {
		return domain.OrderSummary{}, fmt.Errorf("%w: fromDate must not be after toDate", domain.ErrValidation)
	}

	totals, err := s.store.SummarizeRange(ctx, from, to)
	if err != nil {
		return domain.OrderSummary{}, fmt.Errorf("summarize orders: %w", err)
	}

	avg := decimal.Zero
	if totals.Orders > 0 {
		avg = totals.Revenue.Div(decimal.NewFromInt(totals.Orders)).Round(2)
	}
	return domain.OrderSummary{
		TotalOrders:       totals.Orders,
		TotalRevenue:      totals.Revenue,
		TotalTax:          totals.Tax,
		TotalDiscount:     totals.Discount,
		AverageOrderValue: avg,
		FromDate:          from,
		ToDate:            to,
	}, nil
}

// TopItems ranks product groups by revenue, then quantity, both
// descending, returning at most limit groups.
func (s *Service) TopItems(ctx context.Context, limit int) ([]domain.TopItem, error) {
	if limit < 1 || limit > maxTopItemsLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, maxTopItemsLimit)
	}
	top, err := s.store.GroupItemsByProduct(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	return top, nil
}
