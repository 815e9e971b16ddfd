// Package orders glues the pricing engine to durable storage: price
// the request, persist the result as one unit, then announce it.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/domain"
	"github.com/launchpad/bookstore/internal/observability"
	"github.com/launchpad/bookstore/internal/pricing"
)

//go:generate mockgen -source service.go -destination=service_mock_test.go -package=orders

type Store interface {
	InsertOrderWithItems(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (domain.Order, bool, error)
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, o domain.Order) error
}

type Service struct {
	engine    pricing.Engine
	store     Store
	publisher Publisher
	logger    *zap.Logger
	metrics   observability.Metrics
}

// NewService accepts a nil publisher when event publishing is
// disabled.
func NewService(store Store, publisher Publisher, logger *zap.Logger, metrics observability.Metrics) *Service {
	if metrics == nil {
		metrics = observability.Noop{}
	}
	return &Service{
		engine:    pricing.NewEngine(),
		store:     store,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Create prices the request and persists the order atomically. Event
// publishing is best-effort: the order is already durable, so a broker
// failure is logged and swallowed.
func (s *Service) Create(ctx context.Context, items []pricing.LineInput, discountPercent decimal.Decimal) (*domain.Order, error) {
	t0 := time.Now()
	priced, err := s.engine.Price(items, discountPercent)
	if err != nil {
		return nil, err
	}
	s.metrics.ObservePricing(msSince(t0))

	order := &domain.Order{
		CreatedAt:       time.Now().UTC(),
		Subtotal:        priced.Subtotal,
		DiscountPercent: priced.DiscountPercent,
		DiscountAmount:  priced.DiscountAmount,
		TaxRate:         priced.TaxRate,
		TaxAmount:       priced.TaxAmount,
		Total:           priced.Total,
		Items:           priced.Items,
	}
	if err := s.store.InsertOrderWithItems(ctx, order); err != nil {
		s.logger.Error("order insert failed", zap.Error(err))
		return nil, fmt.Errorf("save order: %w", err)
	}

	if s.publisher != nil {
		tPub := time.Now()
		if err := s.publisher.PublishOrderCreated(ctx, *order); err != nil {
			s.metrics.ObservePublish(msSince(tPub), false)
			s.logger.Warn("order event publish failed",
				zap.Int64("order_id", order.ID),
				zap.Error(err),
			)
		} else {
			s.metrics.ObservePublish(msSince(tPub), true)
		}
	}

	s.logger.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	return s.store.GetByID(ctx, id)
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
