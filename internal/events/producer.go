// Package events publishes order-created messages. Delivery is
// best-effort infrastructure: the breaker sheds load when the broker
// is down and the retry policy absorbs transient failures, but a lost
// event never fails the request that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/launchpad/bookstore/internal/config"
	"github.com/launchpad/bookstore/internal/domain"
	"github.com/launchpad/bookstore/internal/pkg/retry"
)

//go:generate mockgen -source producer.go -destination=producer_mock_test.go -package=events

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type circuit interface {
	Allow() error
	Success()
	Failure()
}

type Producer struct {
	writer      writer
	breaker     circuit
	retryPolicy config.Retry
	logger      *zap.Logger
}

func NewProducer(brokers []string, topic string, brk circuit, retryPolicy config.Retry, logger *zap.Logger) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Producer{
		writer:      w,
		breaker:     brk,
		retryPolicy: retryPolicy,
		logger:      logger,
	}
}

func (p *Producer) PublishOrderCreated(ctx context.Context, o domain.Order) error {
	if err := p.breaker.Allow(); err != nil {
		return fmt.Errorf("publish order %d: %w", o.ID, err)
	}

	payload, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order %d: %w", o.ID, err)
	}

	err = retry.Do(ctx, p.retryPolicy, func() error {
		return p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(strconv.FormatInt(o.ID, 10)),
			Value: payload,
		})
	})
	if err != nil {
		p.breaker.Failure()
		p.logger.Error("order event write failed",
			zap.Int64("order_id", o.ID),
			zap.Error(err),
		)
		return fmt.Errorf("publish order %d: %w", o.ID, err)
	}
	p.breaker.Success()
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
