// Package poller consumes order-confirmed events and erases the matching
// persisted carts. The instance that took the order clears its cart
// inline; the poller covers every other storefront instance sharing the
// cart store.
package poller

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/yashd04xyz/LC-web/internal/domain"
)

// CartEraser is the one cart operation the poller needs.
type CartEraser interface {
	Erase(ctx context.Context, cartID string) []domain.LineItem
}

type Poller struct {
	carts  CartEraser
	reader *kafka.Reader
	log    *zap.Logger
}

func NewPoller(carts CartEraser, log *zap.Logger, topic string, brokers ...string) *Poller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "storefront-cart-cleanup",
		MaxBytes: 10e6, // 10MB
	})
	return &Poller{carts: carts, reader: reader, log: log}
}

func (p *Poller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.processMessage(ctx)
	}
}

func (p *Poller) Close() {
	if err := p.reader.Close(); err != nil {
		p.log.Warn("error closing kafka reader", zap.Error(err))
	}
}

func (p *Poller) processMessage(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		p.log.Warn("error reading message", zap.Error(err))
		return
	}

	var payload struct {
		CartID string `json:"cart_id"`
	}
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		p.log.Warn("error parsing message", zap.Error(err))
		return
	}
	if payload.CartID == "" {
		p.log.Warn("missing cart_id in order event")
		return
	}

	p.carts.Erase(ctx, payload.CartID)
	p.log.Info("cart cleared after order", zap.String("cart_id", payload.CartID))
}
