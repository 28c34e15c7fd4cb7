package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/okrause/sportshop/internal/domain"
)

// DefaultSubject is the subject orders are published on when none is
// configured.
const DefaultSubject = "orders.submitted"

// NatsProcessor finalizes orders by publishing them as JSON to a NATS
// subject for a downstream fulfilment service.
type NatsProcessor struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// Compile-time check that NatsProcessor implements domain.OrderProcessor.
var _ domain.OrderProcessor = (*NatsProcessor)(nil)

// NewNatsProcessor creates a new NATS-backed order processor.
func NewNatsProcessor(conn *nats.Conn, subject string, logger *slog.Logger) *NatsProcessor {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NatsProcessor{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}
}

// ProcessOrder publishes the order and flushes the connection so failures
// surface before the checkout workflow clears the cart.
func (p *NatsProcessor) ProcessOrder(ctx context.Context, cart *domain.Cart, details *domain.ShippingDetails) error {
	m := newMessage(cart, details, time.Now().UTC())

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish order: %w", err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed to flush order publish: %w", err)
	}

	p.logger.Info("order published",
		"subject", p.subject,
		"lines", len(m.Lines),
		"total_cents", m.TotalCents,
	)
	return nil
}
