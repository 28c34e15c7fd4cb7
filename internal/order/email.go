package order

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/okrause/sportshop/internal/domain"
)

// SMTPConfig holds SMTP connection parameters for the email processor.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string // optional - some servers allow unauthenticated relay
	Password string // optional
	From     string
	To       string // order desk mailbox
}

// EmailProcessor finalizes orders by mailing an order confirmation to the
// shop's order desk over SMTP.
type EmailProcessor struct {
	config SMTPConfig
	logger *slog.Logger
}

// Compile-time check that EmailProcessor implements domain.OrderProcessor.
var _ domain.OrderProcessor = (*EmailProcessor)(nil)

// NewEmailProcessor creates a new SMTP-backed order processor.
func NewEmailProcessor(config SMTPConfig, logger *slog.Logger) *EmailProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmailProcessor{
		config: config,
		logger: logger,
	}
}

// ProcessOrder renders the order as a plain-text confirmation and sends it.
func (p *EmailProcessor) ProcessOrder(ctx context.Context, cart *domain.Cart, details *domain.ShippingDetails) error {
	m := newMessage(cart, details, time.Now().UTC())

	msg := mail.NewMsg()
	if err := msg.From(p.config.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(p.config.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	msg.Subject("New order submitted!")
	msg.SetBodyString(mail.TypeTextPlain, formatBody(m))

	client, err := p.buildClient()
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send order email: %w", err)
	}

	p.logger.Info("order emailed",
		"to", p.config.To,
		"lines", len(m.Lines),
		"total_cents", m.TotalCents,
	)
	return nil
}

func (p *EmailProcessor) buildClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(p.config.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(30 * time.Second),
	}
	if p.config.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(p.config.Username),
			mail.WithPassword(p.config.Password),
		)
	}
	return mail.NewClient(p.config.Host, opts...)
}
