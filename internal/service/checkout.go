package service

import (
	"context"
	"log/slog"

	"github.com/okrause/sportshop/internal/domain"
)

// ErrCartEmpty is returned for checkout attempts against a cart with no
// lines. It is a workflow-level message, not a field error.
var ErrCartEmpty = domain.Errorf(domain.EINVALID, "checkout.submit", "Sorry, your cart is empty!")

// CheckoutService runs a single checkout attempt: validate the cart and
// shipping details, hand the order to the processor, then clear the cart.
type CheckoutService struct {
	processor domain.OrderProcessor
	logger    *slog.Logger
}

// NewCheckoutService creates a new CheckoutService instance.
func NewCheckoutService(processor domain.OrderProcessor, logger *slog.Logger) *CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutService{
		processor: processor,
		logger:    logger,
	}
}

// Checkout validates the cart and shipping details and submits the order.
//
// Both checks are evaluated; either failing prevents processor invocation:
//   - empty cart: ErrCartEmpty
//   - invalid details: *domain.ValidationError with per-field messages
//
// The processor is invoked exactly once per successful attempt. The cart is
// cleared only after the processor confirms success; a processor failure
// propagates with the cart untouched so the visitor can retry.
func (s *CheckoutService) Checkout(ctx context.Context, cart *domain.Cart, details *domain.ShippingDetails) error {
	fieldErr := details.Validate()

	if cart.Len() == 0 {
		s.logger.Info("checkout rejected", "reason", "empty cart")
		return ErrCartEmpty
	}
	if fieldErr != nil {
		s.logger.Info("checkout rejected", "reason", "invalid shipping details",
			"fields", len(domain.GetValidationFields(fieldErr)))
		return fieldErr
	}

	if err := s.processor.ProcessOrder(ctx, cart, details); err != nil {
		return domain.WrapError(err, domain.EINTERNAL, "checkout.submit", "order processing failed")
	}

	total := cart.ComputeTotalValue()
	lines := cart.Len()
	cart.Clear()

	s.logger.Info("order submitted",
		"lines", lines,
		"total_cents", total,
		"gift_wrap", details.GiftWrap,
	)
	return nil
}
