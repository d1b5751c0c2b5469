package services

import (
	"fmt"
	"time"

	"github.com/amazona/e2e/internal/models"
)

// PaymentService settles orders
type PaymentService interface {
	Charge(order *models.Order, card models.Card) error
}

// PaymentServiceImpl implements PaymentService by validating the submitted
// card locally
type PaymentServiceImpl struct {
	now func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(now func() time.Time) PaymentService {
	if now == nil {
		now = time.Now
	}
	return &PaymentServiceImpl{
		now: now,
	}
}

// Charge moves a pending order to paid, or to failed when the card is
// rejected. Orders without a card stay pending for offline payment.
func (s *PaymentServiceImpl) Charge(order *models.Order, card models.Card) error {
	if card.Empty() {
		return nil
	}

	if err := card.Validate(s.now()); err != nil {
		if failErr := order.Fail(err.Error()); failErr != nil {
			return fmt.Errorf("failed to fail order: %w", failErr)
		}
		return err
	}

	return order.Pay()
}
