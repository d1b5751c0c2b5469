package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// FlatShipping is the shipping charge in cents added to every order
const FlatShipping int64 = 1000

// OrderItem is one priced line of an order
type OrderItem struct {
	ProductID string
	Name      string
	Price     int64
	Qty       int
}

// ShippingAddress is where an order is delivered
type ShippingAddress struct {
	FullName   string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Order represents a customer order with business logic
type Order struct {
	ID              string
	Reference       string
	UserID          string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   string
	ItemsPrice      int64
	TaxPrice        int64
	ShippingPrice   int64
	TotalPrice      int64
	Status          OrderStatus
	FailureReason   string
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order has no items")
	ErrMissingUser             = errors.New("order has no owner")
	ErrInvalidQuantity         = errors.New("quantity must be positive")
	ErrInvalidTaxRate          = errors.New("tax rate must be between 0 and 1")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order and computes its totals. Tax is applied to
// the items price and rounded to the cent.
func NewOrder(userID string, items []OrderItem, taxRate float64) (*Order, error) {
	if err := validateOrderInput(userID, items, taxRate); err != nil {
		return nil, err
	}

	var itemsPrice int64
	for _, item := range items {
		itemsPrice += item.Price * int64(item.Qty)
	}
	taxPrice := int64(math.Round(float64(itemsPrice) * taxRate))

	id := uuid.New().String()
	now := time.Now()

	return &Order{
		ID:            id,
		Reference:     "ORDER-" + strings.ToUpper(id[:8]),
		UserID:        userID,
		Items:         items,
		ItemsPrice:    itemsPrice,
		TaxPrice:      taxPrice,
		ShippingPrice: FlatShipping,
		TotalPrice:    itemsPrice + taxPrice + FlatShipping,
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// validateOrderInput validates order creation parameters
func validateOrderInput(userID string, items []OrderItem, taxRate float64) error {
	if userID == "" {
		return ErrMissingUser
	}
	if len(items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range items {
		if item.Qty <= 0 {
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
	}
	if taxRate < 0 || taxRate > 1 {
		return ErrInvalidTaxRate
	}
	return nil
}

// Pay marks a pending order as paid
func (o *Order) Pay() error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot pay order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	return nil
}

// Fail marks a pending order as failed and keeps the reason
func (o *Order) Fail(reason string) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot fail order with status %s", ErrInvalidStatusTransition, o.Status)
	}

	o.Status = OrderStatusFailed
	o.FailureReason = reason
	o.UpdatedAt = time.Now()
	return nil
}

// IsPending returns true if the order is in pending status
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderStatusPaid
}

// IsFailed returns true if the order has failed
func (o *Order) IsFailed() bool {
	return o.Status == OrderStatusFailed
}

// FormattedTotal returns the total formatted in dollars
func (o *Order) FormattedTotal() string {
	return FormatCents(o.TotalPrice)
}

// FormatCents renders an amount in cents as "$12.34"
func FormatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", Dollars(cents))
}

// Dollars converts cents to a decimal amount
func Dollars(cents int64) float64 {
	return float64(cents) / 100.0
}

// Cents converts a decimal amount to cents
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
