package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewOrder(t *testing.T) {
	laptop := OrderItem{ProductID: "prod-001", Name: "Laptop", Price: 10000, Qty: 2}

	tests := []struct {
		name    string
		userID  string
		items   []OrderItem
		taxRate float64
		wantErr error
	}{
		{
			name:    "valid order",
			userID:  "user-1",
			items:   []OrderItem{laptop},
			taxRate: 0.1,
		},
		{
			name:    "missing user",
			items:   []OrderItem{laptop},
			taxRate: 0.1,
			wantErr: ErrMissingUser,
		},
		{
			name:    "no items",
			userID:  "user-1",
			taxRate: 0.1,
			wantErr: ErrEmptyOrder,
		},
		{
			name:    "zero quantity",
			userID:  "user-1",
			items:   []OrderItem{{ProductID: "prod-001", Price: 100, Qty: 0}},
			taxRate: 0.1,
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative tax rate",
			userID:  "user-1",
			items:   []OrderItem{laptop},
			taxRate: -0.1,
			wantErr: ErrInvalidTaxRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.userID, tt.items, tt.taxRate)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				if order != nil {
					t.Error("Expected order to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewOrder() unexpected error = %v", err)
			}
			if order.ID == "" || order.Reference == "" {
				t.Error("Order ID and reference should not be empty")
			}
			if order.Status != OrderStatusPending {
				t.Errorf("Status = %v, want %v", order.Status, OrderStatusPending)
			}
		})
	}
}

func TestNewOrder_Totals(t *testing.T) {
	// GIVEN two lines worth $200.00 and $34.99 at 10% tax
	items := []OrderItem{
		{ProductID: "a", Price: 10000, Qty: 2},
		{ProductID: "b", Price: 3499, Qty: 1},
	}

	// WHEN the order is created
	order, err := NewOrder("user-1", items, 0.1)
	if err != nil {
		t.Fatalf("NewOrder() unexpected error = %v", err)
	}

	// THEN items, tax (rounded to the cent), shipping and total add up
	if order.ItemsPrice != 23499 {
		t.Errorf("ItemsPrice = %d, want 23499", order.ItemsPrice)
	}
	if order.TaxPrice != 2350 {
		t.Errorf("TaxPrice = %d, want 2350", order.TaxPrice)
	}
	if order.ShippingPrice != FlatShipping {
		t.Errorf("ShippingPrice = %d, want %d", order.ShippingPrice, FlatShipping)
	}
	if order.TotalPrice != 23499+2350+FlatShipping {
		t.Errorf("TotalPrice = %d", order.TotalPrice)
	}
	if got := order.FormattedTotal(); got != "$268.49" {
		t.Errorf("FormattedTotal() = %q, want $268.49", got)
	}
}

func TestOrder_Transitions(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		t.Helper()
		order, err := NewOrder("user-1", []OrderItem{{ProductID: "a", Price: 100, Qty: 1}}, 0)
		if err != nil {
			t.Fatalf("NewOrder() unexpected error = %v", err)
		}
		return order
	}

	t.Run("pending to paid", func(t *testing.T) {
		order := newOrder(t)
		if err := order.Pay(); err != nil {
			t.Fatalf("Pay() error = %v", err)
		}
		if !order.IsPaid() || order.PaidAt == nil {
			t.Error("Expected order to be paid with a payment time")
		}
	})

	t.Run("pending to failed", func(t *testing.T) {
		order := newOrder(t)
		if err := order.Fail("card declined"); err != nil {
			t.Fatalf("Fail() error = %v", err)
		}
		if !order.IsFailed() || order.FailureReason != "card declined" {
			t.Errorf("Expected failed order with reason, got %v %q", order.Status, order.FailureReason)
		}
	})

	t.Run("paid order cannot fail", func(t *testing.T) {
		order := newOrder(t)
		_ = order.Pay()
		if err := order.Fail("late"); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("Fail() error = %v, want %v", err, ErrInvalidStatusTransition)
		}
	})

	t.Run("failed order cannot be paid", func(t *testing.T) {
		order := newOrder(t)
		_ = order.Fail("declined")
		if err := order.Pay(); !errors.Is(err, ErrInvalidStatusTransition) {
			t.Errorf("Pay() error = %v, want %v", err, ErrInvalidStatusTransition)
		}
		if order.IsPending() {
			t.Error("Expected order to stay failed")
		}
	})
}

func TestCard_Validate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{name: "valid visa", card: Card{Number: "4111111111111111", Expiry: "12/30", CVV: "123"}},
		{name: "spaces are ignored", card: Card{Number: "4111 1111 1111 1111", Expiry: "12/30", CVV: "123"}},
		{name: "expires this month", card: Card{Number: "4111111111111111", Expiry: "06/26", CVV: "1234"}},
		{name: "expired last month", card: Card{Number: "4111111111111111", Expiry: "05/26", CVV: "123"}, wantErr: true},
		{name: "luhn valid but expired", card: Card{Number: "4000000000000002", Expiry: "01/20", CVV: "000"}, wantErr: true},
		{name: "checksum failure", card: Card{Number: "4111111111111112", Expiry: "12/30", CVV: "123"}, wantErr: true},
		{name: "letters in number", card: Card{Number: "4111abcd11111111", Expiry: "12/30", CVV: "123"}, wantErr: true},
		{name: "bad month", card: Card{Number: "4111111111111111", Expiry: "13/30", CVV: "123"}, wantErr: true},
		{name: "no slash", card: Card{Number: "4111111111111111", Expiry: "1230", CVV: "123"}, wantErr: true},
		{name: "short cvv", card: Card{Number: "4111111111111111", Expiry: "12/30", CVV: "12"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate(now)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCard) {
					t.Errorf("Validate() error = %v, want %v", err, ErrInvalidCard)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestCart_Add(t *testing.T) {
	laptop := Product{ID: "p1", Name: "Laptop", Price: 50000, CountInStock: 3}
	soldOut := Product{ID: "p2", Name: "Phone", Price: 30000}

	cart := &Cart{UserID: "user-1"}

	if err := cart.Add(laptop, 2); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := cart.Add(laptop, 1); err != nil {
		t.Fatalf("Add() merge error = %v", err)
	}
	if len(cart.Items) != 1 || cart.Count() != 3 {
		t.Errorf("Expected one merged line of 3, got %d lines of %d", len(cart.Items), cart.Count())
	}
	if err := cart.Add(laptop, 1); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Add() beyond stock error = %v, want %v", err, ErrOutOfStock)
	}
	if err := cart.Add(soldOut, 1); !errors.Is(err, ErrOutOfStock) {
		t.Errorf("Add() sold out error = %v, want %v", err, ErrOutOfStock)
	}
	if err := cart.Add(laptop, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Add() zero error = %v, want %v", err, ErrInvalidQuantity)
	}
	if cart.Subtotal() != 150000 {
		t.Errorf("Subtotal() = %d, want 150000", cart.Subtotal())
	}
	if items := cart.OrderItems(); len(items) != 1 || items[0].Qty != 3 {
		t.Errorf("OrderItems() = %+v", items)
	}
}

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Jane ", " Jane@Example.COM ", "hash")
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	if user.Email != "jane@example.com" || user.Name != "Jane" {
		t.Errorf("NewUser() = %q %q", user.Name, user.Email)
	}
	if _, err := NewUser("Jane", "", "hash"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("NewUser() missing email error = %v", err)
	}
	if _, err := NewUser("Jane", "not-an-email", "hash"); !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("NewUser() malformed email error = %v", err)
	}
}

func TestSeedProducts(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range SeedProducts() {
		if seen[p.ID] {
			t.Errorf("duplicate product id %s", p.ID)
		}
		seen[p.ID] = true
		if !p.Matches(p.Slug) || !p.Matches(p.ID) {
			t.Errorf("%s should match its id and slug", p)
		}
	}
	if !seen["prod-instock-001"] || !seen["prod-outofstock-001"] {
		t.Error("seed should contain the in-stock and out-of-stock fixtures")
	}
}
