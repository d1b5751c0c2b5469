package services

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/repository"
)

var (
	validCard   = models.Card{Number: "4111111111111111", Expiry: "12/30", CVV: "123", Name: "TEST USER"}
	expiredCard = models.Card{Number: "4000000000000002", Expiry: "01/20", CVV: "000", Name: "TEST USER"}
)

// MockOrderRepository is a mock implementation of OrderRepository for testing
type MockOrderRepository struct {
	CreateOrderFunc       func(*models.Order) error
	GetOrderFunc          func(string) (*models.Order, error)
	UpdateOrderStatusFunc func(*models.Order) error
}

func (m *MockOrderRepository) CreateOrder(order *models.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(order)
	}
	return nil
}

func (m *MockOrderRepository) GetOrder(ref string) (*models.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ref)
	}
	return &models.Order{Reference: ref}, nil
}

func (m *MockOrderRepository) ListOrdersByUser(string) ([]models.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) UpdateOrderStatus(order *models.Order) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(order)
	}
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func newTestOrderService(t *testing.T) (OrderService, *repository.MemoryStore) {
	t.Helper()
	store := repository.NewMemoryStore()
	if err := store.SeedProducts(models.SeedProducts()); err != nil {
		t.Fatalf("SeedProducts() error = %v", err)
	}
	service := NewOrderService(store, store, store, NewPaymentService(fixedClock), 0.1, zaptest.NewLogger(t))
	return service, store
}

func TestOrderService_AddToCart(t *testing.T) {
	service, _ := newTestOrderService(t)

	cart, err := service.AddToCart("user-1", "prod-instock-001", 2)
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if cart.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cart.Count())
	}

	// The cart is persisted between calls
	cart, err = service.AddToCart("user-1", "lenovo-ideapad-laptop", 1)
	if err != nil {
		t.Fatalf("AddToCart() by slug error = %v", err)
	}
	if cart.Count() != 3 || len(cart.Items) != 1 {
		t.Errorf("Expected one line of 3, got %+v", cart.Items)
	}

	if _, err := service.AddToCart("user-1", "prod-outofstock-001", 1); !errors.Is(err, models.ErrOutOfStock) {
		t.Errorf("AddToCart() out of stock error = %v", err)
	}
	if _, err := service.AddToCart("user-1", "missing", 1); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("AddToCart() missing product error = %v", err)
	}
}

func TestOrderService_PlaceOrder(t *testing.T) {
	tests := []struct {
		name       string
		input      PlaceOrderInput
		wantErr    error
		wantStatus models.OrderStatus
	}{
		{
			name:       "valid card pays the order",
			input:      PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-004", Qty: 2}}, Card: validCard},
			wantStatus: models.OrderStatusPaid,
		},
		{
			name:       "expired card fails the order",
			input:      PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-004", Qty: 1}}, Card: expiredCard},
			wantErr:    models.ErrInvalidCard,
			wantStatus: models.OrderStatusFailed,
		},
		{
			name:       "no card leaves the order pending",
			input:      PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-004", Qty: 1}}, PaymentMethod: "PayPal"},
			wantStatus: models.OrderStatusPending,
		},
		{
			name:    "empty cart",
			input:   PlaceOrderInput{Card: validCard},
			wantErr: models.ErrEmptyOrder,
		},
		{
			name:    "unknown product",
			input:   PlaceOrderInput{Lines: []OrderLine{{ProductRef: "missing", Qty: 1}}},
			wantErr: models.ErrNotFound,
		},
		{
			name:    "sold out product",
			input:   PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-outofstock-001", Qty: 1}}},
			wantErr: models.ErrOutOfStock,
		},
		{
			name:    "zero quantity",
			input:   PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-004", Qty: 0}}},
			wantErr: models.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, store := newTestOrderService(t)

			order, err := service.PlaceOrder("user-1", tt.input)

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlaceOrder() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && err != nil {
				t.Fatalf("PlaceOrder() unexpected error = %v", err)
			}
			if tt.wantStatus == "" {
				if order != nil {
					t.Errorf("Expected no order, got %s", order.Reference)
				}
				return
			}

			if order.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", order.Status, tt.wantStatus)
			}
			stored, err := store.GetOrder(order.ID)
			if err != nil {
				t.Fatalf("GetOrder() error = %v", err)
			}
			if stored.Status != tt.wantStatus {
				t.Errorf("stored Status = %s, want %s", stored.Status, tt.wantStatus)
			}
		})
	}
}

func TestOrderService_PlaceOrder_FromCart(t *testing.T) {
	service, _ := newTestOrderService(t)

	// GIVEN a cart with one book
	if _, err := service.AddToCart("user-1", "prod-004", 1); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	// WHEN the cart is ordered without explicit lines
	order, err := service.PlaceOrder("user-1", PlaceOrderInput{Card: validCard})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	// THEN totals include tax and shipping and the cart is emptied
	want := int64(3499) + 350 + models.FlatShipping
	if order.TotalPrice != want {
		t.Errorf("TotalPrice = %d, want %d", order.TotalPrice, want)
	}
	cart, err := service.GetCart("user-1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(cart.Items) != 0 {
		t.Errorf("Expected empty cart after order, got %+v", cart.Items)
	}
}

func TestOrderService_GetOrder_Ownership(t *testing.T) {
	service, _ := newTestOrderService(t)
	order, err := service.PlaceOrder("user-1", PlaceOrderInput{Lines: []OrderLine{{ProductRef: "prod-004", Qty: 1}}})
	if err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if _, err := service.GetOrder("user-1", order.Reference); err != nil {
		t.Errorf("GetOrder() owner error = %v", err)
	}
	if _, err := service.GetOrder("user-2", order.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("GetOrder() other user error = %v, want %v", err, models.ErrNotFound)
	}

	orders, err := service.ListOrders("user-1")
	if err != nil || len(orders) != 1 {
		t.Errorf("ListOrders() = %d orders, %v", len(orders), err)
	}
}

func TestOrderService_RepositoryErrors(t *testing.T) {
	store := repository.NewMemoryStore()
	_ = store.SeedProducts(models.SeedProducts())

	tests := []struct {
		name string
		repo *MockOrderRepository
	}{
		{
			name: "create fails",
			repo: &MockOrderRepository{CreateOrderFunc: func(*models.Order) error { return errors.New("database error") }},
		},
		{
			name: "status update fails",
			repo: &MockOrderRepository{UpdateOrderStatusFunc: func(*models.Order) error { return errors.New("database error") }},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewOrderService(store, store, tt.repo, NewPaymentService(fixedClock), 0.1, nil)
			order, err := service.PlaceOrder("user-1", PlaceOrderInput{
				Lines: []OrderLine{{ProductRef: "prod-004", Qty: 1}},
				Card:  validCard,
			})
			if err == nil {
				t.Error("PlaceOrder() expected error")
			}
			if order != nil {
				t.Error("Expected order to be nil when the repository fails")
			}
		})
	}
}
