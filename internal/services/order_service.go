package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/models"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	GetCart(userID string) (*models.Cart, error)
	SaveCart(cart *models.Cart) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(order *models.Order) error
	GetOrder(ref string) (*models.Order, error)
	ListOrdersByUser(userID string) ([]models.Order, error)
	UpdateOrderStatus(order *models.Order) error
}

// OrderLine names a product and a quantity
type OrderLine struct {
	ProductRef string
	Qty        int
}

// PlaceOrderInput is everything needed to place an order. When Lines is
// empty the user's cart is ordered.
type PlaceOrderInput struct {
	Lines         []OrderLine
	Address       models.ShippingAddress
	PaymentMethod string
	Card          models.Card
}

// OrderService handles cart and order business logic
type OrderService interface {
	AddToCart(userID, productRef string, qty int) (*models.Cart, error)
	GetCart(userID string) (*models.Cart, error)
	PlaceOrder(userID string, in PlaceOrderInput) (*models.Order, error)
	GetOrder(userID, ref string) (*models.Order, error)
	ListOrders(userID string) ([]models.Order, error)
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	products ProductRepository
	carts    CartRepository
	orders   OrderRepository
	payments PaymentService
	taxRate  float64
	log      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(products ProductRepository, carts CartRepository, orders OrderRepository, payments PaymentService, taxRate float64, log *zap.Logger) OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderServiceImpl{
		products: products,
		carts:    carts,
		orders:   orders,
		payments: payments,
		taxRate:  taxRate,
		log:      log,
	}
}

// AddToCart adds qty units of a product to the user's cart
func (s *OrderServiceImpl) AddToCart(userID, productRef string, qty int) (*models.Cart, error) {
	product, err := s.products.GetProduct(productRef)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productRef, err)
	}

	cart, err := s.carts.GetCart(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if err := cart.Add(*product, qty); err != nil {
		return nil, err
	}
	if err := s.carts.SaveCart(cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return cart, nil
}

// GetCart returns the user's cart
func (s *OrderServiceImpl) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// PlaceOrder prices the lines, stores a pending order and charges the card.
// A rejected card leaves a failed order behind and the error wraps
// models.ErrInvalidCard; the order is returned in both cases.
func (s *OrderServiceImpl) PlaceOrder(userID string, in PlaceOrderInput) (*models.Order, error) {
	lines := in.Lines
	fromCart := len(lines) == 0
	if fromCart {
		cart, err := s.GetCart(userID)
		if err != nil {
			return nil, err
		}
		for _, item := range cart.Items {
			lines = append(lines, OrderLine{ProductRef: item.ProductID, Qty: item.Qty})
		}
	}
	if len(lines) == 0 {
		return nil, models.ErrEmptyOrder
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetProduct(line.ProductRef)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", line.ProductRef, err)
		}
		if line.Qty > 0 && !product.InStock(line.Qty) {
			return nil, fmt.Errorf("%w: %s", models.ErrOutOfStock, product.Name)
		}
		items = append(items, models.OrderItem{ProductID: product.ID, Name: product.Name, Price: product.Price, Qty: line.Qty})
	}

	order, err := models.NewOrder(userID, items, s.taxRate)
	if err != nil {
		return nil, err
	}
	order.ShippingAddress = in.Address
	order.PaymentMethod = in.PaymentMethod

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	chargeErr := s.payments.Charge(order, in.Card)
	if !order.IsPending() {
		if err := s.orders.UpdateOrderStatus(order); err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
	}
	if chargeErr != nil {
		s.log.Info("payment declined",
			zap.String("order", order.Reference),
			zap.String("card", "****"+in.Card.Last4()),
			zap.Error(chargeErr),
		)
		return order, chargeErr
	}

	if fromCart {
		if err := s.carts.SaveCart(&models.Cart{UserID: userID}); err != nil {
			s.log.Warn("failed to clear cart", zap.String("user", userID), zap.Error(err))
		}
	}

	s.log.Info("order placed",
		zap.String("order", order.Reference),
		zap.String("status", string(order.Status)),
		zap.String("total", order.FormattedTotal()),
	)
	return order, nil
}

// GetOrder retrieves one of the user's orders by id or reference
func (s *OrderServiceImpl) GetOrder(userID, ref string) (*models.Order, error) {
	order, err := s.orders.GetOrder(ref)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// ListOrders returns the user's orders
func (s *OrderServiceImpl) ListOrders(userID string) ([]models.Order, error) {
	orders, err := s.orders.ListOrdersByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
