package repository

import (
	"sort"
	"sync"

	"github.com/amazona/e2e/internal/models"
)

// MemoryStore keeps users, products, carts and orders in process memory. It
// is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	emails   map[string]string
	products []models.Product
	carts    map[string]models.Cart
	orders   map[string]models.Order
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  map[string]models.User{},
		emails: map[string]string{},
		carts:  map[string]models.Cart{},
		orders: map[string]models.Order{},
	}
}

// CreateUser stores a new user, rejecting a duplicate email
func (s *MemoryStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[user.Email]; taken {
		return models.ErrEmailTaken
	}
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

// GetUserByID retrieves a user by id
func (s *MemoryStore) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by normalized email
func (s *MemoryStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[models.NormalizeEmail(email)]
	if !ok {
		return nil, models.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

// SeedProducts replaces the catalogue
func (s *MemoryStore) SeedProducts(products []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append([]models.Product(nil), products...)
	return nil
}

// ListProducts returns the catalogue in seed order
func (s *MemoryStore) ListProducts() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Product(nil), s.products...), nil
}

// GetProduct retrieves a product by id or slug
func (s *MemoryStore) GetProduct(ref string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Matches(ref) {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetCart returns the user's cart, empty when none was saved
func (s *MemoryStore) GetCart(userID string) (*models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID}, nil
	}
	cart.Items = append([]models.CartItem(nil), cart.Items...)
	return &cart, nil
}

// SaveCart replaces the user's cart
func (s *MemoryStore) SaveCart(cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *cart
	saved.Items = append([]models.CartItem(nil), cart.Items...)
	s.carts[cart.UserID] = saved
	return nil
}

// CreateOrder stores a new order
func (s *MemoryStore) CreateOrder(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = copyOrder(*order)
	return nil
}

// GetOrder retrieves an order by id or reference
func (s *MemoryStore) GetOrder(ref string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if order, ok := s.orders[ref]; ok {
		order = copyOrder(order)
		return &order, nil
	}
	for _, order := range s.orders {
		if order.Reference == ref {
			order = copyOrder(order)
			return &order, nil
		}
	}
	return nil, models.ErrNotFound
}

// ListOrdersByUser returns the user's orders, oldest first
func (s *MemoryStore) ListOrdersByUser(userID string) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var orders []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, copyOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

// UpdateOrderStatus persists the order's status, failure reason and payment
// time
func (s *MemoryStore) UpdateOrderStatus(order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[order.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Status = order.Status
	stored.FailureReason = order.FailureReason
	stored.PaidAt = order.PaidAt
	stored.UpdatedAt = order.UpdatedAt
	s.orders[order.ID] = stored
	return nil
}

func copyOrder(order models.Order) models.Order {
	order.Items = append([]models.OrderItem(nil), order.Items...)
	return order
}
