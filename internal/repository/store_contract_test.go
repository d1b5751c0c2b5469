package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amazona/e2e/internal/models"
)

// store is the behaviour shared by the memory and Postgres stores
type store interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	SeedProducts(products []models.Product) error
	ListProducts() ([]models.Product, error)
	GetProduct(ref string) (*models.Product, error)
	GetCart(userID string) (*models.Cart, error)
	SaveCart(cart *models.Cart) error
	CreateOrder(order *models.Order) error
	GetOrder(ref string) (*models.Order, error)
	ListOrdersByUser(userID string) ([]models.Order, error)
	UpdateOrderStatus(order *models.Order) error
}

var (
	_ store = (*MemoryStore)(nil)
	_ store = (*PostgresStore)(nil)
)

func runStoreContract(t *testing.T, newStore func(t *testing.T) store) {
	t.Run("users", func(t *testing.T) {
		s := newStore(t)

		// GIVEN a stored user
		user, err := models.NewUser("Jane", "jane@example.com", "hash")
		require.NoError(t, err)
		require.NoError(t, s.CreateUser(user))

		// WHEN it is looked up by id and by differently cased email
		byID, err := s.GetUserByID(user.ID)
		require.NoError(t, err)
		byEmail, err := s.GetUserByEmail("JANE@example.com")
		require.NoError(t, err)

		// THEN both lookups find it and duplicates are refused
		assert.Equal(t, "Jane", byID.Name)
		assert.Equal(t, user.ID, byEmail.ID)

		dup, err := models.NewUser("Other", "jane@example.com", "hash")
		require.NoError(t, err)
		assert.ErrorIs(t, s.CreateUser(dup), models.ErrEmailTaken)

		_, err = s.GetUserByEmail("nobody@example.com")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("products", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SeedProducts(models.SeedProducts()))

		products, err := s.ListProducts()
		require.NoError(t, err)
		require.Len(t, products, len(models.SeedProducts()))
		assert.Equal(t, "prod-001", products[0].ID)

		bySlug, err := s.GetProduct("running-shoes")
		require.NoError(t, err)
		assert.Equal(t, "prod-006", bySlug.ID)
		assert.Equal(t, int64(12000), bySlug.Price)

		_, err = s.GetProduct("missing")
		assert.True(t, errors.Is(err, models.ErrNotFound))
	})

	t.Run("carts", func(t *testing.T) {
		s := newStore(t)
		user, err := models.NewUser("Cart Owner", "cart@example.com", "hash")
		require.NoError(t, err)
		require.NoError(t, s.CreateUser(user))

		empty, err := s.GetCart(user.ID)
		require.NoError(t, err)
		assert.Empty(t, empty.Items)

		empty.Items = []models.CartItem{{ProductID: "prod-001", Name: "Laptop", Price: 89999, Qty: 2}}
		require.NoError(t, s.SaveCart(empty))

		saved, err := s.GetCart(user.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, saved.Count())
	})

	t.Run("orders", func(t *testing.T) {
		s := newStore(t)
		user, err := models.NewUser("Buyer", "buyer@example.com", "hash")
		require.NoError(t, err)
		require.NoError(t, s.CreateUser(user))

		// GIVEN a pending order
		order, err := models.NewOrder(user.ID, []models.OrderItem{
			{ProductID: "prod-001", Name: "Laptop", Price: 89999, Qty: 1},
			{ProductID: "prod-004", Name: "Book", Price: 3499, Qty: 2},
		}, 0.1)
		require.NoError(t, err)
		order.ShippingAddress = models.ShippingAddress{FullName: "Buyer", City: "Testville"}
		order.CreatedAt = order.CreatedAt.Truncate(time.Millisecond)
		order.UpdatedAt = order.CreatedAt
		require.NoError(t, s.CreateOrder(order))

		// WHEN it is paid
		require.NoError(t, order.Pay())
		require.NoError(t, s.UpdateOrderStatus(order))

		// THEN lookups by id and reference see the paid order with its lines
		byID, err := s.GetOrder(order.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPaid, byID.Status)
		assert.NotNil(t, byID.PaidAt)
		require.Len(t, byID.Items, 2)
		assert.Equal(t, "prod-004", byID.Items[1].ProductID)
		assert.Equal(t, "Testville", byID.ShippingAddress.City)

		byRef, err := s.GetOrder(order.Reference)
		require.NoError(t, err)
		assert.Equal(t, order.ID, byRef.ID)

		mine, err := s.ListOrdersByUser(user.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		_, err = s.GetOrder("00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) store {
		return NewMemoryStore()
	})
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	cart := &models.Cart{UserID: "u1", Items: []models.CartItem{{ProductID: "p", Qty: 1}}}
	require.NoError(t, s.SaveCart(cart))

	// Mutating the caller's slice must not change the stored cart
	cart.Items[0].Qty = 99
	saved, err := s.GetCart("u1")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Items[0].Qty)

	assert.ErrorIs(t, s.UpdateOrderStatus(&models.Order{ID: "missing"}), models.ErrNotFound)
}
