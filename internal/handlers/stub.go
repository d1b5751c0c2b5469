package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/services"
)

// Store is everything the stub services persist
type Store interface {
	services.UserRepository
	services.ProductRepository
	services.CartRepository
	services.OrderRepository
}

// StubOptions configure NewStubRouter
type StubOptions struct {
	Config     config.StubConfig
	SeedUsers  []config.Credentials
	BcryptCost int
	Now        func() time.Time
	Log        *zap.Logger
}

// NewStubRouter seeds the store with the catalogue and the given users, then
// builds the services and routes of the stub API
func NewStubRouter(store Store, opts StubOptions) (*mux.Router, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	if err := store.SeedProducts(models.SeedProducts()); err != nil {
		return nil, fmt.Errorf("failed to seed products: %w", err)
	}

	auth := services.NewAuthService(store, services.NewTokenIssuer(opts.Config.JWTSecret, 0), opts.BcryptCost)
	for _, creds := range opts.SeedUsers {
		name := strings.Split(creds.Email, "@")[0]
		_, err := auth.Signup(name, creds.Email, creds.Password)
		if err != nil && !errors.Is(err, models.ErrEmailTaken) {
			return nil, fmt.Errorf("failed to seed user %s: %w", creds.Email, err)
		}
	}

	payments := services.NewPaymentService(opts.Now)
	orders := services.NewOrderService(store, store, store, payments, opts.Config.TaxRate, log)

	return NewRouter(Dependencies{
		Auth:     auth,
		Catalog:  services.NewCatalogService(store),
		Orders:   orders,
		Envelope: Envelope(opts.Config.Envelope),
		Log:      log,
	}), nil
}
