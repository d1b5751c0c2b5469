package config

import (
	"fmt"
	"strings"
)

// Response envelope styles served by the stub API
const (
	EnvelopeFlat   = "flat"
	EnvelopeNested = "nested"
	EnvelopeData   = "data"
)

// Store backends for the stub API
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// StubConfig holds configuration for the local stub API server
type StubConfig struct {
	Port      string
	Envelope  string
	Store     string
	JWTSecret string
	TaxRate   float64
}

// LoadStubConfig loads stub server configuration from environment variables
func LoadStubConfig(getenv func(string) string) (StubConfig, error) {
	cfg := StubConfig{
		Port:      getenv("STUB_PORT"),
		Envelope:  strings.ToLower(getenv("STUB_ENVELOPE")),
		Store:     strings.ToLower(getenv("STUB_STORE")),
		JWTSecret: getenv("STUB_JWT_SECRET"),
		TaxRate:   defaultFixtures().Checkout.TaxRate,
	}

	if cfg.Port == "" {
		cfg.Port = "3000" // Same port the suite targets by default
	}
	if cfg.Envelope == "" {
		cfg.Envelope = EnvelopeFlat
	}
	if cfg.Store == "" {
		cfg.Store = StoreMemory
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "amazona-stub-secret"
	}

	switch cfg.Envelope {
	case EnvelopeFlat, EnvelopeNested, EnvelopeData:
	default:
		return StubConfig{}, fmt.Errorf("%w: unknown STUB_ENVELOPE %q", ErrInvalid, cfg.Envelope)
	}
	switch cfg.Store {
	case StoreMemory, StorePostgres:
	default:
		return StubConfig{}, fmt.Errorf("%w: unknown STUB_STORE %q", ErrInvalid, cfg.Store)
	}

	return cfg, nil
}
