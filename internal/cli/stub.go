package cli

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/database"
	"github.com/amazona/e2e/internal/handlers"
	"github.com/amazona/e2e/internal/logging"
	"github.com/amazona/e2e/internal/repository"
)

// BuildStub opens the configured store and returns the stub API handler
// together with a function releasing the store. The valid user from the
// fixtures is registered so the suite can sign in without a signup step.
func BuildStub(cfg config.StubConfig, fixtures config.Fixtures, getenv func(string) string, log *zap.Logger) (http.Handler, func() error, error) {
	log = logging.OrNop(log)

	var store handlers.Store
	closeStore := func() error { return nil }

	switch cfg.Store {
	case config.StorePostgres:
		pgConfig, err := config.LoadPostgresConfig(getenv)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load postgres config: %w", err)
		}
		db, err := database.Connect(pgConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		log.Info("connected to database", zap.String("host", pgConfig.Host), zap.String("db", pgConfig.Database))
		store = repository.NewPostgresStore(db)
		closeStore = db.Close
	default:
		store = repository.NewMemoryStore()
	}

	router, err := handlers.NewStubRouter(store, handlers.StubOptions{
		Config:    cfg,
		SeedUsers: []config.Credentials{fixtures.ValidUser},
		Log:       log,
	})
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return router, closeStore, nil
}
