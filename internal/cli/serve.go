package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/logging"
)

// ServerDependencies holds all dependencies needed for the stub server
type ServerDependencies struct {
	Config  config.StubConfig
	Handler http.Handler
	Log     *zap.Logger
}

// RunServe starts the stub API server and blocks until SIGINT or SIGTERM
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Log)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	log := logging.OrNop(deps.Log)

	addr := fmt.Sprintf(":%s", deps.Config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           deps.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("stub server listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("envelope", deps.Config.Envelope),
		zap.String("store", deps.Config.Store),
	)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, log *zap.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, log)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, log *zap.Logger) error {
	log = logging.OrNop(log)

	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Info("shutting down server", zap.Stringer("signal", sig))

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Force close after the timeout
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Info("server stopped")
	return nil
}
