package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/amazona/e2e/internal/api"
	"github.com/amazona/e2e/internal/browser"
	internalcli "github.com/amazona/e2e/internal/cli"
	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/logging"
)

var version = "0.1.0"

// loadConfig resolves the run configuration and a logger at its level
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(os.Getenv)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

// InstallCommand returns the install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and the configured browser",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			logger.Info("installing browser", zap.String("browser", cfg.Browser))
			return browser.Install(cfg.Browser)
		},
	}
}

// FixturesCommand returns the fixtures command
func FixturesCommand() *cli.Command {
	return &cli.Command{
		Name:  "fixtures",
		Usage: "Print the resolved configuration and fixtures as YAML",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(os.Getenv)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(c.App.Writer)
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

// ChainCommand returns the chain command
func ChainCommand() *cli.Command {
	return &cli.Command{
		Name:  "chain",
		Usage: "Run signup, login and get user against the API at BASE_URL",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "purchase",
				Usage: "also list products, add one to the cart and place an order",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "overall deadline for the chain",
				Value: time.Minute,
			},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
			defer cancel()

			client := api.NewClient(cfg.BaseURL, cfg.Timeouts.Action, logger)
			harness := api.NewHarness(client, cfg.Fixtures, logger)
			return internalcli.RunChain(ctx, harness, cfg.Fixtures, c.Bool("purchase"), c.App.Writer)
		},
	}
}

// StubCommand returns the stub command
func StubCommand() *cli.Command {
	return &cli.Command{
		Name:  "stub",
		Usage: "Serve the stub Amazona API until interrupted",
		Action: func(c *cli.Context) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			stubConfig, err := config.LoadStubConfig(os.Getenv)
			if err != nil {
				return err
			}

			handler, closeStore, err := internalcli.BuildStub(stubConfig, cfg.Fixtures, os.Getenv, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warn("close store", zap.Error(err))
				}
			}()

			return internalcli.RunServe(internalcli.ServerDependencies{
				Config:  stubConfig,
				Handler: handler,
				Log:     logger,
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "amazona-e2e",
		Usage:   "End-to-end test tooling for the Amazona storefront",
		Version: version,
		Commands: []*cli.Command{
			InstallCommand(),
			FixturesCommand(),
			ChainCommand(),
			StubCommand(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
