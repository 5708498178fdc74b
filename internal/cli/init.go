// Package cli wires configuration, logging and the record store into the
// myexpense command tree.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"myexpense/internal/backend"
	"myexpense/internal/config"
	applog "myexpense/internal/log"
	"myexpense/internal/services"
	"myexpense/internal/stats"
)

// SetupLogger initializes structured logging from the configured level and
// format, writing to stderr so command output stays clean.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(cfg *config.Config) (*applog.Logger, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentCLI,
		Format:    cfg.LogFormat,
		Writer:    os.Stderr,
	})
	applog.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile(filenames ...string) {
	_ = godotenv.Load(filenames...)
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenApp builds the service stack described by cfg. The returned App owns
// the store and must be closed.
func OpenApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve timezone: %w", err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, err
	}

	svc := services.NewTransactionService(result.Store, services.Options{
		Calendar:    stats.NewCalendar(loc),
		TopN:        cfg.TopN,
		RecentLimit: cfg.RecentLimit,
		Logger:      logger,
	})

	logger.DebugContext(ctx, "Application ready",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, backendCfg.Type,
		"timezone", loc.String())

	return &App{
		Service:  svc,
		Location: loc,
		Logger:   logger,
		cleanup:  result.Cleanup,
	}, nil
}

// Bootstrap runs the full startup sequence used by the binary.
func Bootstrap(ctx context.Context) (*App, error) {
	LoadEnvFile()
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}
	logger, err := SetupLogger(cfg)
	if err != nil {
		return nil, err
	}
	return OpenApp(ctx, cfg, logger)
}
