package cli

import (
	"time"

	"myexpense/internal/backend"
	applog "myexpense/internal/log"
	"myexpense/internal/services"
)

// App is what every command runs against.
type App struct {
	Service  *services.TransactionService
	Location *time.Location
	Logger   *applog.Logger

	cleanup backend.CleanupFunc
}

// NewApp wraps an existing service, mainly for tests.
func NewApp(svc *services.TransactionService, loc *time.Location) *App {
	return &App{Service: svc, Location: loc, Logger: applog.Discard()}
}

func (a *App) Close() error {
	if a.cleanup != nil {
		return a.cleanup()
	}
	return nil
}
