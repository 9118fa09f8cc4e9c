package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stockbar/stockbar/internal/app"
	"github.com/stockbar/stockbar/internal/config"
)

// RunCleanSessions deletes expired login sessions. Intended to run
// periodically (e.g., from cron) to keep the sessions table small.
func RunCleanSessions(ctx context.Context) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	sessionUseCase, err := container.SessionUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize session use case: %w", err)
	}

	deleted, err := sessionUseCase.CleanExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean expired sessions: %w", err)
	}

	logger.Info("expired sessions removed", slog.Int64("count", deleted))
	return nil
}
