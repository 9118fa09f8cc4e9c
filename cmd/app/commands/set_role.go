package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stockbar/stockbar/internal/app"
	"github.com/stockbar/stockbar/internal/config"
	userDomain "github.com/stockbar/stockbar/internal/user/domain"
)

// RunSetRole changes a user's role by email. Valid role names are USER and
// ADMIN. Role changes take effect on the user's next authenticated request.
func RunSetRole(ctx context.Context, email, roleName string) error {
	roleName = strings.ToUpper(strings.TrimSpace(roleName))
	if roleName != userDomain.RoleNameUser && roleName != userDomain.RoleNameAdmin {
		return fmt.Errorf("invalid role: %s (valid options: USER, ADMIN)", roleName)
	}

	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userUseCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	if err := userUseCase.SetRole(ctx, email, roleName); err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	logger.Info("role updated",
		slog.String("email", email),
		slog.String("role", roleName),
	)
	return nil
}
