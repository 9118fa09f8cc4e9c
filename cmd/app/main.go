// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/stockbar/stockbar/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "stockbar",
		Usage:   "Dynamic drink pricing backend",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "set-role",
				Usage: "Change a user's role by email",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email of the user to change",
					},
					&cli.StringFlag{
						Name:     "role",
						Aliases:  []string{"r"},
						Required: true,
						Usage:    "Role name to assign (USER or ADMIN)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSetRole(ctx, cmd.String("email"), cmd.String("role"))
				},
			},
			{
				Name:  "clean-sessions",
				Usage: "Delete expired login sessions",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCleanSessions(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
