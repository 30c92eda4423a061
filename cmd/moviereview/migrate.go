package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/bootstrap"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/config"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/db"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPool(cmd.Context(), func(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
					return db.Migrate(ctx, log, pool)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withPool(cmd.Context(), func(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
					return db.MigrationStatus(ctx, log, pool)
				})
			},
		},
	)
	return cmd
}

func withPool(ctx context.Context, fn func(context.Context, *logger.Logger, *pgxpool.Pool) error) error {
	cfg, err := config.LoadDB()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New("", bootstrap.AppName+"-migrate", os.Getenv("LOG_LEVEL"))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	pool, err := db.NewPool(ctx, log, cfg, bootstrap.AppName+"-migrate")
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, log, pool)
}
