package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/bootstrap"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/config"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/db"
	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, skipMigrate)
		},
	}

	addSkipMigrateFlag(cmd, &skipMigrate)
	return cmd
}

func addSkipMigrateFlag(cmd *cobra.Command, skipMigrate *bool) {
	cmd.Flags().BoolVar(skipMigrate, "skip-migrate", false, "do not apply pending migrations on startup")
}

func runServe(cmd *cobra.Command, skipMigrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, bootstrap.AppName, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg, log)
	if err != nil {
		return err
	}

	if !skipMigrate {
		if err := db.Migrate(ctx, log, app.Pool); err != nil {
			app.Close()
			return err
		}
	}

	return app.Run(ctx)
}
