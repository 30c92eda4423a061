package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hoangtung01022003/Animation-Film-Showcase/internal/common/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Criticalf(format, v...) }
func (l gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }

func setupGoose(log *logger.Logger) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log})
	return goose.SetDialect("postgres")
}

// Migrate applies every pending embedded migration through a database/sql
// handle that shares the pool's connection settings.
func Migrate(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	if err := setupGoose(log); err != nil {
		return fmt.Errorf("goose setup: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	log.WithFields(ctx, logger.Fields{
		"version": version,
		"action":  "db_migrate",
	}).Info("database schema up to date")
	return nil
}

func MigrationStatus(ctx context.Context, log *logger.Logger, pool *pgxpool.Pool) error {
	if err := setupGoose(log); err != nil {
		return fmt.Errorf("goose setup: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	return goose.StatusContext(ctx, sqlDB, migrationsDir)
}
