package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Locker serializes migrations across processes.
type Locker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

var ErrMigrationLockTimeout = errors.New("timed out waiting for migration lock")

// gooseUp is swapped out in tests.
var gooseUp = func(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return goose.UpContext(ctx, db, "migrations")
}

// RunMigrations applies the embedded migrations to db. When locker is not
// nil the migrations only run while it is held; acquisition is retried every
// pollInterval until ctx is done.
func RunMigrations(ctx context.Context, db *sql.DB, locker Locker, pollInterval time.Duration, logger *slog.Logger) error {
	if logger != nil {
		goose.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))
	}

	if locker != nil {
		if err := acquire(ctx, locker, pollInterval); err != nil {
			return err
		}
		defer func() {
			// the lock expires on its own if release fails
			_ = locker.Release(context.WithoutCancel(ctx))
		}()
	}

	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func acquire(ctx context.Context, locker Locker, pollInterval time.Duration) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		ok, err := locker.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire migration lock: %w", err)
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrMigrationLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}
