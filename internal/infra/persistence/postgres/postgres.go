// Package postgres contains the relational persistence adapter built on GORM.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"lamsa/config"
	"lamsa/internal/domain/lifecycle"
	"lamsa/internal/errors"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond
)

// Open creates the GORM client for the configured Postgres instance and
// registers lifecycle hooks through the given append function.
func Open(cfg *config.Config, logger *slog.Logger, appendHook func(onStart, onStop func(context.Context) error)) (*gorm.DB, error) {
	pg := cfg.Storage.Postgres
	if pg == nil {
		return nil, errors.New("postgres backend selected but storage.postgres is not configured")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		pg.Host, pg.Port, pg.Username, pg.Password, pg.DBName, pg.SSLMode)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		// Explicit transactions go through txManager.Execute; GORM's
		// per-statement implicit transaction is unnecessary overhead.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	if pg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(pg.MaxOpen)
	}
	if pg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(pg.MaxIdle)
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	appendHook(
		func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

			return nil
		},
		func(context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	)

	return db, nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Postgres pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Postgres pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
