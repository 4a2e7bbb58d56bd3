package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pingAttempts = 3
	pingBackoff  = 500 * time.Millisecond
)

// DSN renders the libpq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPass, c.PostgresDatabase, c.PostgresSSLMode,
	)
}

func MustInitDB(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	var pingErr error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		pingErr = pool.Ping(pingCtx)
		pingCancel()

		if pingErr == nil {
			return pool, nil
		}

		slog.Warn("failed to ping database",
			slog.Int("attempt", attempt),
			slog.String("host", cfg.PostgresHost),
			slog.String("error", pingErr.Error()),
		)

		if attempt < pingAttempts {
			time.Sleep(pingBackoff)
		}
	}

	pool.Close()
	return nil, fmt.Errorf("failed to ping pool: %w", pingErr)
}
