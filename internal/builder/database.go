package builder

import (
	"context"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/verdalab/garden-backend/internal/config"
)

// setupDatabase creates a new database connection pool. The initial ping is
// retried with backoff so the service survives the database coming up a
// moment later (compose startup ordering).
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingOpts := append(cfg.DBConnectRetry.ToRetryOptions(),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			logger.Warn("database ping failed, retrying",
				zap.Uint("attempt", attempt),
				zap.Error(err),
			)
		}),
	)
	if err := retry.Do(func() error { return pool.Ping(ctx) }, pingOpts...); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
	)

	return pool, nil
}
