package database

import (
	"context"
	"fmt"
	"time"

	appconfig "transporte_xpto/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresPool connects to the expense ledger database and verifies the
// connection before returning.
func NewPostgresPool(ctx context.Context, cfg appconfig.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse expenses database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect expenses database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping expenses database: %w", err)
	}
	return pool, nil
}
