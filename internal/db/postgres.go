package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lukasminkov/creative-funding-hub/internal/config/configs"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// NewPostgresPool builds the pgx connection pool backing the store adapters
// and verifies connectivity before handing it over. The caller owns the
// pool's lifetime and must close it on shutdown.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.Addr.String())
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
