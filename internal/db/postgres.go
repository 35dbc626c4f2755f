package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "donormatch"
	defaultSchema   = "donormatch"
)

// OpenPostgres connects a pool to databaseURL. Tables live in the donormatch
// schema unless the url sets its own search_path.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := postgresConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := ping(ctx, pool.Ping); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

func postgresConfig(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	params := cfg.ConnConfig.RuntimeParams
	if _, ok := params["search_path"]; !ok {
		params["search_path"] = defaultSchema
	}
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = applicationName
	}

	if cfg.MaxConns > 8 {
		cfg.MaxConns = 8
	}
	cfg.MaxConnIdleTime = 10 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	return cfg, nil
}

func ping(ctx context.Context, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := fn(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	return nil
}
