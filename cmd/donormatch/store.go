package main

import (
	"context"
	"fmt"

	"donormatch/internal/db"
	"donormatch/internal/store"
	"donormatch/pkg/types"

	"github.com/sirupsen/logrus"
)

// openStore builds the record store for the configured driver and applies
// the schema for the SQL backends.
func openStore(ctx context.Context, c *types.Config, logger *logrus.Logger) (*store.Store, error) {
	switch c.StoreDriver {
	case types.StoreDriverMemory:
		logger.Warn("using the in-memory store; records are lost on restart")
		return store.New(store.NewMemoryBackend()), nil

	case types.StoreDriverPostgres:
		pool, err := db.OpenPostgres(ctx, c.DatabaseURL)
		if err != nil {
			return nil, err
		}

		backend := store.NewPostgresBackend(pool)
		if err := backend.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}

		logger.Info("connected to postgres")
		return store.New(backend), nil

	case types.StoreDriverSQLite:
		conn, err := db.OpenSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, err
		}

		backend := store.NewSQLiteBackend(conn)
		if err := backend.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}

		logger.WithField("path", c.SQLitePath).Info("opened sqlite database")
		return store.New(backend), nil
	}

	return nil, fmt.Errorf("unknown store driver %q", c.StoreDriver)
}

// requirePersistentStore rejects the memory driver for one-shot commands,
// whose in-process store is gone when they exit.
func requirePersistentStore(c *types.Config, command string) error {
	if c.StoreDriver == types.StoreDriverMemory {
		return fmt.Errorf("%s needs a persistent store: set STORE_DRIVER to %s or %s", command, types.StoreDriverPostgres, types.StoreDriverSQLite)
	}
	return nil
}
