package store

import (
	"context"
	"fmt"

	"donormatch/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	victimTableName = "donormatch.victims"
	donorTableName  = "donormatch.donors"
)

// PostgresBackend stores records in the donormatch schema.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

var _ Backend = (*PostgresBackend)(nil)

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

func (b *PostgresBackend) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := b.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (b *PostgresBackend) InsertVictim(ctx context.Context, victim *types.Victim) error {
	query, args, err := psql().
		Insert(victimTableName).
		SetMap(victimInsertMap(victim)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert victim query: %w", err)
	}

	if err := b.pool.QueryRow(ctx, query, args...).Scan(&victim.ID); err != nil {
		return fmt.Errorf("failed to insert victim: %w", err)
	}

	return nil
}

func (b *PostgresBackend) InsertDonor(ctx context.Context, donor *types.Donor) error {
	query, args, err := psql().
		Insert(donorTableName).
		SetMap(donorInsertMap(donor)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	if err := b.pool.QueryRow(ctx, query, args...).Scan(&donor.ID); err != nil {
		return fmt.Errorf("failed to insert donor: %w", err)
	}

	return nil
}

func (b *PostgresBackend) Victims(ctx context.Context) ([]*types.Victim, error) {
	return pgVictims(ctx, b.pool)
}

func (b *PostgresBackend) Donors(ctx context.Context) ([]*types.Donor, error) {
	return pgDonors(ctx, b.pool)
}

// Snapshot reads both tables in one repeatable-read transaction.
func (b *PostgresBackend) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	tx, err := b.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	victims, err := pgVictims(ctx, tx)
	if err != nil {
		return nil, err
	}

	donors, err := pgDonors(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &types.Snapshot{Victims: victims, Donors: donors}, nil
}

func (b *PostgresBackend) Truncate(ctx context.Context) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{victimTableName, donorTableName} {
		query, args, err := psql().Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate delete query for %s: %w", table, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}

func pgVictims(ctx context.Context, q pgxscan.Querier) ([]*types.Victim, error) {
	query, args, err := psql().
		Select(victimColumns...).
		From(victimTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate victims query: %w", err)
	}

	victims := make([]*types.Victim, 0)
	if err := pgxscan.Select(ctx, q, &victims, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch victims: %w", err)
	}

	return victims, nil
}

func pgDonors(ctx context.Context, q pgxscan.Querier) ([]*types.Donor, error) {
	query, args, err := psql().
		Select(donorColumns...).
		From(donorTableName).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donors query: %w", err)
	}

	donors := make([]*types.Donor, 0)
	if err := pgxscan.Select(ctx, q, &donors, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donors: %w", err)
	}

	return donors, nil
}
