package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"donormatch/pkg/types"

	"github.com/georgysavva/scany/v2/sqlscan"
)

// SQLiteBackend stores records in a SQLite database. Timestamps are kept as
// unix microseconds.
type SQLiteBackend struct {
	db *sql.DB
}

var _ Backend = (*SQLiteBackend)(nil)

type sqliteVictim struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Location     string `db:"location"`
	NeedType     string `db:"need_type"`
	AmountNeeded int64  `db:"amount_needed"`
	Urgency      int64  `db:"urgency"`
	Income       int64  `db:"income"`
	HasHome      bool   `db:"has_home"`
	CreatedAt    int64  `db:"created_at"`
}

type sqliteDonor struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	Location       string `db:"location"`
	ResourceType   string `db:"resource_type"`
	DonationAmount int64  `db:"donation_amount"`
	CreatedAt      int64  `db:"created_at"`
}

func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

func (b *SQLiteBackend) Migrate(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (b *SQLiteBackend) InsertVictim(ctx context.Context, victim *types.Victim) error {
	values := victimInsertMap(victim)
	values["created_at"] = victim.CreatedAt.UnixMicro()

	query, args, err := sqlite().Insert("victims").SetMap(values).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert victim query: %w", err)
	}

	id, err := b.insert(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to insert victim: %w", err)
	}
	victim.ID = id

	return nil
}

func (b *SQLiteBackend) InsertDonor(ctx context.Context, donor *types.Donor) error {
	values := donorInsertMap(donor)
	values["created_at"] = donor.CreatedAt.UnixMicro()

	query, args, err := sqlite().Insert("donors").SetMap(values).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donor query: %w", err)
	}

	id, err := b.insert(ctx, query, args)
	if err != nil {
		return fmt.Errorf("failed to insert donor: %w", err)
	}
	donor.ID = id

	return nil
}

func (b *SQLiteBackend) Victims(ctx context.Context) ([]*types.Victim, error) {
	return liteVictims(ctx, b.db)
}

func (b *SQLiteBackend) Donors(ctx context.Context) ([]*types.Donor, error) {
	return liteDonors(ctx, b.db)
}

func (b *SQLiteBackend) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	victims, err := liteVictims(ctx, tx)
	if err != nil {
		return nil, err
	}

	donors, err := liteDonors(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return &types.Snapshot{Victims: victims, Donors: donors}, nil
}

func (b *SQLiteBackend) Truncate(ctx context.Context) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"victims", "donors"} {
		query, args, err := sqlite().Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate delete query for %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) insert(ctx context.Context, query string, args []any) (int64, error) {
	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func liteVictims(ctx context.Context, q sqlscan.Querier) ([]*types.Victim, error) {
	query, args, err := sqlite().
		Select(victimColumns...).
		From("victims").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate victims query: %w", err)
	}

	var rows []*sqliteVictim
	if err := sqlscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch victims: %w", err)
	}

	victims := make([]*types.Victim, len(rows))
	for i, r := range rows {
		victims[i] = &types.Victim{
			ID:           r.ID,
			Name:         r.Name,
			Location:     r.Location,
			NeedType:     r.NeedType,
			AmountNeeded: r.AmountNeeded,
			Urgency:      types.Urgency(r.Urgency),
			Income:       r.Income,
			HasHome:      r.HasHome,
			CreatedAt:    time.UnixMicro(r.CreatedAt).UTC(),
		}
	}

	return victims, nil
}

func liteDonors(ctx context.Context, q sqlscan.Querier) ([]*types.Donor, error) {
	query, args, err := sqlite().
		Select(donorColumns...).
		From("donors").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donors query: %w", err)
	}

	var rows []*sqliteDonor
	if err := sqlscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch donors: %w", err)
	}

	donors := make([]*types.Donor, len(rows))
	for i, r := range rows {
		donors[i] = &types.Donor{
			ID:             r.ID,
			Name:           r.Name,
			Location:       r.Location,
			ResourceType:   r.ResourceType,
			DonationAmount: r.DonationAmount,
			CreatedAt:      time.UnixMicro(r.CreatedAt).UTC(),
		}
	}

	return donors, nil
}
