package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"donormatch/internal/db"
	"donormatch/internal/utils"
	"donormatch/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	backend := NewSQLiteBackend(conn)
	require.NoError(t, backend.Migrate(ctx))

	s := New(backend)
	t.Cleanup(func() { s.Close() })

	return s
}

func newPostgresStore(t *testing.T) *Store {
	t.Helper()

	url := os.Getenv("DONORMATCH_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("DONORMATCH_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.OpenPostgres(ctx, url)
	require.NoError(t, err)

	backend := NewPostgresBackend(pool)
	require.NoError(t, backend.Migrate(ctx))
	require.NoError(t, backend.Truncate(ctx))

	s := New(backend)
	t.Cleanup(func() { s.Close() })

	return s
}

func TestStoreBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) *Store{
		"memory":   func(t *testing.T) *Store { return New(NewMemoryBackend()) },
		"sqlite":   newSQLiteStore,
		"postgres": newPostgresStore,
	}

	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			t.Run("AddVictim assigns identity and round trips", func(t *testing.T) {
				testAddVictimRoundTrip(t, newStore(t))
			})
			t.Run("AddDonor assigns identity and round trips", func(t *testing.T) {
				testAddDonorRoundTrip(t, newStore(t))
			})
			t.Run("lists keep submission order", func(t *testing.T) {
				testListOrder(t, newStore(t))
			})
			t.Run("validation rejects before storing", func(t *testing.T) {
				testValidation(t, newStore(t))
			})
			t.Run("reset clears both collections", func(t *testing.T) {
				testReset(t, newStore(t))
			})
			t.Run("reset hook can veto", func(t *testing.T) {
				testResetHookVeto(t, newStore(t))
			})
			t.Run("identities are not reused after reset", func(t *testing.T) {
				testIdentityAfterReset(t, newStore(t))
			})
			t.Run("snapshot", func(t *testing.T) {
				testSnapshot(t, newStore(t))
			})
		})
	}
}

func victimFields(name string) types.VictimFields {
	return types.VictimFields{
		Name:         name,
		Location:     "Multan",
		NeedType:     "food",
		AmountNeeded: utils.Ptr(int64(1500)),
		Urgency:      utils.Ptr(types.UrgencyHigh),
		Income:       12000,
		HasHome:      true,
	}
}

func donorFields(name string) types.DonorFields {
	return types.DonorFields{
		Name:           name,
		Location:       "Quetta",
		ResourceType:   "food",
		DonationAmount: utils.Ptr(int64(2500)),
	}
}

func testAddVictimRoundTrip(t *testing.T, s *Store) {
	ctx := context.Background()

	fields := victimFields("  Asha ")
	created, err := s.AddVictim(ctx, fields)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Asha", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	require.Len(t, victims, 1)

	got := victims[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "Multan", got.Location)
	assert.Equal(t, "food", got.NeedType)
	assert.Equal(t, int64(1500), got.AmountNeeded)
	assert.Equal(t, types.UrgencyHigh, got.Urgency)
	assert.Equal(t, int64(12000), got.Income)
	assert.True(t, got.HasHome)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", created.CreatedAt, got.CreatedAt)
}

func testAddDonorRoundTrip(t *testing.T, s *Store) {
	ctx := context.Background()

	created, err := s.AddDonor(ctx, donorFields("Bilal"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	donors, err := s.ListDonors(ctx)
	require.NoError(t, err)
	require.Len(t, donors, 1)

	got := donors[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Bilal", got.Name)
	assert.Equal(t, "Quetta", got.Location)
	assert.Equal(t, "food", got.ResourceType)
	assert.Equal(t, int64(2500), got.DonationAmount)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func testListOrder(t *testing.T, s *Store) {
	ctx := context.Background()

	names := []string{"one", "two", "three", "four", "five"}
	for _, name := range names {
		_, err := s.AddVictim(ctx, victimFields(name))
		require.NoError(t, err)
		_, err = s.AddDonor(ctx, donorFields(name))
		require.NoError(t, err)
	}

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	require.Len(t, victims, len(names))

	donors, err := s.ListDonors(ctx)
	require.NoError(t, err)
	require.Len(t, donors, len(names))

	for i, name := range names {
		assert.Equal(t, name, victims[i].Name)
		assert.Equal(t, name, donors[i].Name)
		if i > 0 {
			assert.Greater(t, victims[i].ID, victims[i-1].ID)
			assert.Greater(t, donors[i].ID, donors[i-1].ID)
		}
	}
}

func testValidation(t *testing.T, s *Store) {
	ctx := context.Background()

	bad := victimFields("x")
	bad.AmountNeeded = utils.Ptr(int64(-1))
	bad.Income = -5
	bad.Location = "   "

	_, err := s.AddVictim(ctx, bad)
	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount_needed")
	assert.Contains(t, verr.Fields, "income")
	assert.Contains(t, verr.Fields, "location")

	badDonor := donorFields("")
	badDonor.DonationAmount = utils.Ptr(int64(-100))
	_, err = s.AddDonor(ctx, badDonor)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "donation_amount")

	missing := victimFields("no amount")
	missing.AmountNeeded = nil
	_, err = s.AddVictim(ctx, missing)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"amount_needed": "is required"}, verr.Fields)

	huge := victimFields("huge urgency")
	huge.Urgency = utils.Ptr(types.Urgency(3000000000))
	_, err = s.AddVictim(ctx, huge)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "urgency")

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	assert.Empty(t, victims)

	donors, err := s.ListDonors(ctx)
	require.NoError(t, err)
	assert.Empty(t, donors)
}

func testReset(t *testing.T, s *Store) {
	ctx := context.Background()

	require.NoError(t, s.Reset(ctx, nil), "reset on an empty store")

	_, err := s.AddVictim(ctx, victimFields("a"))
	require.NoError(t, err)
	_, err = s.AddDonor(ctx, donorFields("b"))
	require.NoError(t, err)

	var archived *types.Snapshot
	err = s.Reset(ctx, func(_ context.Context, snap *types.Snapshot) error {
		archived = snap
		return nil
	})
	require.NoError(t, err)

	require.NotNil(t, archived)
	assert.Len(t, archived.Victims, 1)
	assert.Len(t, archived.Donors, 1)

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	assert.NotNil(t, victims)
	assert.Empty(t, victims)

	donors, err := s.ListDonors(ctx)
	require.NoError(t, err)
	assert.NotNil(t, donors)
	assert.Empty(t, donors)
}

func testResetHookVeto(t *testing.T, s *Store) {
	ctx := context.Background()

	_, err := s.AddVictim(ctx, victimFields("kept"))
	require.NoError(t, err)

	boom := errors.New("archive unavailable")
	err = s.Reset(ctx, func(context.Context, *types.Snapshot) error { return boom })
	require.ErrorIs(t, err, boom)

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	assert.Len(t, victims, 1)
}

func testIdentityAfterReset(t *testing.T, s *Store) {
	ctx := context.Background()

	first, err := s.AddVictim(ctx, victimFields("before"))
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx, nil))

	second, err := s.AddVictim(ctx, victimFields("after"))
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func testSnapshot(t *testing.T, s *Store) {
	ctx := context.Background()

	empty, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Victims)
	assert.NotNil(t, empty.Donors)
	assert.Empty(t, empty.Victims)

	for _, name := range []string{"a", "b"} {
		_, err := s.AddVictim(ctx, victimFields(name))
		require.NoError(t, err)
	}
	_, err = s.AddDonor(ctx, donorFields("c"))
	require.NoError(t, err)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Victims, 2)
	require.Len(t, snap.Donors, 1)
	assert.Equal(t, "a", snap.Victims[0].Name)
	assert.WithinDuration(t, time.Now(), snap.TakenAt, time.Minute)
}

func TestMemoryStoreConcurrentWrites(t *testing.T) {
	s := New(NewMemoryBackend())
	ctx := context.Background()

	const writers, perWriter = 8, 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, err := s.AddVictim(ctx, victimFields("v"))
				assert.NoError(t, err)
				_, err = s.Snapshot(ctx)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	require.Len(t, victims, writers*perWriter)

	seen := make(map[int64]bool)
	for _, v := range victims {
		assert.False(t, seen[v.ID], "duplicate id %d", v.ID)
		seen[v.ID] = true
	}
}

func TestMemoryListReturnsCopies(t *testing.T) {
	s := New(NewMemoryBackend())
	ctx := context.Background()

	_, err := s.AddVictim(ctx, victimFields("original"))
	require.NoError(t, err)

	victims, err := s.ListVictims(ctx)
	require.NoError(t, err)
	victims[0].Name = "changed"

	again, err := s.ListVictims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].Name)
}

func TestClosedMemoryStore(t *testing.T) {
	s := New(NewMemoryBackend())
	require.NoError(t, s.Close())

	_, err := s.AddVictim(context.Background(), victimFields("late"))
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}
