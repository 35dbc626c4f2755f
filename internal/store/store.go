// Package store holds victim and donor records behind a pluggable backend.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"donormatch/pkg/types"
)

// Backend persists records. Implementations assign identities in creation
// order and never reuse them. The Store serializes access, so a backend does
// not need its own locking.
type Backend interface {
	InsertVictim(ctx context.Context, victim *types.Victim) error
	InsertDonor(ctx context.Context, donor *types.Donor) error
	Victims(ctx context.Context) ([]*types.Victim, error)
	Donors(ctx context.Context) ([]*types.Donor, error)
	Snapshot(ctx context.Context) (*types.Snapshot, error)
	Truncate(ctx context.Context) error
	Close() error
}

// ResetHook runs with the contents about to be cleared. A non-nil error
// aborts the reset.
type ResetHook func(ctx context.Context, snapshot *types.Snapshot) error

// Store validates submissions and serializes writes against each other and
// against reads, so no caller ever sees a partially applied change.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	now     func() time.Time
}

func New(backend Backend) *Store {
	return &Store{
		backend: backend,
		now:     time.Now,
	}
}

func (s *Store) AddVictim(ctx context.Context, fields types.VictimFields) (*types.Victim, error) {
	fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	victim := fields.Victim()
	s.mu.Lock()
	defer s.mu.Unlock()

	victim.CreatedAt = s.timestamp()

	if err := s.backend.InsertVictim(ctx, victim); err != nil {
		return nil, fmt.Errorf("failed to add victim: %w", err)
	}

	return victim, nil
}

func (s *Store) AddDonor(ctx context.Context, fields types.DonorFields) (*types.Donor, error) {
	fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	donor := fields.Donor()
	s.mu.Lock()
	defer s.mu.Unlock()

	donor.CreatedAt = s.timestamp()

	if err := s.backend.InsertDonor(ctx, donor); err != nil {
		return nil, fmt.Errorf("failed to add donor: %w", err)
	}

	return donor, nil
}

func (s *Store) ListVictims(ctx context.Context) ([]*types.Victim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	victims, err := s.backend.Victims(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list victims: %w", err)
	}
	if victims == nil {
		victims = make([]*types.Victim, 0)
	}

	return victims, nil
}

func (s *Store) ListDonors(ctx context.Context) ([]*types.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	donors, err := s.backend.Donors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	if donors == nil {
		donors = make([]*types.Donor, 0)
	}

	return donors, nil
}

// Snapshot reads both collections under one lock.
func (s *Store) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot(ctx)
}

// Reset clears both collections. When before is set it receives the current
// contents first and can veto the reset by returning an error.
func (s *Store) Reset(ctx context.Context, before ResetHook) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if before != nil {
		snap, err := s.snapshot(ctx)
		if err != nil {
			return err
		}
		if err := before(ctx, snap); err != nil {
			return fmt.Errorf("reset aborted: %w", err)
		}
	}

	if err := s.backend.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.backend.Close()
}

func (s *Store) snapshot(ctx context.Context) (*types.Snapshot, error) {
	snap, err := s.backend.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot store: %w", err)
	}

	if snap.Victims == nil {
		snap.Victims = make([]*types.Victim, 0)
	}
	if snap.Donors == nil {
		snap.Donors = make([]*types.Donor, 0)
	}
	snap.TakenAt = s.timestamp()

	return snap, nil
}

// Postgres keeps microseconds, so timestamps are truncated up front to
// read back exactly as returned on create.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}
