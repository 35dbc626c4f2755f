package store

import (
	"context"

	"donormatch/pkg/types"
)

// MemoryBackend keeps records in process memory.
type MemoryBackend struct {
	victims []*types.Victim
	donors  []*types.Donor

	lastVictimID int64
	lastDonorID  int64
	closed       bool
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) InsertVictim(_ context.Context, victim *types.Victim) error {
	if m.closed {
		return types.ErrStoreClosed
	}

	m.lastVictimID++
	victim.ID = m.lastVictimID

	stored := *victim
	m.victims = append(m.victims, &stored)

	return nil
}

func (m *MemoryBackend) InsertDonor(_ context.Context, donor *types.Donor) error {
	if m.closed {
		return types.ErrStoreClosed
	}

	m.lastDonorID++
	donor.ID = m.lastDonorID

	stored := *donor
	m.donors = append(m.donors, &stored)

	return nil
}

func (m *MemoryBackend) Victims(_ context.Context) ([]*types.Victim, error) {
	if m.closed {
		return nil, types.ErrStoreClosed
	}

	out := make([]*types.Victim, len(m.victims))
	for i, v := range m.victims {
		c := *v
		out[i] = &c
	}

	return out, nil
}

func (m *MemoryBackend) Donors(_ context.Context) ([]*types.Donor, error) {
	if m.closed {
		return nil, types.ErrStoreClosed
	}

	out := make([]*types.Donor, len(m.donors))
	for i, d := range m.donors {
		c := *d
		out[i] = &c
	}

	return out, nil
}

func (m *MemoryBackend) Snapshot(ctx context.Context) (*types.Snapshot, error) {
	victims, err := m.Victims(ctx)
	if err != nil {
		return nil, err
	}

	donors, err := m.Donors(ctx)
	if err != nil {
		return nil, err
	}

	return &types.Snapshot{Victims: victims, Donors: donors}, nil
}

// Truncate drops all records. Identity counters keep counting so ids are
// never handed out twice.
func (m *MemoryBackend) Truncate(_ context.Context) error {
	if m.closed {
		return types.ErrStoreClosed
	}

	m.victims = nil
	m.donors = nil

	return nil
}

func (m *MemoryBackend) Close() error {
	m.closed = true
	return nil
}
