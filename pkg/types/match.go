package types

import "time"

// Match pairs one donor with one victim. Matches are computed, never stored.
type Match struct {
	Donor  Donor         `json:"donor"`
	Victim MatchedVictim `json:"victim"`
}

type MatchedVictim struct {
	Victim
	NeedScore float64 `json:"need_score"`
}

// Snapshot is a consistent read of both collections, each in creation order.
type Snapshot struct {
	Victims []*Victim `json:"victims"`
	Donors  []*Donor  `json:"donors"`
	TakenAt time.Time `json:"taken_at"`
}
