// Package matcher pairs donors with victims.
package matcher

import (
	"sort"

	"donormatch/pkg/types"
)

// Matcher computes a set of donor-victim pairings from a snapshot.
type Matcher interface {
	Match(victims []*types.Victim, donors []*types.Donor) []types.Match
}

// Greedy walks donors in creation order and gives each one to the
// highest-priority unmatched compatible victim. Every donor and victim
// appears in at most one match.
type Greedy struct {
	Policy Policy
}

var _ Matcher = (*Greedy)(nil)

// NewGreedy builds a matcher. Policy parts left nil use DefaultPolicy.
func NewGreedy(policy Policy) *Greedy {
	return &Greedy{Policy: policy.withDefaults()}
}

func (g *Greedy) Match(victims []*types.Victim, donors []*types.Donor) []types.Match {
	matches := make([]types.Match, 0)
	if len(victims) == 0 || len(donors) == 0 {
		return matches
	}

	policy := g.Policy.withDefaults()
	ranked := rank(policy.Priority, victims)
	matched := make([]bool, len(ranked))

	for _, d := range sortedDonors(donors) {
		for i, v := range ranked {
			if matched[i] || !policy.Compatible(v, d) {
				continue
			}

			matched[i] = true
			matches = append(matches, types.Match{
				Donor: *d,
				Victim: types.MatchedVictim{
					Victim:    *v,
					NeedScore: NeedScore(v),
				},
			})
			break
		}
	}

	return matches
}

// rank returns victims ordered by priority, falling back to creation order
// for ties.
func rank(priority Priority, victims []*types.Victim) []*types.Victim {
	ranked := make([]*types.Victim, len(victims))
	copy(ranked, victims)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if priority(a, b) {
			return true
		}
		if priority(b, a) {
			return false
		}
		return createdBefore(a.ID, a.CreatedAt.UnixNano(), b.ID, b.CreatedAt.UnixNano())
	})

	return ranked
}

func sortedDonors(donors []*types.Donor) []*types.Donor {
	out := make([]*types.Donor, len(donors))
	copy(out, donors)

	sort.SliceStable(out, func(i, j int) bool {
		return createdBefore(out[i].ID, out[i].CreatedAt.UnixNano(), out[j].ID, out[j].CreatedAt.UnixNano())
	})

	return out
}

// Identities are assigned in creation order, so the id decides. The
// timestamp only matters for records that were never stored.
func createdBefore(idA, atA, idB, atB int64) bool {
	if idA != idB {
		return idA < idB
	}
	return atA < atB
}
