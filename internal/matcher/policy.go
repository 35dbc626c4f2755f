package matcher

import (
	"fmt"
	"math"

	"donormatch/internal/category"
	"donormatch/pkg/types"
)

// Compatible reports whether donor d may be paired with victim v.
type Compatible func(v *types.Victim, d *types.Donor) bool

// Priority reports whether victim a should be served before victim b.
// It must be a strict weak ordering; ties are broken by creation order.
type Priority func(a, b *types.Victim) bool

// Policy bundles the replaceable parts of a matching strategy.
type Policy struct {
	Compatible Compatible
	Priority   Priority
}

const (
	CoverageFull    = "full"
	CoveragePartial = "partial"

	PriorityUrgency   = "urgency"
	PriorityNeedScore = "need_score"
)

// NewPolicy builds a policy from configuration names.
func NewPolicy(catalog *category.Catalog, coverage, priority string) (Policy, error) {
	var p Policy

	switch coverage {
	case CoverageFull, "":
		p.Compatible = All(SameCategory(catalog), CoversNeed)
	case CoveragePartial:
		p.Compatible = All(SameCategory(catalog), HasDonation)
	default:
		return Policy{}, fmt.Errorf("unknown match coverage %q", coverage)
	}

	switch priority {
	case PriorityUrgency, "":
		p.Priority = ByUrgency
	case PriorityNeedScore:
		p.Priority = ByNeedScore
	default:
		return Policy{}, fmt.Errorf("unknown match priority %q", priority)
	}

	return p, nil
}

// DefaultPolicy matches on canonical category, requires the donation to
// cover the full need and serves the most urgent victims first.
func DefaultPolicy() Policy {
	return Policy{
		Compatible: All(SameCategory(category.Default()), CoversNeed),
		Priority:   ByUrgency,
	}
}

// withDefaults fills the parts of p left nil from DefaultPolicy.
func (p Policy) withDefaults() Policy {
	if p.Compatible != nil && p.Priority != nil {
		return p
	}

	def := DefaultPolicy()
	if p.Compatible == nil {
		p.Compatible = def.Compatible
	}
	if p.Priority == nil {
		p.Priority = def.Priority
	}

	return p
}

func SameCategory(catalog *category.Catalog) Compatible {
	return func(v *types.Victim, d *types.Donor) bool {
		return catalog.Same(v.NeedType, d.ResourceType)
	}
}

func CoversNeed(v *types.Victim, d *types.Donor) bool {
	return d.DonationAmount >= v.AmountNeeded
}

func HasDonation(_ *types.Victim, d *types.Donor) bool {
	return d.DonationAmount > 0
}

// All combines predicates; every one must hold.
func All(preds ...Compatible) Compatible {
	return func(v *types.Victim, d *types.Donor) bool {
		for _, pred := range preds {
			if !pred(v, d) {
				return false
			}
		}
		return true
	}
}

// ByUrgency orders by urgency, then amount needed, both descending.
func ByUrgency(a, b *types.Victim) bool {
	if a.Urgency != b.Urgency {
		return a.Urgency > b.Urgency
	}
	return a.AmountNeeded > b.AmountNeeded
}

// ByNeedScore orders by NeedScore, descending.
func ByNeedScore(a, b *types.Victim) bool {
	return NeedScore(a) > NeedScore(b)
}

// NeedScore weighs urgency against income, adds one point for victims
// without a home and a small term for the amount needed. Rounded to three
// decimals.
func NeedScore(v *types.Victim) float64 {
	incomeFactor := 1.0 / float64(max(v.Income, 1))

	var assetBonus float64
	if !v.HasHome {
		assetBonus = 1.0
	}

	moneyFactor := float64(v.AmountNeeded) / 10000.0
	score := float64(v.Urgency)*incomeFactor*10000.0 + assetBonus + moneyFactor

	return math.Round(score*1000) / 1000
}
