// Package seed fills a record store with demo victims and donors.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"donormatch/internal/category"
	"donormatch/internal/store"
	"donormatch/internal/utils"
	"donormatch/pkg/types"
)

// Demo records are tagged so they are easy to spot in listings.
const namePrefix = "[seed] "

type weightedUrgency struct {
	Urgency types.Urgency
	Weight  int
}

var weightedUrgencies = []weightedUrgency{
	{Urgency: types.UrgencyLow, Weight: 35},
	{Urgency: types.UrgencyMedium, Weight: 30},
	{Urgency: types.UrgencyHigh, Weight: 25},
	{Urgency: types.UrgencyCritical, Weight: 10},
}

type Options struct {
	Victims int
	Donors  int
	// Reset clears the store before seeding.
	Reset bool
}

type Result struct {
	Victims []*types.Victim
	Donors  []*types.Donor
}

// SeedRecords adds fake victims and donors to records. Categories come from
// catalog so that a share of the demo donors can actually be matched.
func SeedRecords(ctx context.Context, records *store.Store, catalog *category.Catalog, rng *rand.Rand, opts Options) (*Result, error) {
	if opts.Victims < 0 || opts.Donors < 0 {
		return nil, fmt.Errorf("seed counts must not be negative")
	}

	if opts.Reset {
		if err := records.Reset(ctx, nil); err != nil {
			return nil, fmt.Errorf("failed to reset store before seeding: %w", err)
		}
	}

	categories := catalog.Categories()
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories in catalog")
	}

	result := &Result{
		Victims: make([]*types.Victim, 0, opts.Victims),
		Donors:  make([]*types.Donor, 0, opts.Donors),
	}

	for i := 0; i < opts.Victims; i++ {
		person := fakePeople[rng.Intn(len(fakePeople))]

		victim, err := records.AddVictim(ctx, types.VictimFields{
			Name:         namePrefix + person.fullName(),
			Location:     person.Location,
			NeedType:     categories[rng.Intn(len(categories))].Slug,
			AmountNeeded: utils.Ptr(int64(rng.Intn(100)+1) * 100),
			Urgency:      utils.Ptr(pickWeightedUrgency(rng)),
			Income:       int64(rng.Intn(50)) * 1000,
			HasHome:      types.YesNo(rng.Intn(100) < 60),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fake victim %d: %w", i+1, err)
		}

		result.Victims = append(result.Victims, victim)
	}

	for i := 0; i < opts.Donors; i++ {
		name := fakeOrganizations[rng.Intn(len(fakeOrganizations))]
		location := fakePeople[rng.Intn(len(fakePeople))].Location
		if rng.Intn(100) < 40 {
			person := fakePeople[rng.Intn(len(fakePeople))]
			name, location = person.fullName(), person.Location
		}

		donor, err := records.AddDonor(ctx, types.DonorFields{
			Name:           namePrefix + name,
			Location:       location,
			ResourceType:   categories[rng.Intn(len(categories))].Slug,
			DonationAmount: utils.Ptr(int64(rng.Intn(120)+1) * 100),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create fake donor %d: %w", i+1, err)
		}

		result.Donors = append(result.Donors, donor)
	}

	return result, nil
}

func pickWeightedUrgency(rng *rand.Rand) types.Urgency {
	total := 0
	for _, item := range weightedUrgencies {
		total += item.Weight
	}

	if total == 0 {
		return types.UrgencyLow
	}

	roll := rng.Intn(total)
	running := 0
	for _, item := range weightedUrgencies {
		running += item.Weight
		if roll < running {
			return item.Urgency
		}
	}

	return types.UrgencyLow
}
