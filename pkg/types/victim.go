package types

import (
	"strings"
	"time"
)

type Victim struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Location     string    `db:"location" json:"location"`
	NeedType     string    `db:"need_type" json:"need_type"`
	AmountNeeded int64     `db:"amount_needed" json:"amount_needed"`
	Urgency      Urgency   `db:"urgency" json:"urgency"`
	Income       int64     `db:"income" json:"income"`
	HasHome      bool      `db:"has_home" json:"has_home"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// VictimFields is the accepted schema for a victim submission. Amounts are
// pointers so a missing or null value can be told apart from zero.
type VictimFields struct {
	Name         string   `json:"name" form:"name" validate:"required"`
	Location     string   `json:"location" form:"location" validate:"required"`
	NeedType     string   `json:"need_type" form:"need_type" validate:"required"`
	AmountNeeded *int64   `json:"amount_needed" form:"amount_needed" validate:"required,gte=0"`
	Urgency      *Urgency `json:"urgency" form:"urgency" validate:"omitempty,gte=0,lte=2147483647"`
	Income       int64    `json:"income" form:"income" validate:"gte=0"`
	HasHome      YesNo    `json:"has_home" form:"has_home"`
}

func (f *VictimFields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	f.NeedType = strings.TrimSpace(f.NeedType)
}

func (f VictimFields) Validate() error {
	f.Normalize()
	return validateStruct(f)
}

// Victim builds the record without identity or timestamps. An omitted
// urgency is low.
func (f VictimFields) Victim() *Victim {
	v := &Victim{
		Name:     f.Name,
		Location: f.Location,
		NeedType: f.NeedType,
		Urgency:  UrgencyLow,
		Income:   f.Income,
		HasHome:  bool(f.HasHome),
	}
	if f.AmountNeeded != nil {
		v.AmountNeeded = *f.AmountNeeded
	}
	if f.Urgency != nil {
		v.Urgency = *f.Urgency
	}

	return v
}
