package types

import (
	"strings"
	"time"
)

type Donor struct {
	ID             int64     `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Location       string    `db:"location" json:"location"`
	ResourceType   string    `db:"resource_type" json:"resource_type"`
	DonationAmount int64     `db:"donation_amount" json:"donation_amount"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// DonorFields is the accepted schema for a donor submission.
type DonorFields struct {
	Name           string `json:"name" form:"name" validate:"required"`
	Location       string `json:"location" form:"location" validate:"required"`
	ResourceType   string `json:"resource_type" form:"resource_type" validate:"required"`
	DonationAmount *int64 `json:"donation_amount" form:"donation_amount" validate:"required,gte=0"`
}

func (f *DonorFields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Location = strings.TrimSpace(f.Location)
	f.ResourceType = strings.TrimSpace(f.ResourceType)
}

func (f DonorFields) Validate() error {
	f.Normalize()
	return validateStruct(f)
}

func (f DonorFields) Donor() *Donor {
	d := &Donor{
		Name:         f.Name,
		Location:     f.Location,
		ResourceType: f.ResourceType,
	}
	if f.DonationAmount != nil {
		d.DonationAmount = *f.DonationAmount
	}

	return d
}
