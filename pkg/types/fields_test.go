package types

import (
	"encoding/json"
	"errors"
	"testing"

	"donormatch/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUrgency(t *testing.T) {
	tests := []struct {
		in      string
		want    Urgency
		wantErr bool
	}{
		{in: "High", want: UrgencyHigh},
		{in: " medium ", want: UrgencyMedium},
		{in: "LOW", want: UrgencyLow},
		{in: "critical", want: UrgencyCritical},
		{in: "8", want: 8},
		{in: "", want: UrgencyLow},
		{in: "-2", want: -2},
		{in: "soon", wantErr: true},
		{in: "2.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUrgency(tt.in)
			if tt.wantErr {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Contains(t, verr.Fields, "urgency")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVictimFieldsJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    VictimFields
		wantErr string
	}{
		{
			name: "numbers and booleans",
			body: `{"name":"A","location":"L","need_type":"food","amount_needed":1000,"urgency":5,"income":0,"has_home":true}`,
			want: VictimFields{Name: "A", Location: "L", NeedType: "food", AmountNeeded: utils.Ptr(int64(1000)), Urgency: utils.Ptr(Urgency(5)), HasHome: true},
		},
		{
			name: "browser form strings",
			body: `{"name":"A","location":"L","need_type":"food","amount_needed":10,"urgency":"High","income":5,"has_home":"No"}`,
			want: VictimFields{Name: "A", Location: "L", NeedType: "food", AmountNeeded: utils.Ptr(int64(10)), Urgency: utils.Ptr(UrgencyHigh), Income: 5},
		},
		{
			name: "null fields stay unset",
			body: `{"urgency":null,"amount_needed":null,"has_home":"yes"}`,
			want: VictimFields{HasHome: true},
		},
		{
			name: "explicit zero is kept",
			body: `{"urgency":0,"amount_needed":0}`,
			want: VictimFields{AmountNeeded: utils.Ptr(int64(0)), Urgency: utils.Ptr(Urgency(0))},
		},
		{
			name:    "fractional urgency",
			body:    `{"urgency":2.5}`,
			wantErr: "urgency",
		},
		{
			name:    "bad has_home",
			body:    `{"has_home":"maybe"}`,
			wantErr: "has_home",
		},
		{
			name:    "bad has_home type",
			body:    `{"has_home":3}`,
			wantErr: "has_home",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got VictimFields
			err := json.Unmarshal([]byte(tt.body), &got)
			if tt.wantErr != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVictimFieldsValidate(t *testing.T) {
	valid := VictimFields{Name: "A", Location: "L", NeedType: "food", AmountNeeded: utils.Ptr(int64(0))}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(f *VictimFields)
		field  string
		msg    string
	}{
		{name: "negative amount", mutate: func(f *VictimFields) { f.AmountNeeded = utils.Ptr(int64(-1)) }, field: "amount_needed", msg: "must not be negative"},
		{name: "missing amount", mutate: func(f *VictimFields) { f.AmountNeeded = nil }, field: "amount_needed", msg: "is required"},
		{name: "negative income", mutate: func(f *VictimFields) { f.Income = -1 }, field: "income", msg: "must not be negative"},
		{name: "negative urgency", mutate: func(f *VictimFields) { f.Urgency = utils.Ptr(Urgency(-3)) }, field: "urgency", msg: "must not be negative"},
		{name: "urgency beyond int32", mutate: func(f *VictimFields) { f.Urgency = utils.Ptr(Urgency(3000000000)) }, field: "urgency", msg: "must be at most 2147483647"},
		{name: "empty name", mutate: func(f *VictimFields) { f.Name = "" }, field: "name", msg: "is required"},
		{name: "blank location", mutate: func(f *VictimFields) { f.Location = "  " }, field: "location", msg: "is required"},
		{name: "empty need type", mutate: func(f *VictimFields) { f.NeedType = "" }, field: "need_type", msg: "is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			var verr *ValidationError
			require.ErrorAs(t, f.Validate(), &verr)
			assert.Equal(t, map[string]string{tt.field: tt.msg}, verr.Fields)
		})
	}
}

func TestVictimFieldsDefaults(t *testing.T) {
	v := VictimFields{Name: "A", Location: "L", NeedType: "food", AmountNeeded: utils.Ptr(int64(300))}.Victim()
	assert.Equal(t, UrgencyLow, v.Urgency)
	assert.Equal(t, int64(300), v.AmountNeeded)

	v = VictimFields{Name: "A", Location: "L", NeedType: "food", AmountNeeded: utils.Ptr(int64(300)), Urgency: utils.Ptr(Urgency(0))}.Victim()
	assert.Equal(t, Urgency(0), v.Urgency)
}

func TestDonorFieldsValidate(t *testing.T) {
	valid := DonorFields{Name: "D", Location: "L", ResourceType: "food", DonationAmount: utils.Ptr(int64(800))}
	require.NoError(t, valid.Validate())

	f := valid
	f.DonationAmount = utils.Ptr(int64(-1))
	f.ResourceType = ""

	var verr *ValidationError
	require.ErrorAs(t, f.Validate(), &verr)
	assert.Equal(t, map[string]string{
		"donation_amount": "must not be negative",
		"resource_type":   "is required",
	}, verr.Fields)
	assert.Equal(t, "validation failed: donation_amount: must not be negative; resource_type: is required", verr.Error())

	f = valid
	f.DonationAmount = nil
	require.ErrorAs(t, f.Validate(), &verr)
	assert.Equal(t, map[string]string{"donation_amount": "is required"}, verr.Fields)
}

func TestNormalizeTrims(t *testing.T) {
	f := VictimFields{Name: " A ", Location: "\tL\n", NeedType: " food"}
	f.Normalize()
	assert.Equal(t, VictimFields{Name: "A", Location: "L", NeedType: "food"}, f)

	d := DonorFields{Name: " D ", Location: " L ", ResourceType: " food "}
	d.Normalize()
	assert.Equal(t, DonorFields{Name: "D", Location: "L", ResourceType: "food"}, d)
}

func TestValidationErrorOrNil(t *testing.T) {
	var empty ValidationError
	assert.NoError(t, empty.OrNil())

	e := NewValidationError("name", "is required")
	e.Add("name", "second message ignored")
	assert.Equal(t, "is required", e.Fields["name"])
	assert.Error(t, e.OrNil())
}

func TestMatchJSONEmbedsFullRecords(t *testing.T) {
	m := Match{
		Donor:  Donor{ID: 1, Name: "D", ResourceType: "food", DonationAmount: 800},
		Victim: MatchedVictim{Victim: Victim{ID: 2, Name: "B", NeedType: "food", AmountNeeded: 500, Urgency: 8}, NeedScore: 80001.05},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "D", decoded["donor"]["name"])
	assert.EqualValues(t, 800, decoded["donor"]["donation_amount"])
	assert.Equal(t, "B", decoded["victim"]["name"])
	assert.EqualValues(t, 8, decoded["victim"]["urgency"])
	assert.EqualValues(t, 80001.05, decoded["victim"]["need_score"])
}
