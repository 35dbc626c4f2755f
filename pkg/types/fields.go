package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Urgency is an ordinal priority, higher is more urgent.
type Urgency int

const (
	UrgencyLow      Urgency = 1
	UrgencyMedium   Urgency = 2
	UrgencyHigh     Urgency = 3
	UrgencyCritical Urgency = 4
)

var urgencyLabels = map[string]Urgency{
	"low":      UrgencyLow,
	"medium":   UrgencyMedium,
	"high":     UrgencyHigh,
	"critical": UrgencyCritical,
}

// ParseUrgency accepts a label (low, medium, high, critical) or a whole number.
// An empty string parses to low.
func ParseUrgency(s string) (Urgency, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return UrgencyLow, nil
	}

	if u, ok := urgencyLabels[strings.ToLower(s)]; ok {
		return u, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, NewValidationError("urgency", fmt.Sprintf("unknown urgency %q", s))
	}

	return Urgency(n), nil
}

func (u *Urgency) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return NewValidationError("urgency", "must be a number or a label")
		}
		parsed, err := ParseUrgency(s)
		if err != nil {
			return err
		}
		*u = parsed
		return nil
	}

	n, err := strconv.Atoi(string(data))
	if err != nil {
		return NewValidationError("urgency", "must be a whole number or a label")
	}
	*u = Urgency(n)

	return nil
}

// YesNo is a boolean that also accepts the yes/no strings sent by HTML forms.
type YesNo bool

func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "no", "n", "false", "f", "0":
		return false, nil
	case "yes", "y", "true", "t", "1":
		return true, nil
	}

	return false, fmt.Errorf("unrecognized boolean %q", s)
}

func (y *YesNo) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null":
		return nil
	case "true":
		*y = true
		return nil
	case "false":
		*y = false
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return NewValidationError("has_home", "must be a boolean or yes/no")
	}

	b, err := ParseYesNo(s)
	if err != nil {
		return NewValidationError("has_home", "must be a boolean or yes/no")
	}
	*y = YesNo(b)

	return nil
}
