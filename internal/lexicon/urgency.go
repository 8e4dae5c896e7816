package lexicon

import (
	"fmt"
	"strings"
)

// Urgency is the ordinal severity tier attached to a symptom match.
// Values are ordered so that a larger value is more urgent.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
)

// String returns the display form of the urgency
func (u Urgency) String() string {
	switch u {
	case UrgencyHigh:
		return "High"
	case UrgencyMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// ParseUrgency parses a string into an Urgency
func ParseUrgency(s string) (Urgency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HIGH":
		return UrgencyHigh, nil
	case "MEDIUM":
		return UrgencyMedium, nil
	case "LOW":
		return UrgencyLow, nil
	default:
		return UrgencyLow, fmt.Errorf("invalid urgency: %s (valid: Low, Medium, High)", s)
	}
}

// MaxUrgency returns the more severe of a and b.
func MaxUrgency(a, b Urgency) Urgency {
	if b > a {
		return b
	}
	return a
}

// MarshalText implements encoding.TextMarshaler.
func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Urgency) UnmarshalText(text []byte) error {
	parsed, err := ParseUrgency(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
