package lexicon

import "testing"

func TestParseUrgency_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected Urgency
	}{
		{"High", UrgencyHigh},
		{"HIGH", UrgencyHigh},
		{"medium", UrgencyMedium},
		{"Low", UrgencyLow},
		{" low ", UrgencyLow},
	}

	for _, tc := range tests {
		result, err := ParseUrgency(tc.input)
		if err != nil {
			t.Errorf("ParseUrgency(%q) returned error: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Errorf("ParseUrgency(%q) = %v, want %v", tc.input, result, tc.expected)
		}
	}
}

func TestParseUrgency_Invalid(t *testing.T) {
	if _, err := ParseUrgency("CRITICAL"); err == nil {
		t.Error("ParseUrgency(CRITICAL) should return error")
	}
}

func TestMaxUrgency_Monotonic(t *testing.T) {
	all := []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
	for _, a := range all {
		for _, b := range all {
			got := MaxUrgency(a, b)
			if got < a || got < b {
				t.Errorf("MaxUrgency(%v, %v) = %v, lower than an input", a, b, got)
			}
			if (a == UrgencyHigh || b == UrgencyHigh) && got != UrgencyHigh {
				t.Errorf("MaxUrgency(%v, %v) = %v, want High", a, b, got)
			}
		}
	}
}

func TestUrgency_String(t *testing.T) {
	if UrgencyHigh.String() != "High" {
		t.Errorf("UrgencyHigh.String() = %s, want High", UrgencyHigh.String())
	}
	if UrgencyMedium.String() != "Medium" {
		t.Errorf("UrgencyMedium.String() = %s, want Medium", UrgencyMedium.String())
	}
	if UrgencyLow.String() != "Low" {
		t.Errorf("UrgencyLow.String() = %s, want Low", UrgencyLow.String())
	}
}
