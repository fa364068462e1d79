package pace

import "testing"

func TestSecondsToHMS(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00:00"},
		{-1, "00:00:00"},
		{-3600, "00:00:00"},
		{5, "00:00:05"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{754, "00:12:34"},
		{3600, "01:00:00"},
		{3723, "01:02:03"},
		{45296, "12:34:56"},
		{360000, "100:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SecondsToHMS(tt.seconds)
			if result != tt.expected {
				t.Errorf("SecondsToHMS(%d) = %q, want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}

func TestSecondsToMMSS(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{30, "00:30"},
		{330, "05:30"},
		{480, "08:00"},
		{599, "09:59"},
		{600, "10:00"},
		{6000, "100:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SecondsToMMSS(tt.seconds)
			if result != tt.expected {
				t.Errorf("SecondsToMMSS(%d) = %q, want %q", tt.seconds, result, tt.expected)
			}
		})
	}
}

func TestHMSToSeconds(t *testing.T) {
	tests := []struct {
		text     string
		expected int
	}{
		{"00:00:00", 0},
		{"1:2:3", 3723}, // single-digit groups decode like padded ones
		{"1:02:03", 3723},
		{"01:2:03", 3723},
		{"12:34:56", 45296},
		{"99:59:59", 359999},
		{"bad", 0},
		{"", 0},
		{"12:34", 0},
		{"12:34:56:78", 0},
		{" 01:02:03", 0},
		{"01:02:03 ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			result := HMSToSeconds(tt.text)
			if result != tt.expected {
				t.Errorf("HMSToSeconds(%q) = %d, want %d", tt.text, result, tt.expected)
			}
		})
	}
}

// Encoding then decoding must return the original value for any
// non-negative count of seconds representable as HH:MM:SS.
func TestHMSRoundTrip(t *testing.T) {
	for _, s := range []int{0, 1, 59, 60, 61, 3599, 3600, 3661, 45296, 86399, 359999} {
		if got := HMSToSeconds(SecondsToHMS(s)); got != s {
			t.Errorf("round trip of %d seconds came back as %d", s, got)
		}
	}
}

func TestDigitsToHMS(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"empty", "", ""},
		{"no digits", "ab:cd", ""},
		{"one digit", "5", "00:00:05"},
		{"two digits", "45", "00:00:45"},
		{"four digits", "4000", "00:40:00"},
		{"six digits", "234567", "23:45:67"},
		{"overflow keeps trailing six", "1234567", "23:45:67"},
		{"ignores separators", "1:23:45", "01:23:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DigitsToHMS(tt.raw)
			if result != tt.expected {
				t.Errorf("DigitsToHMS(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}

func TestDigitsToMMSS(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"empty", "", ""},
		{"one digit", "5", "00:05"},
		{"three digits", "800", "08:00"},
		{"four digits", "1234", "12:34"},
		{"overflow keeps trailing four", "91234", "12:34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DigitsToMMSS(tt.raw)
			if result != tt.expected {
				t.Errorf("DigitsToMMSS(%q) = %q, want %q", tt.raw, result, tt.expected)
			}
		})
	}
}
