package pace

import (
	"math"
	"testing"
	"time"

	"runlog/internal/models"
	"runlog/internal/units"
)

func TestPaceSeconds(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		duration int
		expected int
		ok       bool
	}{
		{"8 min miles", 5, 2400, 480, true},
		{"rounds to nearest second", 3, 1000, 333, true},
		{"zero distance undefined", 0, 2400, 0, false},
		{"zero duration undefined", 5, 0, 0, false},
		{"negative distance undefined", -5, 2400, 0, false},
		{"NaN distance undefined", math.NaN(), 2400, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PaceSeconds(tt.distance, tt.duration)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("PaceSeconds(%v, %d) = (%d, %v), want (%d, %v)",
					tt.distance, tt.duration, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestPaceDisplay(t *testing.T) {
	if got := PaceDisplay(5, 2400); got != "08:00" {
		t.Errorf("PaceDisplay(5, 2400) = %q, want %q", got, "08:00")
	}
	if got := PaceDisplay(0, 2400); got != NoPace {
		t.Errorf("PaceDisplay(0, 2400) = %q, want placeholder %q", got, NoPace)
	}
	if got := PaceDisplay(5, 0); got != NoPace {
		t.Errorf("PaceDisplay(5, 0) = %q, want placeholder %q", got, NoPace)
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"two decimals", 5.2, "5.20"},
		{"rounds", 6.213712, "6.21"},
		{"zero", 0, "0.00"},
		{"NaN clamps", math.NaN(), "0"},
		{"Inf clamps", math.Inf(1), "0"},
		{"-Inf clamps", math.Inf(-1), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDistance(tt.value); got != tt.expected {
				t.Errorf("FormatDistance(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestSummaryLine(t *testing.T) {
	elev := 243.7
	run := models.Run{
		Title:           "Easy loop",
		StartedAt:       time.Date(2025, 9, 10, 7, 15, 0, 0, time.UTC),
		Distance:        5.2,
		Unit:            units.Miles,
		DurationSeconds: 2700,
		ElevationFt:     &elev,
	}

	want := "5.20 mi • 45 min • 08:39/mi • 244 ft"
	if got := SummaryLine(run); got != want {
		t.Errorf("SummaryLine = %q, want %q", got, want)
	}
}

func TestSummaryLineMissingFields(t *testing.T) {
	run := models.Run{
		Distance:        0,
		Unit:            units.Kilometers,
		DurationSeconds: 0,
	}

	want := "0.00 km • 0 min • —/km • 0 ft"
	if got := SummaryLine(run); got != want {
		t.Errorf("SummaryLine = %q, want %q", got, want)
	}
}
