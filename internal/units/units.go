// Package units handles distance units and conversion to canonical miles.
package units

import "strings"

// Conversion factors shared across the app.
const (
	MilesPerKm    = 0.621371
	MetersPerMile = 1609.344
	FeetPerMeter  = 3.28084
)

// Unit is a distance unit tag. Miles is the canonical unit for aggregation.
type Unit string

const (
	Miles      Unit = "mi"
	Kilometers Unit = "km"
)

// Parse maps a unit string to a Unit. Anything unrecognized (including the
// empty string) falls back to miles rather than being rejected.
func Parse(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "km", "kilometer", "kilometers":
		return Kilometers
	default:
		return Miles
	}
}

// KmToMiles converts kilometers to miles.
func KmToMiles(km float64) float64 {
	return km * MilesPerKm
}

// ToMiles converts a distance to canonical miles. Units other than
// Kilometers are treated as miles, matching the Parse fallback.
func ToMiles(v float64, u Unit) float64 {
	if u == Kilometers {
		return KmToMiles(v)
	}
	return v
}

// Label returns the short unit label ("mi" or "km").
func (u Unit) Label() string {
	if u == Kilometers {
		return "km"
	}
	return "mi"
}
