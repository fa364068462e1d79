package pace

import (
	"fmt"
	"math"

	"runlog/internal/models"
)

// NoPace is the placeholder shown when pace is undefined. Pace is never
// rendered as zero or an error.
const NoPace = "—"

// PaceSeconds derives pace in whole seconds per distance unit. ok is false
// when either input is non-positive, leaving the pace undefined.
func PaceSeconds(distance float64, durationSeconds int) (int, bool) {
	distance = sanitize(distance)
	if distance <= 0 || durationSeconds <= 0 {
		return 0, false
	}
	return int(math.Round(float64(durationSeconds) / distance)), true
}

// PaceDisplay formats the derived pace as MM:SS, or the placeholder when
// pace is undefined.
func PaceDisplay(distance float64, durationSeconds int) string {
	p, ok := PaceSeconds(distance, durationSeconds)
	if !ok {
		return NoPace
	}
	return SecondsToMMSS(p)
}

// FormatDistance renders a distance fixed to two decimal places. Non-finite
// values render as "0" instead of propagating.
func FormatDistance(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return fmt.Sprintf("%.2f", v)
}

// SummaryLine builds the one-line human summary for a run: distance, total
// minutes, pace, elevation. Field order, rounding, and the bullet separator
// are a display contract relied on by both frontends.
func SummaryLine(r models.Run) string {
	dist := sanitize(r.Distance)
	minutes := int(math.Round(float64(r.DurationSeconds) / 60))
	var elev float64
	if r.ElevationFt != nil {
		elev = sanitize(*r.ElevationFt)
	}
	return fmt.Sprintf("%s %s • %d min • %s/%s • %d ft",
		FormatDistance(dist), r.Unit.Label(), minutes,
		PaceDisplay(dist, r.DurationSeconds), r.Unit.Label(),
		int(math.Round(elev)))
}

// sanitize normalizes absent or non-finite numeric input to 0 at the
// deriver boundary.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
