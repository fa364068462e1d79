package strava

import "time"

// Activity represents a Strava activity from the API
type Activity struct {
	ID                 int64     `json:"id"`
	Athlete            Athlete   `json:"athlete"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	SportType          string    `json:"sport_type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	Timezone           string    `json:"timezone"`
	Distance           float64   `json:"distance"`             // meters
	MovingTime         int       `json:"moving_time"`          // seconds
	ElapsedTime        int       `json:"elapsed_time"`         // seconds
	TotalElevationGain float64   `json:"total_elevation_gain"` // meters
}

// IsRun reports whether the activity is a run (Strava mixes rides,
// swims, and everything else into the same feed).
func (a Activity) IsRun() bool {
	return a.Type == "Run" || a.SportType == "Run" || a.SportType == "TrailRun"
}

// Athlete represents a Strava athlete (minimal info in activity response)
type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}
