// Package calculator solves the distance/time/pace triangle for the pace
// calculator endpoint. Unlike the codec's silent-fallback decoders, this is
// the caller-facing validation layer: bad input yields a typed error with a
// message, never a fallback value.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"runlog/internal/pace"
	"runlog/internal/units"
)

// ErrInvalidInput marks user-correctable validation failures. Handlers map
// it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

// ErrExactlyTwo is returned unless exactly two of distance, time, and pace
// are supplied.
var ErrExactlyTwo = fmt.Errorf("%w: provide exactly two of distance, time, pace", ErrInvalidInput)

// Input carries the raw query text for one calculation. Empty strings mean
// "not provided".
type Input struct {
	Distance string
	Time     string // HH:MM:SS or MM:SS
	Pace     string // MM:SS per unit
	Unit     string // "mi" or "km"; anything else falls back to miles
}

// Result is the solved triangle, formatted for humans. The math is
// unit-agnostic; Unit only records the semantics of distance and pace.
type Result struct {
	Unit        units.Unit `json:"unit"`
	Distance    float64    `json:"distance"`
	Time        string     `json:"time"`
	Pace        string     `json:"pace"`
	TimeSeconds int        `json:"time_s"`
	PaceSeconds int        `json:"pace_s"`
}

// ParseTime accepts "MM:SS" or "HH:MM:SS" and returns total seconds.
// Minutes and seconds must be in range for the three-part form; seconds must
// be 0-59 in both forms.
func ParseTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		mm, err1 := strconv.Atoi(parts[0])
		ss, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || mm < 0 || ss < 0 || ss >= 60 {
			return 0, fmt.Errorf("%w: invalid MM:SS time %q", ErrInvalidInput, s)
		}
		return mm*60 + ss, nil
	case 3:
		hh, err1 := strconv.Atoi(parts[0])
		mm, err2 := strconv.Atoi(parts[1])
		ss, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil ||
			hh < 0 || mm < 0 || mm >= 60 || ss < 0 || ss >= 60 {
			return 0, fmt.Errorf("%w: invalid HH:MM:SS time %q", ErrInvalidInput, s)
		}
		return hh*3600 + mm*60 + ss, nil
	default:
		return 0, fmt.Errorf("%w: invalid time format %q (expected MM:SS or HH:MM:SS)", ErrInvalidInput, s)
	}
}

// ParsePace accepts "MM:SS" and returns seconds per distance unit.
func ParsePace(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: invalid pace format %q (expected MM:SS)", ErrInvalidInput, s)
	}
	mm, err1 := strconv.Atoi(parts[0])
	ss, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || mm < 0 || ss < 0 || ss >= 60 {
		return 0, fmt.Errorf("%w: invalid pace %q", ErrInvalidInput, s)
	}
	return mm*60 + ss, nil
}

// Solve computes the missing third value from the two provided.
func Solve(in Input) (*Result, error) {
	unit := units.Parse(in.Unit)

	var (
		distance             float64
		timeSeconds, paceSec int
		haveDist, haveTime   bool
		havePace             bool
	)

	if in.Distance != "" {
		d, err := strconv.ParseFloat(in.Distance, 64)
		if err != nil || math.IsNaN(d) || math.IsInf(d, 0) || d <= 0 {
			return nil, fmt.Errorf("%w: distance must be a positive number", ErrInvalidInput)
		}
		distance = d
		haveDist = true
	}
	if in.Time != "" {
		t, err := ParseTime(in.Time)
		if err != nil {
			return nil, err
		}
		timeSeconds = t
		haveTime = true
	}
	if in.Pace != "" {
		p, err := ParsePace(in.Pace)
		if err != nil {
			return nil, err
		}
		paceSec = p
		havePace = true
	}

	provided := 0
	for _, have := range []bool{haveDist, haveTime, havePace} {
		if have {
			provided++
		}
	}
	if provided != 2 {
		return nil, ErrExactlyTwo
	}

	switch {
	case haveDist && haveTime:
		paceSec = int(math.Round(float64(timeSeconds) / distance))
	case haveDist && havePace:
		timeSeconds = int(math.Round(distance * float64(paceSec)))
	default: // time + pace
		if paceSec <= 0 {
			return nil, fmt.Errorf("%w: pace must be greater than zero to derive distance", ErrInvalidInput)
		}
		distance = float64(timeSeconds) / float64(paceSec)
	}

	return &Result{
		Unit:        unit,
		Distance:    math.Round(distance*100) / 100,
		Time:        pace.SecondsToHMS(timeSeconds),
		Pace:        pace.SecondsToMMSS(paceSec),
		TimeSeconds: timeSeconds,
		PaceSeconds: paceSec,
	}, nil
}
