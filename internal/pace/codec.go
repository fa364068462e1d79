// Package pace converts between seconds and the colon-separated duration
// formats used by the log's time and pace fields, and derives display
// metrics from run records.
package pace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var hmsPattern = regexp.MustCompile(`^(\d{1,2}):(\d{1,2}):(\d{1,2})$`)

// SecondsToHMS formats a duration as HH:MM:SS with zero-padded groups.
// Negative input clamps to zero, so the minimum result is "00:00:00".
func SecondsToHMS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	h := totalSeconds / 3600
	m := (totalSeconds % 3600) / 60
	s := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// SecondsToMMSS formats a duration as MM:SS with zero-padded groups.
// Negative input clamps to zero.
func SecondsToMMSS(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// HMSToSeconds decodes a completed HH:MM:SS field value. Groups may be one
// or two digits, so "1:2:3" decodes the same as "01:02:03". Anything else
// decodes to 0 rather than erroring; callers that must tell garbage apart
// from an explicit zero validate the shape first.
func HMSToSeconds(text string) int {
	m := hmsPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	s, _ := strconv.Atoi(m[3])
	return h*3600 + mm*60 + s
}

// DigitsToHMS re-renders partially typed input as an HH:MM:SS mask. Digits
// fill from the right, calculator style, so the most recently typed digits
// win and at most the last six are kept. The seconds group is the literal
// trailing pair and may exceed 59. No digits at all yields "", letting
// callers tell "nothing entered" apart from an entered zero.
func DigitsToHMS(raw string) string {
	d := digitsOf(raw)
	if d == "" {
		return ""
	}
	if len(d) > 6 {
		d = d[len(d)-6:]
	}
	d = strings.Repeat("0", 6-len(d)) + d
	return d[0:2] + ":" + d[2:4] + ":" + d[4:6]
}

// DigitsToMMSS is DigitsToHMS restricted to an MM:SS mask (last four digits).
func DigitsToMMSS(raw string) string {
	d := digitsOf(raw)
	if d == "" {
		return ""
	}
	if len(d) > 4 {
		d = d[len(d)-4:]
	}
	d = strings.Repeat("0", 4-len(d)) + d
	return d[0:2] + ":" + d[2:4]
}

// digitsOf strips everything but ASCII digits.
func digitsOf(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
