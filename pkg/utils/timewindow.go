package utils

import (
	"fmt"
	"strings"
	"time"
)

// minutesPerDay is the modulus for clock arithmetic.
const minutesPerDay = 24 * 60

var clockFormats = []string{"3:04 PM", "15:04", "3:04PM", "15:04:05"}

// ParseClockMinutes converts a clock string such as "10:25 AM" or "14:30"
// into minutes since midnight.
func ParseClockMinutes(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range clockFormats {
		if t, err := time.Parse(layout, strings.ToUpper(trimmed)); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("unrecognized clock time %q", s)
}

// ClockDistance returns the shorter way around the clock between two
// minutes-since-midnight values, so 23:50 and 00:10 are 20 minutes apart.
func ClockDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	d %= minutesPerDay
	if d > minutesPerDay/2 {
		d = minutesPerDay - d
	}
	return d
}

// WithinWindow reports whether two clock strings are within window minutes of
// each other. Unparseable inputs never match.
func WithinWindow(a, b string, window int) bool {
	am, err := ParseClockMinutes(a)
	if err != nil {
		return false
	}
	bm, err := ParseClockMinutes(b)
	if err != nil {
		return false
	}
	return ClockDistance(am, bm) <= window
}
