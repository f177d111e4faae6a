package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Times are compared as minutes since midnight; intervals are half-open
// [start, end).

// TimeToMinutes parses "HH:MM" into minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	h, m, ok := strings.Cut(t, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	return hours*60 + mins, nil
}

// MinutesToTime formats minutes since midnight as "HH:MM".
func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
