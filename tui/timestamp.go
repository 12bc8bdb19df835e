package tui

import (
	"fmt"
	"strconv"
	"strings"
)

// parseTimestamp accepts "ss", "mm:ss" or "h:mm:ss" and returns seconds.
func parseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	var total float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		// every component after the first is at most 59
		if i > 0 && v >= 60 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		total = total*60 + v
	}

	return total, nil
}
