package controls

import (
	"fmt"
	"math"
)

const zeroLabel = "00:00"

// FormatTime renders whole seconds as mm:ss, or h:mm:ss from one hour up.
// Negative values render as 00:00.
func FormatTime(seconds int) string {
	if seconds <= 0 {
		return zeroLabel
	}

	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// wholeSeconds drops the fractional part, so 125.7 is labelled 02:05.
func wholeSeconds(seconds float64) int {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0
	}
	return int(math.Floor(seconds))
}
