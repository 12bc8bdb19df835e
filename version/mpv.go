package version

import (
	"errors"
	"fmt"
	"regexp"
)

// MinimumMPV is the oldest mpv whose JSON IPC reports every property the
// controls observe.
const MinimumMPV = "0.33.0"

var ErrMPVTooOld = errors.New("mpv is too old")

var mpvBanner = regexp.MustCompile(`^mpv\s+(v?\d+\.\d+(?:\.\d+)?\S*)`)

// ParseMPV extracts the version from the first line of `mpv --version`.
func ParseMPV(banner string) (string, error) {
	m := mpvBanner.FindStringSubmatch(banner)
	if m == nil {
		return "", fmt.Errorf("unrecognized mpv banner %q", banner)
	}
	return m[1], nil
}

// CheckMPV reports ErrMPVTooOld when banner names a version below MinimumMPV.
// Banners it cannot parse, such as custom builds, pass.
func CheckMPV(banner string) (string, error) {
	v, err := ParseMPV(banner)
	if err != nil {
		return "", nil
	}

	if cmp, err := Compare(v, MinimumMPV); err == nil && cmp < 0 {
		return v, fmt.Errorf("%w: found %s, need %s or newer", ErrMPVTooOld, v, MinimumMPV)
	}
	return v, nil
}
