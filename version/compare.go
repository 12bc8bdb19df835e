// Package version compares release identifiers, both playdeck's and the mpv build it drives.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

type triple struct {
	major, minor, patch int
}

// parse accepts "1.2.3", "v1.2" and "0.37.0-12-gabcdef" style identifiers.
func parse(s string) (triple, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	core, _, _ := strings.Cut(s, "-")
	core, _, _ = strings.Cut(core, "+")

	parts := strings.Split(core, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return triple{}, fmt.Errorf("malformed version %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return triple{}, fmt.Errorf("malformed version %q", s)
		}
		nums[i] = n
	}

	return triple{major: nums[0], minor: nums[1], patch: nums[2]}, nil
}

// Compare performs a semantic comparison between two version strings.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}
