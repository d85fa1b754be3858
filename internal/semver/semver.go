// Package semver implements the three-part version numbers stored in
// project settings ("major.minor.patch") and the bump rules applied to them.
package semver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Version represents a semantic version (major.minor.patch).
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseError reports a version string that is not major.minor.patch.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid version %q: %s", e.Input, e.Reason)
}

// Parse parses a version string like "1.2.3" or "v1.2.3".
func Parse(s string) (Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if trimmed == "" {
		return Version{}, &ParseError{Input: s, Reason: "empty"}
	}

	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return Version{}, &ParseError{Input: s, Reason: fmt.Sprintf("expected 3 parts, got %d", len(parts))}
	}

	names := [3]string{"major", "minor", "patch"}
	var nums [3]int
	for i, part := range parts {
		n, err := parsePart(part)
		if err != nil {
			return Version{}, &ParseError{Input: s, Reason: names[i] + " " + err.Error()}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// parsePart accepts only plain decimal digits, so "+1" and "-1" are rejected.
func parsePart(part string) (int, error) {
	if part == "" {
		return 0, fmt.Errorf("is empty")
	}
	for _, c := range part {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%q is not a number", part)
		}
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0, fmt.Errorf("%q out of range", part)
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 comparing major, then minor, then patch.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return cmpInt(v.Major, other.Major)
	case v.Minor != other.Minor:
		return cmpInt(v.Minor, other.Minor)
	default:
		return cmpInt(v.Patch, other.Patch)
	}
}

// Greater reports whether v is strictly newer than other.
func (v Version) Greater(other Version) bool {
	return v.Compare(other) > 0
}

// BumpMajor increments major and resets minor and patch.
// A part already at math.MaxInt cannot grow, so v is returned unchanged.
func (v Version) BumpMajor() Version {
	if v.Major == math.MaxInt {
		return v
	}
	return Version{Major: v.Major + 1}
}

// BumpMinor increments minor and resets patch.
func (v Version) BumpMinor() Version {
	if v.Minor == math.MaxInt {
		return v
	}
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch increments patch only.
func (v Version) BumpPatch() Version {
	if v.Patch == math.MaxInt {
		return v
	}
	v.Patch++
	return v
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
