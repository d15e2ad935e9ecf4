// Package release handles version tuples, the releases table, per-entity
// change notes, and ontology-level version metadata injection.
package release

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a semantic version tuple in x.y.z form.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses an x.y.z version string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("version %q is not in x.y.z form", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version %q is not in x.y.z form", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String renders the dotted form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Dashed renders the form used in versionIRI path segments (dots replaced
// by dashes).
func (v Version) Dashed() string {
	return fmt.Sprintf("%d-%d-%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 as v is ordered before, equal to, or after
// other.
func (v Version) Compare(other Version) int {
	pairs := [][2]int{
		{v.Major, other.Major},
		{v.Minor, other.Minor},
		{v.Patch, other.Patch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// LessOrEqual reports whether v is ordered before or equal to other.
func (v Version) LessOrEqual(other Version) bool {
	return v.Compare(other) <= 0
}
