package rb

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an interpreter major.minor pair. Teeny releases never change
// the layout, so they are not part of the key.
type Version struct {
	Major int `cbor:"1,keyasint" toml:"major"`
	Minor int `cbor:"2,keyasint" toml:"minor"`
}

// String formats the version as "3.4".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Tag returns the build tag that selects this version, e.g. "ruby_3_4".
func (v Version) Tag() string {
	return fmt.Sprintf("ruby_%d_%d", v.Major, v.Minor)
}

// Less orders versions chronologically.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// ParseVersion accepts "3.4", "3.4.2" or "3.4.0-preview1" and keeps the
// major.minor part.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, fmt.Errorf("invalid ruby version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid ruby version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1]}, nil
}
