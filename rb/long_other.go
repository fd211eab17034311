//go:build !windows

package rb

import "math"

// Long is the target's C long. On every non-Windows target CRuby supports,
// long is as wide as a pointer.
type Long int

// ULong is the target's C unsigned long.
type ULong uint

// C long limits.
const (
	LongMax  Long  = math.MaxInt
	LongMin  Long  = math.MinInt
	ULongMax ULong = math.MaxUint
)
