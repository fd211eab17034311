//go:build windows

package rb

import "math"

// Long is the target's C long, which stays 32 bits wide on Windows even
// when VALUE is 64 bits.
type Long int32

// ULong is the target's C unsigned long.
type ULong uint32

// C long limits.
const (
	LongMax  Long  = math.MaxInt32
	LongMin  Long  = math.MinInt32
	ULongMax ULong = math.MaxUint32
)
