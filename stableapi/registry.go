package stableapi

import (
	"errors"
	"fmt"

	"github.com/chazu/rbstable/rb"
)

// ErrUnsupportedVersion is returned by ForVersion for interpreter versions
// this package has no layout for.
var ErrUnsupportedVersion = errors.New("unsupported ruby version")

var supported = []rb.API{Ruby27, Ruby30, Ruby31, Ruby32, Ruby33, Ruby34, Ruby40}

// All returns every version implementation, oldest first.
func All() []rb.API {
	out := make([]rb.API, len(supported))
	copy(out, supported)
	return out
}

// Versions lists the supported interpreter versions, oldest first.
func Versions() []rb.Version {
	out := make([]rb.Version, len(supported))
	for i, api := range supported {
		out[i] = api.Version()
	}
	return out
}

// ForVersion selects an implementation at run time. Extensions normally use
// Default, which is fixed by build tag; ForVersion serves tools that inspect
// several interpreters (the parity harness, layout dumps).
func ForVersion(v rb.Version) (rb.API, error) {
	for _, api := range supported {
		if api.Version() == v {
			return api, nil
		}
	}
	oldest, newest := supported[0].Version(), supported[len(supported)-1].Version()
	switch {
	case v.Less(oldest):
		return nil, fmt.Errorf("%w: %s predates the oldest layout, %s", ErrUnsupportedVersion, v, oldest)
	case newest.Less(v):
		return nil, fmt.Errorf("%w: %s is newer than the latest layout, %s", ErrUnsupportedVersion, v, newest)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, v)
}
