package parity

import (
	"github.com/kr/pretty"

	"github.com/chazu/rbstable/rb"
)

// DiffFacts lists the fields of want and got that differ, one entry per
// field, e.g. "String.EmbedCapacity: 615 != 614".
func DiffFacts(want, got rb.Facts) []string {
	if want.Fingerprint() == got.Fingerprint() {
		return nil
	}
	return pretty.Diff(want, got)
}
