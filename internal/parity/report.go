package parity

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/rbstable/rb"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("parity: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Mismatch is one operation on which the two implementations disagreed.
type Mismatch struct {
	Case string `cbor:"1,keyasint"`
	Op   string `cbor:"2,keyasint"`
	Want string `cbor:"3,keyasint"`
	Got  string `cbor:"4,keyasint"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s: want %s, got %s", m.Case, m.Op, m.Want, m.Got)
}

// Report is the outcome of one Run.
type Report struct {
	Want            rb.Version `cbor:"1,keyasint"`
	Got             rb.Version `cbor:"2,keyasint"`
	WantFingerprint uint64     `cbor:"3,keyasint"`
	GotFingerprint  uint64     `cbor:"4,keyasint"`
	// FactsDiff lists the layout fields that differ, as dotted paths.
	FactsDiff  []string   `cbor:"5,keyasint,omitempty"`
	Samples    int        `cbor:"6,keyasint"`
	Checks     int        `cbor:"7,keyasint"`
	Mismatches []Mismatch `cbor:"8,keyasint,omitempty"`
}

// OK reports whether the implementations agreed on every check and on
// their layout facts.
func (r *Report) OK() bool {
	return len(r.Mismatches) == 0 && len(r.FactsDiff) == 0
}

// MarshalReport serializes a Report to canonical CBOR.
func MarshalReport(r *Report) ([]byte, error) {
	return cborEncMode.Marshal(r)
}

// UnmarshalReport deserializes a Report from CBOR bytes.
func UnmarshalReport(data []byte) (*Report, error) {
	var r Report
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parity: unmarshal report: %w", err)
	}
	return &r, nil
}
