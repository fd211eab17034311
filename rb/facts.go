package rb

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/xxh3"
)

// Facts is the header-derived layout of one interpreter version on the
// current target, in a form generic code can consume: the simulated heap
// builds objects from it and the parity harness compares it against the
// values the oracle reads out of the real headers.
//
// The stableapi variants copy the immediate patterns and header bits out of
// Facts once at init; container offsets come straight from the constants of
// their layout package.
type Facts struct {
	Version  Version      `cbor:"1,keyasint"`
	WordSize uint64       `cbor:"2,keyasint"`
	Flonum   bool         `cbor:"3,keyasint"`
	Specials Specials     `cbor:"4,keyasint"`
	Header   Header       `cbor:"5,keyasint"`
	String   StringLayout `cbor:"6,keyasint"`
	Array    ArrayLayout  `cbor:"7,keyasint"`
	GC       GCLayout     `cbor:"8,keyasint"`

	TypedData TypedDataLayout `cbor:"9,keyasint"`
}

// Specials are the immediate tag patterns (enum ruby_special_consts).
type Specials struct {
	False         uint64 `cbor:"1,keyasint"`
	True          uint64 `cbor:"2,keyasint"`
	Nil           uint64 `cbor:"3,keyasint"`
	Undef         uint64 `cbor:"4,keyasint"`
	ImmediateMask uint64 `cbor:"5,keyasint"`
	FixnumFlag    uint64 `cbor:"6,keyasint"`
	FlonumMask    uint64 `cbor:"7,keyasint"`
	FlonumFlag    uint64 `cbor:"8,keyasint"`
	SymbolFlag    uint64 `cbor:"9,keyasint"`
	SpecialShift  uint64 `cbor:"10,keyasint"`
}

// Header describes struct RBasic and the flag bits shared by all objects.
type Header struct {
	FlagsOffset uint64 `cbor:"1,keyasint"`
	KlassOffset uint64 `cbor:"2,keyasint"`
	TypeMask    uint64 `cbor:"3,keyasint"`
	Freeze      uint64 `cbor:"4,keyasint"`
	UShift      uint64 `cbor:"5,keyasint"`
	BignumSign  uint64 `cbor:"6,keyasint"`
}

// StringLayout describes struct RString.
//
// When EmbedLenMask is zero the embedded length is a field at
// EmbedLenOffset instead of living in the flags word.
type StringLayout struct {
	NoEmbed        uint64 `cbor:"1,keyasint"`
	EmbedLenMask   uint64 `cbor:"2,keyasint"`
	EmbedLenShift  uint64 `cbor:"3,keyasint"`
	EmbedLenOffset uint64 `cbor:"4,keyasint"`
	EmbedAryOffset uint64 `cbor:"5,keyasint"`
	HeapLenOffset  uint64 `cbor:"6,keyasint"`
	HeapPtrOffset  uint64 `cbor:"7,keyasint"`
	EmbedCapacity  uint64 `cbor:"8,keyasint"`
	FStr           uint64 `cbor:"9,keyasint"`
}

// ArrayLayout describes struct RArray.
type ArrayLayout struct {
	EmbedFlag      uint64 `cbor:"1,keyasint"`
	EmbedLenMask   uint64 `cbor:"2,keyasint"`
	EmbedLenShift  uint64 `cbor:"3,keyasint"`
	EmbedAryOffset uint64 `cbor:"4,keyasint"`
	HeapLenOffset  uint64 `cbor:"5,keyasint"`
	HeapPtrOffset  uint64 `cbor:"6,keyasint"`
	EmbedCapacity  uint64 `cbor:"7,keyasint"`
}

// TypedDataLayout describes struct RTypedData on versions that can embed
// the payload in the object slot (3.3 and later). It is zero before that.
//
// Two encodings exist. When TypedFlag is zero the typed marker is the word
// at FlagOffset, holding 1 with Embedded or'd in for inline payloads. When
// TypedFlag is set the marker is that header bit and Embedded is the low
// tag bit of the type word.
type TypedDataLayout struct {
	TypeOffset  uint64 `cbor:"1,keyasint"`
	FlagOffset  uint64 `cbor:"2,keyasint"`
	DataOffset  uint64 `cbor:"3,keyasint"`
	Embedded    uint64 `cbor:"4,keyasint"`
	TypedFlag   uint64 `cbor:"5,keyasint"`
	EmbedOffset uint64 `cbor:"6,keyasint"`
}

// Supported reports whether the layout describes embeddable typed data.
func (l TypedDataLayout) Supported() bool {
	return l.Embedded != 0
}

// GCLayout describes object slot sizing. Versions without variable width
// allocation have a single size pool.
type GCLayout struct {
	BaseSlotSize  uint64 `cbor:"1,keyasint"`
	SizePoolCount uint64 `cbor:"2,keyasint"`
}

// MaxSlotSize is the size of the largest object slot.
func (g GCLayout) MaxSlotSize() uint64 {
	return g.BaseSlotSize << (g.SizePoolCount - 1)
}

var factsEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("rb: failed to create CBOR enc mode: %v", err))
	}
	factsEncMode = em
}

// MarshalFacts encodes f canonically, so equal facts always produce equal
// bytes.
func MarshalFacts(f Facts) ([]byte, error) {
	return factsEncMode.Marshal(f)
}

// UnmarshalFacts decodes facts produced by MarshalFacts.
func UnmarshalFacts(data []byte) (Facts, error) {
	var f Facts
	if err := cbor.Unmarshal(data, &f); err != nil {
		return Facts{}, fmt.Errorf("rb: unmarshal facts: %w", err)
	}
	return f, nil
}

// Fingerprint hashes the canonical encoding of f. Two builds agree on the
// layout exactly when their fingerprints match.
func (f Facts) Fingerprint() uint64 {
	data, err := MarshalFacts(f)
	if err != nil {
		// Facts holds only integers and bools.
		panic(fmt.Sprintf("rb: encode facts: %v", err))
	}
	return xxh3.Hash(data)
}
