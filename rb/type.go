package rb

import "fmt"

// Type is a built-in type code (CRuby's enum ruby_value_type). Heap objects
// carry it in the low bits of their flags word; immediates are mapped onto
// the pseudo types TNil through TUndef.
type Type uint32

// Built-in type codes. The numbering has been stable since 2.0; where the
// type mask sits is a per-version layout fact.
const (
	TNone     Type = 0x00
	TObject   Type = 0x01
	TClass    Type = 0x02
	TModule   Type = 0x03
	TFloat    Type = 0x04
	TString   Type = 0x05
	TRegexp   Type = 0x06
	TArray    Type = 0x07
	THash     Type = 0x08
	TStruct   Type = 0x09
	TBignum   Type = 0x0a
	TFile     Type = 0x0b
	TData     Type = 0x0c
	TMatch    Type = 0x0d
	TComplex  Type = 0x0e
	TRational Type = 0x0f

	TNil    Type = 0x11
	TTrue   Type = 0x12
	TFalse  Type = 0x13
	TSymbol Type = 0x14
	TFixnum Type = 0x15
	TUndef  Type = 0x16

	TIMemo  Type = 0x1a
	TNode   Type = 0x1b
	TIClass Type = 0x1c
	TZombie Type = 0x1d
	TMoved  Type = 0x1e
)

var typeNames = map[Type]string{
	TNone:     "T_NONE",
	TObject:   "T_OBJECT",
	TClass:    "T_CLASS",
	TModule:   "T_MODULE",
	TFloat:    "T_FLOAT",
	TString:   "T_STRING",
	TRegexp:   "T_REGEXP",
	TArray:    "T_ARRAY",
	THash:     "T_HASH",
	TStruct:   "T_STRUCT",
	TBignum:   "T_BIGNUM",
	TFile:     "T_FILE",
	TData:     "T_DATA",
	TMatch:    "T_MATCH",
	TComplex:  "T_COMPLEX",
	TRational: "T_RATIONAL",
	TNil:      "T_NIL",
	TTrue:     "T_TRUE",
	TFalse:    "T_FALSE",
	TSymbol:   "T_SYMBOL",
	TFixnum:   "T_FIXNUM",
	TUndef:    "T_UNDEF",
	TIMemo:    "T_IMEMO",
	TNode:     "T_NODE",
	TIClass:   "T_ICLASS",
	TZombie:   "T_ZOMBIE",
	TMoved:    "T_MOVED",
}

// String returns the C name of the type code.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("T_UNKNOWN(0x%02x)", uint32(t))
}

// HeapTypes lists the type codes a live heap object can carry. TSymbol
// (dynamic symbols) and TFloat (non-flonum floats) appear both here and as
// immediates.
func HeapTypes() []Type {
	return []Type{
		TObject, TClass, TModule, TFloat, TString, TRegexp, TArray, THash,
		TStruct, TBignum, TFile, TData, TMatch, TComplex, TRational, TSymbol,
		TIMemo, TNode, TIClass, TZombie, TMoved,
	}
}
