package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby31"
	"github.com/chazu/rbstable/rb"
)

// Ruby31 decodes values of CRuby 3.1.
var Ruby31 rb.API = v31{newClassifier(ruby31.Facts)}

type v31 struct{ classifier }

// Embedded strings keep their length in the flags word.

func (r v31) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	f := v.Word(ruby31.RBasicFlagsOffset)
	if f&ruby31.RStringNoEmbed == 0 {
		return rb.Long((f & ruby31.RStringEmbedLenMask) >> ruby31.RStringEmbedLenShift)
	}
	return v.LongAt(ruby31.RStringHeapLenOffset)
}

func (r v31) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby31.RBasicFlagsOffset)&ruby31.RStringNoEmbed == 0 {
		return v.Addr(ruby31.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby31.RStringHeapPtrOffset)
}

// RStringInternedP reports whether v is an fstring (deduplicated, frozen
// literal).
func (r v31) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby31.RBasicFlagsOffset)&ruby31.RStringFStr != 0
}

func (r v31) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby31.RBasicFlagsOffset)
	if f&ruby31.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby31.RArrayEmbedLenMask) >> ruby31.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby31.RArrayHeapLenOffset)
}

func (r v31) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby31.RBasicFlagsOffset)&ruby31.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby31.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby31.RArrayHeapPtrOffset))
}

func (r v31) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}
