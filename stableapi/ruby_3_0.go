package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby30"
	"github.com/chazu/rbstable/rb"
)

// Ruby30 decodes values of CRuby 3.0.
var Ruby30 rb.API = v30{newClassifier(ruby30.Facts)}

type v30 struct{ classifier }

// Embedded strings keep their length in the flags word.

func (r v30) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	f := v.Word(ruby30.RBasicFlagsOffset)
	if f&ruby30.RStringNoEmbed == 0 {
		return rb.Long((f & ruby30.RStringEmbedLenMask) >> ruby30.RStringEmbedLenShift)
	}
	return v.LongAt(ruby30.RStringHeapLenOffset)
}

func (r v30) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby30.RBasicFlagsOffset)&ruby30.RStringNoEmbed == 0 {
		return v.Addr(ruby30.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby30.RStringHeapPtrOffset)
}

// RStringInternedP reports whether v is an fstring (deduplicated, frozen
// literal). The flag first appears in 3.0.
func (r v30) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby30.RBasicFlagsOffset)&ruby30.RStringFStr != 0
}

func (r v30) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby30.RBasicFlagsOffset)
	if f&ruby30.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby30.RArrayEmbedLenMask) >> ruby30.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby30.RArrayHeapLenOffset)
}

func (r v30) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby30.RBasicFlagsOffset)&ruby30.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby30.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby30.RArrayHeapPtrOffset))
}

func (r v30) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}
