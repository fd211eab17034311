package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby32"
	"github.com/chazu/rbstable/rb"
)

// Ruby32 decodes values of CRuby 3.2. Strings moved their embedded length
// out of the flags into a dedicated word, and variable-width slots let
// embedded strings and arrays grow past three words.
var Ruby32 rb.API = v32{newClassifier(ruby32.Facts)}

type v32 struct{ classifier }

func (r v32) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	if v.Word(ruby32.RBasicFlagsOffset)&ruby32.RStringNoEmbed == 0 {
		return v.LongAt(ruby32.RStringEmbedLenOffset)
	}
	return v.LongAt(ruby32.RStringHeapLenOffset)
}

func (r v32) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby32.RBasicFlagsOffset)&ruby32.RStringNoEmbed == 0 {
		return v.Addr(ruby32.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby32.RStringHeapPtrOffset)
}

func (r v32) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby32.RBasicFlagsOffset)&ruby32.RStringFStr != 0
}

func (r v32) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby32.RBasicFlagsOffset)
	if f&ruby32.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby32.RArrayEmbedLenMask) >> ruby32.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby32.RArrayHeapLenOffset)
}

func (r v32) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby32.RBasicFlagsOffset)&ruby32.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby32.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby32.RArrayHeapPtrOffset))
}

func (r v32) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}
