package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby27"
	"github.com/chazu/rbstable/rb"
)

// Ruby27 decodes values of CRuby 2.7. It has no fstring flag, so
// it does not implement rb.InternedStrings.
var Ruby27 rb.API = v27{newClassifier(ruby27.Facts)}

type v27 struct{ classifier }

// Embedded strings keep their length in the flags word.

func (r v27) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	f := v.Word(ruby27.RBasicFlagsOffset)
	if f&ruby27.RStringNoEmbed == 0 {
		return rb.Long((f & ruby27.RStringEmbedLenMask) >> ruby27.RStringEmbedLenShift)
	}
	return v.LongAt(ruby27.RStringHeapLenOffset)
}

func (r v27) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby27.RBasicFlagsOffset)&ruby27.RStringNoEmbed == 0 {
		return v.Addr(ruby27.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby27.RStringHeapPtrOffset)
}

func (r v27) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby27.RBasicFlagsOffset)
	if f&ruby27.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby27.RArrayEmbedLenMask) >> ruby27.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby27.RArrayHeapLenOffset)
}

func (r v27) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby27.RBasicFlagsOffset)&ruby27.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby27.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby27.RArrayHeapPtrOffset))
}

func (r v27) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}
