package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby34"
	"github.com/chazu/rbstable/rb"
)

// Ruby34 decodes values of CRuby 3.4.
var Ruby34 rb.API = v34{newClassifier(ruby34.Facts)}

type v34 struct{ classifier }

// The string length word is shared by the embedded and heap forms.
func (r v34) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	return v.LongAt(ruby34.RStringLenOffset)
}

func (r v34) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby34.RBasicFlagsOffset)&ruby34.RStringNoEmbed == 0 {
		return v.Addr(ruby34.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby34.RStringHeapPtrOffset)
}

func (r v34) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby34.RBasicFlagsOffset)&ruby34.RStringFStr != 0
}

func (r v34) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby34.RBasicFlagsOffset)
	if f&ruby34.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby34.RArrayEmbedLenMask) >> ruby34.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby34.RArrayHeapLenOffset)
}

func (r v34) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby34.RBasicFlagsOffset)&ruby34.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby34.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby34.RArrayHeapPtrOffset))
}

func (r v34) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}

// Typed data marks itself through the typed_flag word: 1, or 1|EMBEDDED
// when the payload sits inline. An untyped RData has its dfree pointer there.
func (r v34) RTypedDataP(v rb.Value) bool {
	r.assertType("RTypedDataP", v, rb.TData)
	f := v.Word(ruby34.RTypedDataFlagOffset)
	return f != 0 && f <= 1|ruby34.TypedDataEmbedded
}

func (r v34) RTypedDataEmbeddedP(v rb.Value) bool {
	r.assertType("RTypedDataEmbeddedP", v, rb.TData)
	return v.Word(ruby34.RTypedDataFlagOffset)&ruby34.TypedDataEmbedded != 0
}

func (r v34) RTypedDataType(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataType", v, rb.TData)
	return v.PointerAt(ruby34.RTypedDataTypeOffset)
}

func (r v34) RTypedDataGetData(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataGetData", v, rb.TData)
	if r.RTypedDataEmbeddedP(v) {
		return v.Addr(ruby34.RTypedDataEmbedOffset)
	}
	return v.PointerAt(ruby34.RTypedDataDataOffset)
}
