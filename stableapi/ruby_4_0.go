package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby40"
	"github.com/chazu/rbstable/rb"
)

// Ruby40 decodes values of CRuby 4.0.
var Ruby40 rb.API = v40{newClassifier(ruby40.Facts)}

type v40 struct{ classifier }

// The string length word is shared by the embedded and heap forms.
func (r v40) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	return v.LongAt(ruby40.RStringLenOffset)
}

func (r v40) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby40.RBasicFlagsOffset)&ruby40.RStringNoEmbed == 0 {
		return v.Addr(ruby40.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby40.RStringHeapPtrOffset)
}

func (r v40) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby40.RBasicFlagsOffset)&ruby40.RStringFStr != 0
}

func (r v40) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby40.RBasicFlagsOffset)
	if f&ruby40.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby40.RArrayEmbedLenMask) >> ruby40.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby40.RArrayHeapLenOffset)
}

func (r v40) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby40.RBasicFlagsOffset)&ruby40.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby40.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby40.RArrayHeapPtrOffset))
}

func (r v40) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}

// Typed data is marked in the header; the embedded bit tags the type word.
func (r v40) RTypedDataP(v rb.Value) bool {
	r.assertType("RTypedDataP", v, rb.TData)
	return v.Word(ruby40.RBasicFlagsOffset)&ruby40.TypedFlIsTypedData != 0
}

func (r v40) RTypedDataEmbeddedP(v rb.Value) bool {
	r.assertType("RTypedDataEmbeddedP", v, rb.TData)
	return v.Word(ruby40.RTypedDataTypeOffset)&ruby40.TypedDataEmbedded != 0
}

func (r v40) RTypedDataType(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataType", v, rb.TData)
	tag := v.Word(ruby40.RTypedDataTypeOffset) & ruby40.TypedDataEmbedded
	return unsafe.Add(v.PointerAt(ruby40.RTypedDataTypeOffset), -int(tag))
}

func (r v40) RTypedDataGetData(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataGetData", v, rb.TData)
	if r.RTypedDataEmbeddedP(v) {
		return v.Addr(ruby40.RTypedDataEmbedOffset)
	}
	return v.PointerAt(ruby40.RTypedDataDataOffset)
}
