package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby33"
	"github.com/chazu/rbstable/rb"
)

// Ruby33 decodes values of CRuby 3.3. The nil, true and undef patterns
// were renumbered and RString gained a single length word.
var Ruby33 rb.API = v33{newClassifier(ruby33.Facts)}

type v33 struct{ classifier }

// The string length word is shared by the embedded and heap forms.
func (r v33) RStringLen(v rb.Value) rb.Long {
	r.assertType("RStringLen", v, rb.TString)
	return v.LongAt(ruby33.RStringLenOffset)
}

func (r v33) RStringPtr(v rb.Value) unsafe.Pointer {
	r.assertType("RStringPtr", v, rb.TString)
	if v.Word(ruby33.RBasicFlagsOffset)&ruby33.RStringNoEmbed == 0 {
		return v.Addr(ruby33.RStringEmbedAryOffset)
	}
	return v.PointerAt(ruby33.RStringHeapPtrOffset)
}

func (r v33) RStringInternedP(v rb.Value) bool {
	r.assertType("RStringInternedP", v, rb.TString)
	return v.Word(ruby33.RBasicFlagsOffset)&ruby33.RStringFStr != 0
}

func (r v33) RArrayLen(v rb.Value) rb.Long {
	r.assertType("RArrayLen", v, rb.TArray)
	f := v.Word(ruby33.RBasicFlagsOffset)
	if f&ruby33.RArrayEmbedFlag != 0 {
		return rb.Long((f & ruby33.RArrayEmbedLenMask) >> ruby33.RArrayEmbedLenShift)
	}
	return v.LongAt(ruby33.RArrayHeapLenOffset)
}

func (r v33) RArrayConstPtr(v rb.Value) *rb.Value {
	r.assertType("RArrayConstPtr", v, rb.TArray)
	if v.Word(ruby33.RBasicFlagsOffset)&ruby33.RArrayEmbedFlag != 0 {
		return valuesAt(v.Addr(ruby33.RArrayEmbedAryOffset))
	}
	return valuesAt(v.PointerAt(ruby33.RArrayHeapPtrOffset))
}

func (r v33) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	if debugAssertions {
		r.assertIndex("RArrayAref", v, i, r.RArrayLen(v))
	}
	return aref(r.RArrayConstPtr(v), i)
}

// Typed data marks itself through the typed_flag word: 1, or 1|EMBEDDED
// when the payload sits inline. An untyped RData has its dfree pointer there.
func (r v33) RTypedDataP(v rb.Value) bool {
	r.assertType("RTypedDataP", v, rb.TData)
	f := v.Word(ruby33.RTypedDataFlagOffset)
	return f != 0 && f <= 1|ruby33.TypedDataEmbedded
}

func (r v33) RTypedDataEmbeddedP(v rb.Value) bool {
	r.assertType("RTypedDataEmbeddedP", v, rb.TData)
	return v.Word(ruby33.RTypedDataFlagOffset)&ruby33.TypedDataEmbedded != 0
}

func (r v33) RTypedDataType(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataType", v, rb.TData)
	return v.PointerAt(ruby33.RTypedDataTypeOffset)
}

func (r v33) RTypedDataGetData(v rb.Value) unsafe.Pointer {
	r.assertType("RTypedDataGetData", v, rb.TData)
	if r.RTypedDataEmbeddedP(v) {
		return v.Addr(ruby33.RTypedDataEmbedOffset)
	}
	return v.PointerAt(ruby33.RTypedDataDataOffset)
}
