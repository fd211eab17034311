package rb

import "unsafe"

// API is the operation set every implementation provides: the per-version
// reimplementations in package stableapi and the header-compiled oracle.
//
// Methods are unchecked. Type-specific accessors trust the caller to have
// established the runtime type first (RBType, TypeP or the predicates);
// calling them on anything else gives an unspecified result. Wrap an API with
// stableapi.Checked to have preconditions verified.
//
// Pointers returned by RStringPtr and RArrayConstPtr are borrowed from the
// interpreter. They are valid only while the originating value is reachable
// by the interpreter's GC and no compaction runs; never write through them.
type API interface {
	// Version is the interpreter version whose layout this API decodes.
	Version() Version
	// Facts is the layout this API was built against.
	Facts() Facts

	// SpecialConstP reports whether v is not a heap reference: an immediate,
	// nil or false.
	SpecialConstP(v Value) bool
	NilP(v Value) bool
	// Test is RB_TEST: false only for nil and false.
	Test(v Value) bool
	FixnumP(v Value) bool
	StaticSymP(v Value) bool
	// FlonumP is always false on targets without inline floats.
	FlonumP(v Value) bool
	// ImmediateP reports whether any immediate tag bit is set.
	ImmediateP(v Value) bool
	// BuiltinType reads the type code from the object header.
	// Precondition: !SpecialConstP(v).
	BuiltinType(v Value) Type
	// RBType classifies any value.
	RBType(v Value) Type
	TypeP(v Value, t Type) bool
	SymbolP(v Value) bool
	DynamicSymP(v Value) bool
	FloatTypeP(v Value) bool
	IntegerTypeP(v Value) bool

	// RBasicClass returns the klass field. ok is false for hidden objects.
	// Precondition: !SpecialConstP(v).
	RBasicClass(v Value) (klass Value, ok bool)
	// FrozenP is true for every special constant.
	FrozenP(v Value) bool
	// Precondition: RBType(v) == TBignum.
	BignumPositiveP(v Value) bool
	BignumNegativeP(v Value) bool

	// Precondition: RBType(v) == TString.
	RStringLen(v Value) Long
	RStringPtr(v Value) unsafe.Pointer
	// Precondition: RBType(v) == TArray.
	RArrayLen(v Value) Long
	RArrayConstPtr(v Value) *Value
	// RArrayAref reads element i. Precondition: 0 <= i < RArrayLen(v).
	RArrayAref(v Value, i Long) Value

	// Precondition: FixnumP(v).
	Fix2Long(v Value) Long
	Fix2ULong(v Value) ULong
	// Precondition: Fixable(i).
	Long2Fix(i Long) Value
	Fixable(i Long) bool
	PosFixable(u ULong) bool
	// Long2Num tags i, promoting to a bignum through h outside the fixnum
	// window.
	Long2Num(h Host, i Long) Value
	ULong2Num(h Host, u ULong) Value
	// Num2Long untags fixnums and asks h for everything else.
	Num2Long(h Host, v Value) Long
	Num2ULong(h Host, v Value) ULong

	// ID2Sym encodes a static symbol.
	ID2Sym(id ID) Value
	// Sym2ID decodes static symbols directly and asks h for dynamic ones.
	Sym2ID(h Host, v Value) ID
}

// InternedStrings is implemented by APIs for versions whose public headers
// expose the frozen-string-table flag (3.0 and later).
type InternedStrings interface {
	// RStringInternedP reports whether the string is in the fstring table.
	// Precondition: RBType(v) == TString.
	RStringInternedP(v Value) bool
}

// TypedData is implemented by APIs for versions whose typed data objects
// can carry their payload inline (3.3 and later).
type TypedData interface {
	// RTypedDataP reports whether the T_DATA v was created from an
	// rb_data_type_t. Precondition: RBType(v) == TData.
	RTypedDataP(v Value) bool
	// The remaining accessors require RTypedDataP(v).
	RTypedDataEmbeddedP(v Value) bool
	// RTypedDataType returns the object's rb_data_type_t.
	RTypedDataType(v Value) unsafe.Pointer
	// RTypedDataGetData returns the payload: the inline buffer for embedded
	// objects, the wrapped pointer otherwise.
	RTypedDataGetData(v Value) unsafe.Pointer
}

// Host is the part of the interpreter's C API the accessors call back into:
// arbitrary-precision integers and the identifier table. These are the only
// operations that run interpreter code.
type Host interface {
	Int2Big(i Long) Value
	UInt2Big(u ULong) Value
	Num2Long(v Value) Long
	Num2ULong(v Value) ULong
	Sym2ID(v Value) ID
}
