//go:build cgo && rboracle

package oracle

// #include "compiled.h"
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

// API answers every accessor by calling the interpreter's own header code.
// The rb.Host arguments are ignored: promotion and symbol lookups go to the
// booted interpreter directly.
type API struct {
	vm    *VM
	facts rb.Facts
}

// interned adds RStringInternedP on versions whose headers define
// RSTRING_FSTR.
type interned struct {
	*API
}

// typed adds the typed data accessors on 3.3 and later.
type typed struct {
	interned
}

var (
	_ rb.API             = (*API)(nil)
	_ rb.InternedStrings = interned{}
	_ rb.TypedData       = typed{}
)

// New reads the layout facts out of the running interpreter and returns its
// accessors.
func New(vm *VM) (rb.API, error) {
	f, err := readFacts(vm)
	if err != nil {
		return nil, err
	}
	a := &API{vm: vm, facts: f}
	if !call(vm, func() bool { return C.impl_has_fstring() != 0 }) {
		return a, nil
	}
	if call(vm, func() bool { return C.impl_has_typed_data() != 0 }) {
		return typed{interned{a}}, nil
	}
	return interned{a}, nil
}

func cv(v rb.Value) C.rbo_value { return C.rbo_value(v) }

func truth(i C.int) bool { return i != 0 }

func (a *API) Version() rb.Version { return a.facts.Version }
func (a *API) Facts() rb.Facts     { return a.facts }

// ---------------------------------------------------------------------------
// Classifier
// ---------------------------------------------------------------------------

func (a *API) SpecialConstP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_special_const_p(cv(v))) })
}

func (a *API) NilP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_nil_p(cv(v))) })
}

func (a *API) Test(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_rb_test(cv(v))) })
}

func (a *API) FixnumP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_fixnum_p(cv(v))) })
}

func (a *API) StaticSymP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_static_sym_p(cv(v))) })
}

func (a *API) FlonumP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_flonum_p(cv(v))) })
}

func (a *API) ImmediateP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_immediate_p(cv(v))) })
}

func (a *API) BuiltinType(v rb.Value) rb.Type {
	return call(a.vm, func() rb.Type { return rb.Type(C.impl_builtin_type(cv(v))) })
}

func (a *API) RBType(v rb.Value) rb.Type {
	return call(a.vm, func() rb.Type { return rb.Type(C.impl_rb_type(cv(v))) })
}

func (a *API) TypeP(v rb.Value, t rb.Type) bool {
	return call(a.vm, func() bool { return truth(C.impl_type_p(cv(v), C.int(t))) })
}

func (a *API) SymbolP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_symbol_p(cv(v))) })
}

func (a *API) DynamicSymP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_dynamic_sym_p(cv(v))) })
}

func (a *API) FloatTypeP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_float_type_p(cv(v))) })
}

func (a *API) IntegerTypeP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_integer_type_p(cv(v))) })
}

// ---------------------------------------------------------------------------
// Object header
// ---------------------------------------------------------------------------

func (a *API) RBasicClass(v rb.Value) (rb.Value, bool) {
	k := call(a.vm, func() rb.Value { return rb.Value(C.impl_rbasic_class(cv(v))) })
	return k, k != 0
}

func (a *API) FrozenP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_frozen_p(cv(v))) })
}

func (a *API) BignumPositiveP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_bignum_positive_p(cv(v))) })
}

func (a *API) BignumNegativeP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_bignum_negative_p(cv(v))) })
}

// ---------------------------------------------------------------------------
// Containers
// ---------------------------------------------------------------------------

func (a *API) RStringLen(v rb.Value) rb.Long {
	return call(a.vm, func() rb.Long { return rb.Long(C.impl_rstring_len(cv(v))) })
}

func (a *API) RStringPtr(v rb.Value) unsafe.Pointer {
	return call(a.vm, func() unsafe.Pointer { return unsafe.Pointer(C.impl_rstring_ptr(cv(v))) })
}

func (a *API) RArrayLen(v rb.Value) rb.Long {
	return call(a.vm, func() rb.Long { return rb.Long(C.impl_rarray_len(cv(v))) })
}

func (a *API) RArrayConstPtr(v rb.Value) *rb.Value {
	return call(a.vm, func() *rb.Value {
		return (*rb.Value)(unsafe.Pointer(C.impl_rarray_const_ptr(cv(v))))
	})
}

func (a *API) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	return call(a.vm, func() rb.Value { return rb.Value(C.impl_rarray_aref(cv(v), C.long(i))) })
}

func (a interned) RStringInternedP(v rb.Value) bool {
	return call(a.vm, func() bool {
		var state C.int
		r := C.impl_rstring_interned_p(cv(v), &state)
		raise("RStringInternedP", state)
		return truth(r)
	})
}

func (a typed) RTypedDataP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_rtypeddata_p(cv(v))) })
}

func (a typed) RTypedDataEmbeddedP(v rb.Value) bool {
	return call(a.vm, func() bool { return truth(C.impl_rtypeddata_embedded_p(cv(v))) })
}

func (a typed) RTypedDataType(v rb.Value) unsafe.Pointer {
	return call(a.vm, func() unsafe.Pointer { return unsafe.Pointer(C.impl_rtypeddata_type(cv(v))) })
}

func (a typed) RTypedDataGetData(v rb.Value) unsafe.Pointer {
	return call(a.vm, func() unsafe.Pointer { return C.impl_rtypeddata_get_data(cv(v)) })
}

// ---------------------------------------------------------------------------
// Codec
// ---------------------------------------------------------------------------

func (a *API) Fix2Long(v rb.Value) rb.Long {
	return call(a.vm, func() rb.Long { return rb.Long(C.impl_fix2long(cv(v))) })
}

func (a *API) Fix2ULong(v rb.Value) rb.ULong {
	return call(a.vm, func() rb.ULong { return rb.ULong(C.impl_fix2ulong(cv(v))) })
}

func (a *API) Long2Fix(i rb.Long) rb.Value {
	return call(a.vm, func() rb.Value { return rb.Value(C.impl_long2fix(C.long(i))) })
}

func (a *API) Fixable(i rb.Long) bool {
	return call(a.vm, func() bool { return truth(C.impl_fixable(C.long(i))) })
}

func (a *API) PosFixable(u rb.ULong) bool {
	return call(a.vm, func() bool { return truth(C.impl_posfixable(C.ulong(u))) })
}

func (a *API) Long2Num(_ rb.Host, i rb.Long) rb.Value {
	return call(a.vm, func() rb.Value { return rb.Value(C.impl_long2num(C.long(i))) })
}

func (a *API) ULong2Num(_ rb.Host, u rb.ULong) rb.Value {
	return call(a.vm, func() rb.Value { return rb.Value(C.impl_ulong2num(C.ulong(u))) })
}

func (a *API) Num2Long(_ rb.Host, v rb.Value) rb.Long {
	return call(a.vm, func() rb.Long {
		var state C.int
		r := C.impl_num2long(cv(v), &state)
		raise("Num2Long", state)
		return rb.Long(r)
	})
}

func (a *API) Num2ULong(_ rb.Host, v rb.Value) rb.ULong {
	return call(a.vm, func() rb.ULong {
		var state C.int
		r := C.impl_num2ulong(cv(v), &state)
		raise("Num2ULong", state)
		return rb.ULong(r)
	})
}

func (a *API) ID2Sym(id rb.ID) rb.Value {
	return call(a.vm, func() rb.Value { return rb.Value(C.impl_id2sym(C.rbo_id(id))) })
}

func (a *API) Sym2ID(_ rb.Host, v rb.Value) rb.ID {
	return call(a.vm, func() rb.ID {
		var state C.int
		r := C.impl_sym2id(cv(v), &state)
		raise("Sym2ID", state)
		return rb.ID(r)
	})
}

func (a *API) String() string {
	return fmt.Sprintf("oracle(ruby %s)", a.facts.Version)
}
