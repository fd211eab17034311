package stableapi

import (
	"fmt"
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

// Checked wraps api so every accessor verifies its precondition first. A
// violation panics with *rb.PreconditionError instead of reading arbitrary
// memory. The wrapper keeps rb.InternedStrings and rb.TypedData if api
// provides them; every version with typed data also has the fstring flag.
//
// The unchecked variants remain the default; Checked is for callers that
// accept values from untrusted code paths, and for tests.
func Checked(api rb.API) rb.API {
	c := checked{API: api}
	is, ok := api.(rb.InternedStrings)
	if !ok {
		return c
	}
	ci := checkedInterned{checked: c, interned: is}
	if td, ok := api.(rb.TypedData); ok {
		return checkedTyped{checkedInterned: ci, typed: td}
	}
	return ci
}

type checked struct {
	rb.API
}

func (c checked) fail(op string, v rb.Value, want, got string) {
	panic(&rb.PreconditionError{Op: op, Value: v, Want: want, Got: got})
}

func (c checked) requireHeap(op string, v rb.Value) {
	if c.API.SpecialConstP(v) {
		c.fail(op, v, "heap reference", c.API.RBType(v).String())
	}
}

func (c checked) requireType(op string, v rb.Value, want rb.Type) {
	c.requireHeap(op, v)
	if got := c.API.BuiltinType(v); got != want {
		c.fail(op, v, want.String(), got.String())
	}
}

func (c checked) BuiltinType(v rb.Value) rb.Type {
	c.requireHeap("BuiltinType", v)
	return c.API.BuiltinType(v)
}

func (c checked) RBasicClass(v rb.Value) (rb.Value, bool) {
	c.requireHeap("RBasicClass", v)
	return c.API.RBasicClass(v)
}

func (c checked) BignumPositiveP(v rb.Value) bool {
	c.requireType("BignumPositiveP", v, rb.TBignum)
	return c.API.BignumPositiveP(v)
}

func (c checked) BignumNegativeP(v rb.Value) bool {
	c.requireType("BignumNegativeP", v, rb.TBignum)
	return c.API.BignumNegativeP(v)
}

func (c checked) RStringLen(v rb.Value) rb.Long {
	c.requireType("RStringLen", v, rb.TString)
	return c.API.RStringLen(v)
}

func (c checked) RStringPtr(v rb.Value) unsafe.Pointer {
	c.requireType("RStringPtr", v, rb.TString)
	return c.API.RStringPtr(v)
}

func (c checked) RArrayLen(v rb.Value) rb.Long {
	c.requireType("RArrayLen", v, rb.TArray)
	return c.API.RArrayLen(v)
}

func (c checked) RArrayConstPtr(v rb.Value) *rb.Value {
	c.requireType("RArrayConstPtr", v, rb.TArray)
	return c.API.RArrayConstPtr(v)
}

func (c checked) RArrayAref(v rb.Value, i rb.Long) rb.Value {
	c.requireType("RArrayAref", v, rb.TArray)
	if n := c.API.RArrayLen(v); i < 0 || i >= n {
		c.fail("RArrayAref", v, fmt.Sprintf("index in [0, %d)", n), fmt.Sprint(i))
	}
	return c.API.RArrayAref(v, i)
}

func (c checked) Fix2Long(v rb.Value) rb.Long {
	if !c.API.FixnumP(v) {
		c.fail("Fix2Long", v, rb.TFixnum.String(), c.API.RBType(v).String())
	}
	return c.API.Fix2Long(v)
}

func (c checked) Fix2ULong(v rb.Value) rb.ULong {
	if !c.API.FixnumP(v) {
		c.fail("Fix2ULong", v, rb.TFixnum.String(), c.API.RBType(v).String())
	}
	return c.API.Fix2ULong(v)
}

func (c checked) Long2Fix(i rb.Long) rb.Value {
	if !c.API.Fixable(i) {
		c.fail("Long2Fix", rb.Value(i), "fixable long", fmt.Sprint(i))
	}
	return c.API.Long2Fix(i)
}

type checkedInterned struct {
	checked
	interned rb.InternedStrings
}

func (c checkedInterned) RStringInternedP(v rb.Value) bool {
	c.requireType("RStringInternedP", v, rb.TString)
	return c.interned.RStringInternedP(v)
}

type checkedTyped struct {
	checkedInterned
	typed rb.TypedData
}

func (c checkedTyped) RTypedDataP(v rb.Value) bool {
	c.requireType("RTypedDataP", v, rb.TData)
	return c.typed.RTypedDataP(v)
}

// requireTyped rejects untyped RData, whose type and flag words hold the
// mark and free functions instead.
func (c checkedTyped) requireTyped(op string, v rb.Value) {
	c.requireType(op, v, rb.TData)
	if !c.typed.RTypedDataP(v) {
		c.fail(op, v, "typed data", "untyped T_DATA")
	}
}

func (c checkedTyped) RTypedDataEmbeddedP(v rb.Value) bool {
	c.requireTyped("RTypedDataEmbeddedP", v)
	return c.typed.RTypedDataEmbeddedP(v)
}

func (c checkedTyped) RTypedDataType(v rb.Value) unsafe.Pointer {
	c.requireTyped("RTypedDataType", v)
	return c.typed.RTypedDataType(v)
}

func (c checkedTyped) RTypedDataGetData(v rb.Value) unsafe.Pointer {
	c.requireTyped("RTypedDataGetData", v)
	return c.typed.RTypedDataGetData(v)
}
