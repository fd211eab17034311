//go:build rbsys_debug

package stableapi_test

import (
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

// With rbsys_debug the unchecked variants verify their own preconditions.
func TestDebugAssertions(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		arr := must(h.Array(api.Long2Fix(1), api.Long2Fix(2)))
		str := must(h.String("s"))

		pe := expectPrecondition(t, "RStringLen", func() { api.RStringLen(arr) })
		if pe != nil && (pe.Want != "T_STRING" || pe.Got != "T_ARRAY") {
			t.Errorf("RStringLen(array): want/got = %s/%s", pe.Want, pe.Got)
		}
		expectPrecondition(t, "RStringPtr", func() { api.RStringPtr(h.Nil()) })
		expectPrecondition(t, "RArrayLen", func() { api.RArrayLen(str) })
		expectPrecondition(t, "RArrayConstPtr", func() { api.RArrayConstPtr(str) })
		expectPrecondition(t, "RArrayAref", func() { api.RArrayAref(arr, 2) })
		expectPrecondition(t, "RArrayAref", func() { api.RArrayAref(arr, -1) })
		expectPrecondition(t, "BuiltinType", func() { api.BuiltinType(h.Nil()) })
		expectPrecondition(t, "BuiltinType", func() { api.BuiltinType(api.Long2Fix(7)) })
		expectPrecondition(t, "RBasicClass", func() { api.RBasicClass(h.True()) })
		expectPrecondition(t, "BignumPositiveP", func() { api.BignumPositiveP(str) })
		expectPrecondition(t, "BignumNegativeP", func() { api.BignumNegativeP(str) })
		expectPrecondition(t, "Fix2Long", func() { api.Fix2Long(str) })
		expectPrecondition(t, "Fix2ULong", func() { api.Fix2ULong(h.Nil()) })
		expectPrecondition(t, "Long2Fix", func() { api.Long2Fix(stableapi.FixnumMax + 1) })
		expectPrecondition(t, "Long2Fix", func() { api.Long2Fix(stableapi.FixnumMin - 1) })

		if is, ok := api.(rb.InternedStrings); ok {
			expectPrecondition(t, "RStringInternedP", func() { is.RStringInternedP(arr) })
		}
		if td, ok := api.(rb.TypedData); ok {
			expectPrecondition(t, "RTypedDataP", func() { td.RTypedDataP(str) })
			expectPrecondition(t, "RTypedDataEmbeddedP", func() { td.RTypedDataEmbeddedP(arr) })
			expectPrecondition(t, "RTypedDataType", func() { td.RTypedDataType(h.Nil()) })
			expectPrecondition(t, "RTypedDataGetData", func() { td.RTypedDataGetData(str) })
		}
	})
}

// Valid calls still pass through untouched.
func TestDebugAssertionsAllowValidValues(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		arr := must(h.Array(api.Long2Fix(1), api.Long2Fix(2)))
		if got := api.RArrayAref(arr, 1); got != api.Long2Fix(2) {
			t.Errorf("RArrayAref = %#x", got)
		}
		neg := api.Long2Num(h, rb.LongMin)
		if !api.BignumNegativeP(neg) || api.BignumPositiveP(neg) {
			t.Error("LONG_MIN does not read as a negative bignum")
		}
		if got := api.Fix2ULong(api.Long2Fix(5)); got != 5 {
			t.Errorf("Fix2ULong = %d", got)
		}
	})
}
