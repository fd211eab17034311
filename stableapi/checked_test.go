package stableapi_test

import (
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

func TestCheckedRejectsWrongValues(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		c := stableapi.Checked(api)
		arr := must(h.Array(api.Long2Fix(1)))
		str := must(h.String("s"))

		pe := expectPrecondition(t, "RStringLen", func() { c.RStringLen(arr) })
		if pe != nil && (pe.Want != "T_STRING" || pe.Got != "T_ARRAY") {
			t.Errorf("RStringLen(array): want/got = %s/%s", pe.Want, pe.Got)
		}
		expectPrecondition(t, "RStringPtr", func() { c.RStringPtr(h.Nil()) })
		expectPrecondition(t, "RArrayLen", func() { c.RArrayLen(str) })
		expectPrecondition(t, "RArrayConstPtr", func() { c.RArrayConstPtr(api.Long2Fix(3)) })
		expectPrecondition(t, "RArrayAref", func() { c.RArrayAref(arr, 1) })
		expectPrecondition(t, "RArrayAref", func() { c.RArrayAref(arr, -1) })
		expectPrecondition(t, "BuiltinType", func() { c.BuiltinType(h.True()) })
		expectPrecondition(t, "RBasicClass", func() { c.RBasicClass(api.Long2Fix(0)) })
		expectPrecondition(t, "BignumPositiveP", func() { c.BignumPositiveP(str) })
		expectPrecondition(t, "Fix2Long", func() { c.Fix2Long(h.Nil()) })
		expectPrecondition(t, "Fix2ULong", func() { c.Fix2ULong(str) })
		expectPrecondition(t, "Long2Fix", func() { c.Long2Fix(stableapi.FixnumMax + 1) })
	})
}

func TestCheckedPassesValidValues(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		c := stableapi.Checked(api)
		arr := must(h.Array(api.Long2Fix(1), api.Long2Fix(2)))
		if got := c.RArrayAref(arr, 1); got != api.Long2Fix(2) {
			t.Errorf("RArrayAref = %#x", got)
		}
		if got := c.RStringLen(must(h.String("four"))); got != 4 {
			t.Errorf("RStringLen = %d", got)
		}
		if got := c.Fix2Long(c.Long2Fix(stableapi.FixnumMin)); got != stableapi.FixnumMin {
			t.Errorf("Fix2Long(Long2Fix(FixnumMin)) = %d", got)
		}
		if c.Version() != api.Version() {
			t.Errorf("Version() = %v, want %v", c.Version(), api.Version())
		}
	})
}

func TestCheckedKeepsInternedStrings(t *testing.T) {
	for _, api := range stableapi.All() {
		_, inner := api.(rb.InternedStrings)
		_, outer := stableapi.Checked(api).(rb.InternedStrings)
		if inner != outer {
			t.Errorf("%s: Checked changed InternedStrings from %v to %v", api.Version(), inner, outer)
		}
	}

	h := heapsim.MustNew(stableapi.Ruby34.Facts())
	defer h.Close()
	is := stableapi.Checked(stableapi.Ruby34).(rb.InternedStrings)
	expectPrecondition(t, "RStringInternedP", func() { is.RStringInternedP(must(h.Hash())) })
}
