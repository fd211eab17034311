package stableapi_test

import (
	"math/rand"
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

func TestFixnumBounds(t *testing.T) {
	if stableapi.FixnumMax != rb.LongMax/2 {
		t.Errorf("FixnumMax = %d, want LONG_MAX/2", stableapi.FixnumMax)
	}
	if stableapi.FixnumMin != rb.LongMin/2 {
		t.Errorf("FixnumMin = %d, want LONG_MIN/2", stableapi.FixnumMin)
	}
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		tests := []struct {
			i    rb.Long
			want bool
		}{
			{0, true},
			{stableapi.FixnumMax, true},
			{stableapi.FixnumMin, true},
			{stableapi.FixnumMax + 1, false},
			{stableapi.FixnumMin - 1, false},
			{rb.LongMax, false},
			{rb.LongMin, false},
		}
		for _, tt := range tests {
			if got := api.Fixable(tt.i); got != tt.want {
				t.Errorf("Fixable(%d) = %v, want %v", tt.i, got, tt.want)
			}
		}
		if !api.PosFixable(rb.ULong(stableapi.FixnumMax)) {
			t.Error("PosFixable(FixnumMax) = false")
		}
		if api.PosFixable(rb.ULong(stableapi.FixnumMax) + 1) {
			t.Error("PosFixable(FixnumMax+1) = true")
		}
	})
}

func TestFixnumRoundTrip(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		r := rand.New(rand.NewSource(2))
		ints := []rb.Long{0, 1, -1, 42, -42, stableapi.FixnumMax, stableapi.FixnumMin}
		for i := 0; i < 500; i++ {
			ints = append(ints, rb.Long(r.Int63()>>r.Intn(63))-rb.Long(r.Int63()>>r.Intn(63)))
		}
		for _, i := range ints {
			if !api.Fixable(i) {
				continue
			}
			v := api.Long2Fix(i)
			if !api.FixnumP(v) {
				t.Errorf("Long2Fix(%d) = %#x is not a fixnum", i, v)
			}
			if got := api.Fix2Long(v); got != i {
				t.Errorf("Fix2Long(Long2Fix(%d)) = %d", i, got)
			}
			if got := api.Fix2ULong(v); got != rb.ULong(i) {
				t.Errorf("Fix2ULong(Long2Fix(%d)) = %d", i, got)
			}
			if v != h.Fixnum(i) {
				t.Errorf("Long2Fix(%d) = %#x, heap encodes %#x", i, v, h.Fixnum(i))
			}
		}
	})
}

func TestPromotion(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for _, i := range []rb.Long{stableapi.FixnumMax, stableapi.FixnumMin, 7} {
			if v := api.Long2Num(h, i); !api.FixnumP(v) {
				t.Errorf("Long2Num(%d) promoted to %v", i, api.RBType(v))
			}
		}
		for _, i := range []rb.Long{stableapi.FixnumMax + 1, stableapi.FixnumMin - 1, rb.LongMax, rb.LongMin} {
			v := api.Long2Num(h, i)
			if api.RBType(v) != rb.TBignum {
				t.Errorf("Long2Num(%d) is %v, want T_BIGNUM", i, api.RBType(v))
				continue
			}
			if got := api.Num2Long(h, v); got != i {
				t.Errorf("Num2Long(Long2Num(%d)) = %d", i, got)
			}
			if api.BignumNegativeP(v) != (i < 0) {
				t.Errorf("Long2Num(%d) has the wrong sign", i)
			}
		}

		for _, u := range []rb.ULong{0, rb.ULong(stableapi.FixnumMax)} {
			if v := api.ULong2Num(h, u); !api.FixnumP(v) {
				t.Errorf("ULong2Num(%d) promoted", u)
			}
		}
		for _, u := range []rb.ULong{rb.ULong(stableapi.FixnumMax) + 1, rb.ULongMax} {
			v := api.ULong2Num(h, u)
			if api.RBType(v) != rb.TBignum {
				t.Errorf("ULong2Num(%d) is %v, want T_BIGNUM", u, api.RBType(v))
				continue
			}
			if got := api.Num2ULong(h, v); got != u {
				t.Errorf("Num2ULong(ULong2Num(%d)) = %d", u, got)
			}
		}

		if got := api.Num2Long(h, api.Long2Fix(-5)); got != -5 {
			t.Errorf("Num2Long(fixnum -5) = %d", got)
		}
	})
}

func TestSymbolRoundTrip(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for _, name := range []string{"a", "to_s", "foo_bar", "Constant"} {
			id := h.ID(name)
			v := api.ID2Sym(id)
			if v != h.Symbol(name) {
				t.Errorf("ID2Sym(%s) = %#x, heap encodes %#x", name, v, h.Symbol(name))
			}
			if !api.StaticSymP(v) {
				t.Errorf("ID2Sym(%s) is not a static symbol", name)
			}
			if got := api.Sym2ID(h, v); got != id {
				t.Errorf("Sym2ID(ID2Sym(%s)) = %d, want %d", name, got, id)
			}
		}

		d := must(h.DynamicSymbol("made_at_runtime"))
		if got := api.Sym2ID(h, d); got != h.ID("made_at_runtime") {
			t.Errorf("Sym2ID(dynamic) = %d", got)
		}
	})
}
