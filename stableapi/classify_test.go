package stableapi_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
)

// variants names every category a well-formed word satisfies.
func variants(api rb.API, v rb.Value) []string {
	sp := api.Facts().Specials
	var got []string
	if v == rb.Value(sp.False) {
		got = append(got, "false")
	}
	if api.NilP(v) {
		got = append(got, "nil")
	}
	if v == rb.Value(sp.True) {
		got = append(got, "true")
	}
	if v == rb.Value(sp.Undef) {
		got = append(got, "undef")
	}
	if api.FixnumP(v) {
		got = append(got, "fixnum")
	}
	if api.StaticSymP(v) {
		got = append(got, "static symbol")
	}
	if api.FlonumP(v) {
		got = append(got, "flonum")
	}
	if !api.SpecialConstP(v) {
		got = append(got, "heap")
	}
	return got
}

func sampleWords(t *testing.T, api rb.API, h *heapsim.Heap) map[rb.Value]rb.Type {
	t.Helper()
	words := map[rb.Value]rb.Type{
		h.False(): rb.TFalse,
		h.Nil():   rb.TNil,
		h.True():  rb.TTrue,
		h.Undef(): rb.TUndef,

		must(h.String("abc")):          rb.TString,
		must(h.Array()):                rb.TArray,
		must(h.Hash()):                 rb.THash,
		must(h.Object()):               rb.TObject,
		must(h.HeapFloat(1.5)):         rb.TFloat,
		must(h.DynamicSymbol("dsym")):  rb.TSymbol,
		h.Int2Big(rb.LongMax):          rb.TBignum,
		api.Long2Fix(0):                rb.TFixnum,
		api.Long2Fix(-1):               rb.TFixnum,
		api.ID2Sym(h.ID("static_sym")): rb.TSymbol,
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		if n := rb.Long(r.Int63() >> r.Intn(63)); api.Fixable(n) {
			words[api.Long2Fix(n)] = rb.TFixnum
			words[api.Long2Fix(-n)] = rb.TFixnum
		}
		words[api.ID2Sym(rb.ID(r.Intn(1<<20)<<4))] = rb.TSymbol
	}
	if api.Facts().Flonum {
		for _, f := range []float64{0, 1.5, -2.25, 3.0e10, 1e-10} {
			words[must(h.Float(f))] = rb.TFloat
		}
	}
	return words
}

func TestClassificationIsAPartition(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for v, want := range sampleWords(t, api, h) {
			if got := variants(api, v); len(got) != 1 {
				t.Errorf("%#x (%v) is in %d categories: %s", v, want, len(got), strings.Join(got, ", "))
			}
			if got := api.RBType(v); got != want {
				t.Errorf("RBType(%#x) = %v, want %v", v, got, want)
			}
			if !api.TypeP(v, want) {
				t.Errorf("TypeP(%#x, %v) = false", v, want)
			}
			for _, other := range []rb.Type{rb.TNil, rb.TString, rb.TFixnum, rb.TSymbol, rb.TFloat} {
				if other != want && api.TypeP(v, other) {
					t.Errorf("TypeP(%#x, %v) = true for a %v", v, other, want)
				}
			}
		}
	})
}

func TestTestAndNil(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for v := range sampleWords(t, api, h) {
			falsy := v == h.False() || v == h.Nil()
			if api.Test(v) == falsy {
				t.Errorf("Test(%#x) = %v", v, api.Test(v))
			}
			if api.NilP(v) != (v == h.Nil()) {
				t.Errorf("NilP(%#x) = %v", v, api.NilP(v))
			}
		}
	})
}

func TestSpecialConstants(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for _, v := range []rb.Value{h.False(), h.Nil(), h.True(), h.Undef()} {
			if !api.SpecialConstP(v) {
				t.Errorf("SpecialConstP(%#x) = false", v)
			}
			if !api.FrozenP(v) {
				t.Errorf("FrozenP(%#x) = false", v)
			}
		}
		if api.ImmediateP(h.False()) {
			t.Error("Qfalse is an immediate")
		}
		seen := map[rb.Value]bool{}
		for _, v := range []rb.Value{h.False(), h.Nil(), h.True(), h.Undef()} {
			if seen[v] {
				t.Errorf("special constant %#x appears twice", v)
			}
			seen[v] = true
		}
	})
}

func TestCompoundPredicates(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		static := api.ID2Sym(h.ID("a"))
		dynamic := must(h.DynamicSymbol("b"))
		str := must(h.String("c"))

		tests := []struct {
			name string
			got  bool
			want bool
		}{
			{"SymbolP(static)", api.SymbolP(static), true},
			{"SymbolP(dynamic)", api.SymbolP(dynamic), true},
			{"SymbolP(string)", api.SymbolP(str), false},
			{"DynamicSymP(static)", api.DynamicSymP(static), false},
			{"DynamicSymP(dynamic)", api.DynamicSymP(dynamic), true},
			{"StaticSymP(dynamic)", api.StaticSymP(dynamic), false},
			{"FloatTypeP(heap float)", api.FloatTypeP(must(h.HeapFloat(1e300))), true},
			{"FloatTypeP(fixnum)", api.FloatTypeP(api.Long2Fix(1)), false},
			{"IntegerTypeP(fixnum)", api.IntegerTypeP(api.Long2Fix(1)), true},
			{"IntegerTypeP(bignum)", api.IntegerTypeP(h.Int2Big(rb.LongMin)), true},
			{"IntegerTypeP(nil)", api.IntegerTypeP(h.Nil()), false},
			{"IntegerTypeP(string)", api.IntegerTypeP(str), false},
		}
		if api.Facts().Flonum {
			tests = append(tests, struct {
				name string
				got  bool
				want bool
			}{"FloatTypeP(flonum)", api.FloatTypeP(must(h.Float(2.5))), true})
		}
		for _, tt := range tests {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		}
	})
}

func TestObjectHeader(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		str := must(h.String("abc"))
		class, ok := api.RBasicClass(str)
		if want, _ := h.Class(rb.TString); !ok || class != want {
			t.Errorf("RBasicClass(string) = %#x, %v; want %#x", class, ok, want)
		}
		if _, ok := api.RBasicClass(h.Hidden(must(h.Array()))); ok {
			t.Error("RBasicClass reported a class for a hidden object")
		}

		if api.FrozenP(str) {
			t.Error("fresh string is frozen")
		}
		h.Freeze(str)
		if !api.FrozenP(str) {
			t.Error("FrozenP after Freeze = false")
		}

		pos := h.Int2Big(rb.LongMax)
		neg := h.Int2Big(rb.LongMin)
		if !api.BignumPositiveP(pos) || api.BignumNegativeP(pos) {
			t.Error("positive bignum misclassified")
		}
		if api.BignumPositiveP(neg) || !api.BignumNegativeP(neg) {
			t.Error("negative bignum misclassified")
		}
	})
}
