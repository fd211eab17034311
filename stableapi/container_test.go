package stableapi_test

import (
	"bytes"
	"strings"
	"testing"
	"unsafe"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

// embeddedAt reports whether p is the inline buffer of v, off bytes into
// the object.
func embeddedAt(v rb.Value, p unsafe.Pointer, off uint64) bool {
	return uintptr(p) == uintptr(v)+uintptr(off)
}

func TestStringAccessors(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		capacity := int(api.Facts().String.EmbedCapacity)
		for _, n := range []int{0, 1, 3, capacity, capacity + 1, 1000} {
			s := strings.Repeat("z", n)
			v := must(h.String(s))
			if got := api.RStringLen(v); got != rb.Long(n) {
				t.Errorf("RStringLen(%d byte string) = %d", n, got)
			}
			if got := stableapi.StringValue(api, v); got != s {
				t.Errorf("StringValue(%d byte string) = %q", n, got)
			}
			if embedded := embeddedAt(v, api.RStringPtr(v), api.Facts().String.EmbedAryOffset); embedded != (n <= capacity) {
				t.Errorf("%d byte string: pointer at the inline buffer = %v, capacity %d", n, embedded, capacity)
			}
		}
	})
}

func TestStringFormsAgree(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		for _, s := range []string{"", "a", "hello, world"} {
			emb := must(h.String(s))
			heap := must(h.HeapString(s))
			if api.RStringLen(emb) != api.RStringLen(heap) {
				t.Errorf("%q: embedded len %d, heap len %d", s, api.RStringLen(emb), api.RStringLen(heap))
			}
			if !bytes.Equal(stableapi.StringBytes(api, emb), stableapi.StringBytes(api, heap)) {
				t.Errorf("%q: embedded and heap bytes differ", s)
			}
			if embeddedAt(heap, api.RStringPtr(heap), api.Facts().String.EmbedAryOffset) {
				t.Errorf("%q: heap string points at its inline buffer", s)
			}
		}
	})
}

func TestLiteralAndConcatenatedStrings(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		lit := must(h.String("foo"))
		if got := api.RStringLen(lit); got != 3 {
			t.Errorf("RStringLen(\"foo\") = %d", got)
		}
		off := uintptr(api.RStringPtr(lit)) - uintptr(lit)
		if want := uintptr(api.Facts().String.EmbedAryOffset); off != want {
			t.Errorf("embedded pointer at +%d, want +%d", off, want)
		}

		seg := strings.Repeat("ab", int(api.Facts().String.EmbedCapacity)/4+1)
		cat := must(h.Concat(seg, seg, seg))
		p := api.RStringPtr(cat)
		if p == cat.Pointer() || embeddedAt(cat, p, api.Facts().String.EmbedAryOffset) {
			t.Error("concatenated string was not stored out of line")
		}
		if got := stableapi.StringValue(api, cat); got != seg+seg+seg {
			t.Errorf("concatenated bytes differ (len %d)", len(got))
		}
	})
}

func TestInternedStrings(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		is, ok := api.(rb.InternedStrings)
		if supported := api.Facts().String.FStr != 0; ok != supported {
			t.Fatalf("implements InternedStrings = %v, fstring flag present = %v", ok, supported)
		}
		if !ok {
			return
		}
		v := must(h.String("lit"))
		if is.RStringInternedP(v) {
			t.Error("fresh string reported interned")
		}
		if err := h.Intern(v); err != nil {
			t.Fatal(err)
		}
		if !is.RStringInternedP(v) {
			t.Error("interned string not reported interned")
		}
		if !api.FrozenP(v) {
			t.Error("interned string not frozen")
		}
	})
}

func fixnums(api rb.API, n int) []rb.Value {
	out := make([]rb.Value, n)
	for i := range out {
		out[i] = api.Long2Fix(rb.Long(i * 3))
	}
	return out
}

func TestArrayAccessors(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		capacity := int(api.Facts().Array.EmbedCapacity)
		for _, n := range []int{0, 3, capacity, capacity + 1, 1000} {
			elems := fixnums(api, n)
			v := must(h.Array(elems...))
			if got := api.RArrayLen(v); got != rb.Long(n) {
				t.Errorf("RArrayLen(%d elements) = %d", n, got)
			}
			for i := 0; i < n; i++ {
				if got := api.RArrayAref(v, rb.Long(i)); got != elems[i] {
					t.Errorf("RArrayAref(%d elements, %d) = %#x, want %#x", n, i, got, elems[i])
					break
				}
			}
			if n > 0 {
				p := unsafe.Pointer(api.RArrayConstPtr(v))
				if embedded := embeddedAt(v, p, api.Facts().Array.EmbedAryOffset); embedded != (n <= capacity) {
					t.Errorf("%d element array: pointer at the inline buffer = %v, capacity %d", n, embedded, capacity)
				}
			}
		}
	})
}

func TestArrayFormsAgree(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		elems := []rb.Value{h.Nil(), api.Long2Fix(9), h.True()}
		emb := must(h.Array(elems...))
		heap := must(h.HeapArray(elems...))
		a, b := stableapi.ArrayValues(api, emb), stableapi.ArrayValues(api, heap)
		if len(a) != len(elems) || len(b) != len(elems) {
			t.Fatalf("lengths %d and %d, want %d", len(a), len(b), len(elems))
		}
		for i := range elems {
			if a[i] != elems[i] || b[i] != elems[i] {
				t.Errorf("element %d: embedded %#x, heap %#x, want %#x", i, a[i], b[i], elems[i])
			}
		}
	})
}
