package heapsim

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"
	"unsafe"

	"github.com/chazu/rbstable/layout/ruby27"
	"github.com/chazu/rbstable/layout/ruby34"
	"github.com/chazu/rbstable/layout/ruby40"
	"github.com/chazu/rbstable/rb"
)

func newHeap(t *testing.T, f rb.Facts) *Heap {
	t.Helper()
	h, err := New(f, 1<<20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return h
}

func TestFlonumEncoding(t *testing.T) {
	tests := []struct {
		f      float64
		flonum bool
	}{
		{1.5, true},
		{-2.25, true},
		{0, true},
		{math.Copysign(0, -1), false},
		{1e300, false},
		{1e-300, false},
		{math.Inf(1), false},
	}
	for _, tt := range tests {
		bits, ok := encodeFlonum(tt.f)
		if ok != tt.flonum {
			t.Errorf("encodeFlonum(%g) ok = %v, want %v", tt.f, ok, tt.flonum)
			continue
		}
		if !ok {
			continue
		}
		if bits&3 != 2 {
			t.Errorf("encodeFlonum(%g) = %#x, low bits not 0b10", tt.f, bits)
		}
		if got := decodeFlonum(bits); got != tt.f {
			t.Errorf("decodeFlonum(encodeFlonum(%g)) = %g", tt.f, got)
		}
	}
	if bits, _ := encodeFlonum(0); bits != positiveZeroFlonum {
		t.Errorf("+0.0 encodes as %#x, want %#x", bits, uint64(positiveZeroFlonum))
	}
}

func TestStringForms(t *testing.T) {
	h := newHeap(t, ruby34.Facts)
	capacity := int(ruby34.RStringEmbedCapacity)

	for _, n := range []int{0, 3, capacity, capacity + 1} {
		s := strings.Repeat("x", n)
		v, err := h.String(s)
		if err != nil {
			t.Fatalf("String(%d bytes): %v", n, err)
		}
		embedded := v.Word(ruby34.RBasicFlagsOffset)&ruby34.RStringNoEmbed == 0
		if embedded != (n <= capacity) {
			t.Errorf("%d byte string: embedded = %v", n, embedded)
		}
		if got := v.LongAt(ruby34.RStringLenOffset); got != rb.Long(n) {
			t.Errorf("%d byte string: len word = %d", n, got)
		}
		if c, _ := h.Class(rb.TString); rb.Value(v.Word(ruby34.RBasicKlassOffset)) != c {
			t.Errorf("%d byte string: klass is not String", n)
		}
	}
}

func TestEmbeddedLengthInFlags(t *testing.T) {
	h := newHeap(t, ruby27.Facts)
	v, err := h.String("abc")
	if err != nil {
		t.Fatal(err)
	}
	flags := v.Word(ruby27.RBasicFlagsOffset)
	if got := (flags & ruby27.RStringEmbedLenMask) >> ruby27.RStringEmbedLenShift; got != 3 {
		t.Errorf("embedded length from flags = %d, want 3", got)
	}
	if got := unsafe.String((*byte)(v.Addr(ruby27.RStringEmbedAryOffset)), 3); got != "abc" {
		t.Errorf("embedded bytes = %q", got)
	}
	if err := h.Intern(v); err == nil {
		t.Error("Intern succeeded on a version without an fstring flag")
	}
}

func TestHeapArrayOutsideSlot(t *testing.T) {
	h := newHeap(t, ruby34.Facts)
	v, err := h.HeapArray(h.Nil(), h.True())
	if err != nil {
		t.Fatal(err)
	}
	ptr := v.PointerAt(ruby34.RArrayHeapPtrOffset)
	if !h.Contains(ptr) {
		t.Error("heap buffer is outside the arena")
	}
	if ptr == v.Pointer() {
		t.Error("heap buffer aliases the object")
	}
	if got := *(*rb.Value)(unsafe.Add(ptr, rb.WordSize)); got != h.True() {
		t.Errorf("element 1 = %#x, want Qtrue", got)
	}
}

func TestTypedDataWords(t *testing.T) {
	h := newHeap(t, ruby34.Facts)
	typ, err := h.DataType("point")
	if err != nil {
		t.Fatal(err)
	}
	if !h.Contains(typ) {
		t.Fatal("data type is outside the arena")
	}
	if name := unsafe.String((*byte)(*(*unsafe.Pointer)(typ)), 5); name != "point" {
		t.Errorf("wrap_struct_name = %q", name)
	}

	v, err := h.EmbeddedTypedData(typ, []byte{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Word(ruby34.RTypedDataFlagOffset); got != 1|ruby34.TypedDataEmbedded {
		t.Errorf("typed_flag = %d, want 3", got)
	}
	if got := *(*byte)(unsafe.Add(v.Addr(ruby34.RTypedDataEmbedOffset), 2)); got != 3 {
		t.Errorf("payload byte 2 = %d", got)
	}

	h40 := newHeap(t, ruby40.Facts)
	typ40, err := h40.DataType("point")
	if err != nil {
		t.Fatal(err)
	}
	w, err := h40.EmbeddedTypedData(typ40, []byte{9})
	if err != nil {
		t.Fatal(err)
	}
	if w.Word(ruby40.RBasicFlagsOffset)&ruby40.TypedFlIsTypedData == 0 {
		t.Error("typed data header flag not set")
	}
	if got := w.Word(ruby40.RTypedDataTypeOffset); got != uintptr(typ40)|ruby40.TypedDataEmbedded {
		t.Errorf("type word = %#x, want %p tagged", got, typ40)
	}

	h27 := newHeap(t, ruby27.Facts)
	if _, err := h27.TypedData(nil, nil); err == nil {
		t.Error("TypedData succeeded on a version without the embeddable layout")
	}
}

func TestSymbols(t *testing.T) {
	h := newHeap(t, ruby34.Facts)
	a := h.Symbol("foo")
	if a != h.Symbol("foo") {
		t.Error("static symbols for the same name differ")
	}
	if got := h.Sym2ID(a); got != h.ID("foo") {
		t.Errorf("Sym2ID(static) = %d, want %d", got, h.ID("foo"))
	}

	d, err := h.DynamicSymbol("bar")
	if err != nil {
		t.Fatal(err)
	}
	if got := h.Sym2ID(d); got != h.ID("bar") {
		t.Errorf("Sym2ID(dynamic) = %d, want %d", got, h.ID("bar"))
	}
	if name, ok := h.SymbolName(h.Sym2ID(d)); !ok || name != "bar" {
		t.Errorf("SymbolName = %q, %v", name, ok)
	}
}

func TestHostConversions(t *testing.T) {
	h := newHeap(t, ruby34.Facts)

	big1 := h.Int2Big(rb.LongMax)
	if got := h.Num2Long(big1); got != rb.LongMax {
		t.Errorf("Num2Long(Int2Big(LongMax)) = %d", got)
	}
	neg := h.Int2Big(-1)
	if got := h.Num2ULong(neg); got != rb.ULongMax {
		t.Errorf("Num2ULong(-1) = %d, want ULongMax", got)
	}
	if got := h.Num2Long(h.Fixnum(-7)); got != -7 {
		t.Errorf("Num2Long(fixnum -7) = %d", got)
	}
	if x, ok := h.BigValue(big1); !ok || x.Cmp(big.NewInt(int64(rb.LongMax))) != 0 {
		t.Errorf("BigValue = %v, %v", x, ok)
	}

	huge, err := h.Bignum(new(big.Int).Lsh(big.NewInt(1), 200))
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		var re *RangeError
		if err, _ := recover().(error); !errors.As(err, &re) {
			t.Errorf("Num2Long(2**200) panicked with %v, want *RangeError", err)
		}
	}()
	h.Num2Long(huge)
}

func TestSlotLimit(t *testing.T) {
	h := newHeap(t, ruby27.Facts)
	if _, err := h.object(uintptr(ruby27.BaseSlotSize)+1, rb.TObject, 0); err == nil {
		t.Error("allocation larger than the only slot size succeeded")
	}
}

func TestArenaFull(t *testing.T) {
	h, err := New(ruby34.Facts, 4096)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	_, err = h.HeapString(strings.Repeat("y", 8192))
	if !errors.Is(err, ErrArenaFull) {
		t.Fatalf("err = %v, want ErrArenaFull", err)
	}
	for _, want := range []string{"need 8.0 KiB", "of 4.0 KiB left"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %q, want it to mention %q", err, want)
		}
	}
}
