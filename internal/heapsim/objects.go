package heapsim

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

// ---------------------------------------------------------------------------
// Special constants and immediates
// ---------------------------------------------------------------------------

// Nil returns Qnil for the heap's version.
func (h *Heap) Nil() rb.Value { return rb.Value(h.facts.Specials.Nil) }

// True returns Qtrue.
func (h *Heap) True() rb.Value { return rb.Value(h.facts.Specials.True) }

// False returns Qfalse.
func (h *Heap) False() rb.Value { return rb.Value(h.facts.Specials.False) }

// Undef returns Qundef, the internal "no value" marker.
func (h *Heap) Undef() rb.Value { return rb.Value(h.facts.Specials.Undef) }

// Fixnum tags i without a range check.
func (h *Heap) Fixnum(i rb.Long) rb.Value {
	return rb.Value(i)<<1 | rb.Value(h.facts.Specials.FixnumFlag)
}

// Integer returns a fixnum when i fits the window, a bignum otherwise.
func (h *Heap) Integer(i int64) (rb.Value, error) {
	if i >= int64(rb.LongMin>>1) && i <= int64(rb.LongMax>>1) {
		return h.Fixnum(rb.Long(i)), nil
	}
	return h.Bignum(big.NewInt(i))
}

// ---------------------------------------------------------------------------
// Strings
// ---------------------------------------------------------------------------

// String builds a T_STRING holding s, embedded when it fits the largest
// slot the version can embed into and on the heap otherwise.
func (h *Heap) String(s string) (rb.Value, error) {
	if uint64(len(s)) <= h.facts.String.EmbedCapacity {
		return h.embeddedString(s)
	}
	return h.HeapString(s)
}

// Concat builds the result of joining parts, as str_plus would.
func (h *Heap) Concat(parts ...string) (rb.Value, error) {
	return h.String(strings.Join(parts, ""))
}

func (h *Heap) embeddedString(s string) (rb.Value, error) {
	sl := h.facts.String
	n := uintptr(len(s))
	v, err := h.object(uintptr(sl.EmbedAryOffset)+n+1, rb.TString, 0)
	if err != nil {
		return 0, err
	}
	if sl.EmbedLenMask != 0 {
		h.orFlags(v, (n<<sl.EmbedLenShift)&uintptr(sl.EmbedLenMask))
	} else {
		h.setLong(v, uintptr(sl.EmbedLenOffset), rb.Long(n))
	}
	copy(unsafe.Slice((*byte)(v.Addr(uintptr(sl.EmbedAryOffset))), n), s)
	return v, nil
}

// HeapString builds a T_STRING whose bytes live in a separate buffer,
// whatever its length.
func (h *Heap) HeapString(s string) (rb.Value, error) {
	sl := h.facts.String
	w := h.word()
	v, err := h.object(uintptr(sl.HeapPtrOffset)+2*w, rb.TString, uintptr(sl.NoEmbed))
	if err != nil {
		return 0, err
	}
	buf, err := h.raw(uintptr(len(s)) + 1)
	if err != nil {
		return 0, err
	}
	copy(unsafe.Slice((*byte)(buf), len(s)), s)
	h.setLong(v, uintptr(sl.HeapLenOffset), rb.Long(len(s)))
	h.setWord(v, uintptr(sl.HeapPtrOffset), uintptr(buf))
	// aux.capa
	h.setLong(v, uintptr(sl.HeapPtrOffset)+w, rb.Long(len(s)))
	return v, nil
}

// Intern marks a string as an fstring: frozen and in the frozen string
// table. Versions without the flag report an error.
func (h *Heap) Intern(v rb.Value) error {
	if h.facts.String.FStr == 0 {
		return fmt.Errorf("heapsim: ruby %s has no fstring flag", h.facts.Version)
	}
	h.orFlags(v, uintptr(h.facts.String.FStr)|uintptr(h.facts.Header.Freeze))
	return nil
}

// ---------------------------------------------------------------------------
// Arrays
// ---------------------------------------------------------------------------

// Array builds a T_ARRAY of elems, embedded when it fits.
func (h *Heap) Array(elems ...rb.Value) (rb.Value, error) {
	if uint64(len(elems)) <= h.facts.Array.EmbedCapacity {
		return h.embeddedArray(elems)
	}
	return h.HeapArray(elems...)
}

func (h *Heap) embeddedArray(elems []rb.Value) (rb.Value, error) {
	al := h.facts.Array
	n := uintptr(len(elems))
	flags := uintptr(al.EmbedFlag) | (n<<al.EmbedLenShift)&uintptr(al.EmbedLenMask)
	v, err := h.object(uintptr(al.EmbedAryOffset)+n*h.word(), rb.TArray, flags)
	if err != nil {
		return 0, err
	}
	copy(unsafe.Slice((*rb.Value)(v.Addr(uintptr(al.EmbedAryOffset))), n), elems)
	return v, nil
}

// HeapArray builds a T_ARRAY whose elements live in a separate buffer,
// whatever its length.
func (h *Heap) HeapArray(elems ...rb.Value) (rb.Value, error) {
	al := h.facts.Array
	w := h.word()
	v, err := h.object(uintptr(al.HeapPtrOffset)+w, rb.TArray, 0)
	if err != nil {
		return 0, err
	}
	buf, err := h.raw(uintptr(len(elems)) * w)
	if err != nil {
		return 0, err
	}
	copy(unsafe.Slice((*rb.Value)(buf), len(elems)), elems)
	h.setLong(v, uintptr(al.HeapLenOffset), rb.Long(len(elems)))
	// aux.capa
	h.setLong(v, uintptr(al.HeapLenOffset)+w, rb.Long(len(elems)))
	h.setWord(v, uintptr(al.HeapPtrOffset), uintptr(buf))
	return v, nil
}

// ---------------------------------------------------------------------------
// Symbols
// ---------------------------------------------------------------------------

// ID interns name and returns its identifier.
func (h *Heap) ID(name string) rb.ID {
	return h.symbols.intern(name)
}

// Symbol returns the static symbol for name.
func (h *Heap) Symbol(name string) rb.Value {
	sp := h.facts.Specials
	return rb.Value(h.ID(name))<<sp.SpecialShift | rb.Value(sp.SymbolFlag)
}

// DynamicSymbol builds a T_SYMBOL object for name, the form String#to_sym
// produces for names first seen at run time.
func (h *Heap) DynamicSymbol(name string) (rb.Value, error) {
	fstr, err := h.String(name)
	if err != nil {
		return 0, err
	}
	w := h.word()
	// struct RSymbol { RBasic; hashval; fstr; id; }
	v, err := h.object(5*w, rb.TSymbol, uintptr(h.facts.Header.Freeze))
	if err != nil {
		return 0, err
	}
	id := h.ID(name)
	h.setWord(v, 3*w, uintptr(fstr))
	h.setWord(v, 4*w, uintptr(id))
	h.symbols.bindDynamic(v, id)
	return v, nil
}

// SymbolName returns the name interned for id.
func (h *Heap) SymbolName(id rb.ID) (string, bool) {
	return h.symbols.name(id)
}

// ---------------------------------------------------------------------------
// Numbers
// ---------------------------------------------------------------------------

// Float returns a flonum when the version has them and f is in range, and
// a heap T_FLOAT otherwise.
func (h *Heap) Float(f float64) (rb.Value, error) {
	if h.facts.Flonum {
		if bits, ok := encodeFlonum(f); ok {
			return rb.Value(bits), nil
		}
	}
	return h.HeapFloat(f)
}

// HeapFloat builds a T_FLOAT object.
func (h *Heap) HeapFloat(f float64) (rb.Value, error) {
	w := h.word()
	v, err := h.object(2*w+8, rb.TFloat, uintptr(h.facts.Header.Freeze))
	if err != nil {
		return 0, err
	}
	*(*uint64)(v.Addr(2 * w)) = math.Float64bits(f)
	return v, nil
}

// FloatValue decodes a flonum or T_FLOAT built by h.
func (h *Heap) FloatValue(v rb.Value) (float64, bool) {
	sp := h.facts.Specials
	if h.facts.Flonum && uint64(v)&sp.FlonumMask == sp.FlonumFlag {
		return decodeFlonum(uint64(v)), true
	}
	if !h.containsAddr(uintptr(v)) || h.typeOf(v) != rb.TFloat {
		return 0, false
	}
	return math.Float64frombits(*(*uint64)(v.Addr(2 * h.word()))), true
}

// Bignum builds a T_BIGNUM holding x, with the sign in the header flags and
// the magnitude as little-endian words in a separate buffer.
func (h *Heap) Bignum(x *big.Int) (rb.Value, error) {
	var flags uintptr
	if x.Sign() >= 0 {
		flags = uintptr(h.facts.Header.BignumSign)
	}
	w := h.word()
	v, err := h.object(4*w, rb.TBignum, flags|uintptr(h.facts.Header.Freeze))
	if err != nil {
		return 0, err
	}
	digits := new(big.Int).Abs(x).Bits()
	buf, err := h.raw(uintptr(len(digits)) * w)
	if err != nil {
		return 0, err
	}
	for i, d := range digits {
		*(*big.Word)(unsafe.Add(buf, uintptr(i)*w)) = d
	}
	h.setLong(v, 2*w, rb.Long(len(digits)))
	h.setWord(v, 3*w, uintptr(buf))
	h.bignums[v] = new(big.Int).Set(x)
	return v, nil
}

// BigValue returns the integer a bignum built by h holds.
func (h *Heap) BigValue(v rb.Value) (*big.Int, bool) {
	x, ok := h.bignums[v]
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(x), true
}

// ---------------------------------------------------------------------------
// Other objects
// ---------------------------------------------------------------------------

// Hash builds an empty T_HASH.
func (h *Heap) Hash() (rb.Value, error) {
	return h.object(uintptr(h.facts.GC.BaseSlotSize), rb.THash, 0)
}

// Object builds a plain T_OBJECT with no instance variables.
func (h *Heap) Object() (rb.Value, error) {
	return h.object(uintptr(h.facts.GC.BaseSlotSize), rb.TObject, 0)
}

// Buffer copies b into the arena, standing in for memory an object owns
// through a pointer field.
func (h *Heap) Buffer(b []byte) (unsafe.Pointer, error) {
	p, err := h.raw(uintptr(len(b)))
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(p), len(b)), b)
	return p, nil
}

// DataType allocates a stand-in rb_data_type_t whose wrap_struct_name is
// name. Only its address matters to the accessors.
func (h *Heap) DataType(name string) (unsafe.Pointer, error) {
	w := h.word()
	cname, err := h.raw(uintptr(len(name)) + 1)
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(cname), len(name)), name)
	// wrap_struct_name, function.{dmark,dfree,dsize,dcompact,reserved}, parent, data, flags
	typ, err := h.raw(10 * w)
	if err != nil {
		return nil, err
	}
	*(*unsafe.Pointer)(typ) = cname
	return typ, nil
}

// TypedData builds a T_DATA of type typ wrapping the out-of-line payload
// data, as rb_data_typed_object_wrap does.
func (h *Heap) TypedData(typ, data unsafe.Pointer) (rb.Value, error) {
	td := h.facts.TypedData
	v, err := h.typedData(typ, uintptr(td.DataOffset)+h.word(), false)
	if err != nil {
		return 0, err
	}
	h.setWord(v, uintptr(td.DataOffset), uintptr(data))
	return v, nil
}

// EmbeddedTypedData builds a T_DATA of type typ whose payload is copied
// into the object slot, as an RUBY_TYPED_EMBEDDABLE type allocates.
func (h *Heap) EmbeddedTypedData(typ unsafe.Pointer, payload []byte) (rb.Value, error) {
	td := h.facts.TypedData
	v, err := h.typedData(typ, uintptr(td.EmbedOffset)+uintptr(len(payload)), true)
	if err != nil {
		return 0, err
	}
	copy(unsafe.Slice((*byte)(v.Addr(uintptr(td.EmbedOffset))), len(payload)), payload)
	return v, nil
}

func (h *Heap) typedData(typ unsafe.Pointer, n uintptr, embedded bool) (rb.Value, error) {
	td := h.facts.TypedData
	if !td.Supported() {
		return 0, fmt.Errorf("heapsim: ruby %s has no embeddable typed data layout", h.facts.Version)
	}
	var embed uintptr
	if embedded {
		embed = uintptr(td.Embedded)
	}
	v, err := h.object(n, rb.TData, uintptr(td.TypedFlag))
	if err != nil {
		return 0, err
	}
	if td.TypedFlag != 0 {
		h.setWord(v, uintptr(td.TypeOffset), uintptr(typ)|embed)
	} else {
		h.setWord(v, uintptr(td.TypeOffset), uintptr(typ))
		h.setWord(v, uintptr(td.FlagOffset), 1|embed)
	}
	return v, nil
}

// Data builds an untyped T_DATA, struct RData { RBasic; dmark; dfree;
// data; }, with no mark or free function.
func (h *Heap) Data(data unsafe.Pointer) (rb.Value, error) {
	w := h.word()
	v, err := h.object(5*w, rb.TData, 0)
	if err != nil {
		return 0, err
	}
	h.setWord(v, 4*w, uintptr(data))
	return v, nil
}

// Hidden clears the class pointer, as rb_obj_hide does.
func (h *Heap) Hidden(v rb.Value) rb.Value {
	h.setWord(v, uintptr(h.facts.Header.KlassOffset), 0)
	return v
}

// Freeze sets FL_FREEZE on a heap object.
func (h *Heap) Freeze(v rb.Value) rb.Value {
	h.orFlags(v, uintptr(h.facts.Header.Freeze))
	return v
}

func (h *Heap) typeOf(v rb.Value) rb.Type {
	return rb.Type(v.Word(uintptr(h.facts.Header.FlagsOffset)) & uintptr(h.facts.Header.TypeMask))
}
