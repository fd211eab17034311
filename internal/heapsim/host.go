package heapsim

import (
	"fmt"
	"math/big"

	"github.com/chazu/rbstable/rb"
)

// RangeError is the panic value for conversions the interpreter would
// reject with RangeError or TypeError.
type RangeError struct {
	Value rb.Value
	Msg   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("heapsim: 0x%x: %s", uintptr(e.Value), e.Msg)
}

var (
	bigLongMin  = big.NewInt(int64(rb.LongMin))
	bigLongMax  = big.NewInt(int64(rb.LongMax))
	bigULongMax = new(big.Int).SetUint64(uint64(rb.ULongMax))
)

// Heap is an rb.Host: promotion allocates bignums in the arena and dynamic
// symbols resolve through the heap's symbol table.
var _ rb.Host = (*Heap)(nil)

// Int2Big allocates a bignum holding i, as rb_int2big does. It panics if
// the arena is full.
func (h *Heap) Int2Big(i rb.Long) rb.Value {
	return h.mustBignum(big.NewInt(int64(i)))
}

// UInt2Big allocates a bignum holding u.
func (h *Heap) UInt2Big(u rb.ULong) rb.Value {
	return h.mustBignum(new(big.Int).SetUint64(uint64(u)))
}

func (h *Heap) mustBignum(x *big.Int) rb.Value {
	v, err := h.Bignum(x)
	if err != nil {
		panic(err)
	}
	return v
}

func (h *Heap) isFixnum(v rb.Value) bool {
	return uint64(v)&h.facts.Specials.FixnumFlag != 0
}

// Num2Long converts fixnums, floats and bignums built by h to a long,
// panicking with *RangeError where rb_num2long would raise.
func (h *Heap) Num2Long(v rb.Value) rb.Long {
	if h.isFixnum(v) {
		return rb.Long(int(v) >> 1)
	}
	if f, ok := h.FloatValue(v); ok {
		if f < float64(rb.LongMin) || f >= -float64(rb.LongMin) {
			panic(&RangeError{Value: v, Msg: fmt.Sprintf("float %g out of range of integer", f)})
		}
		return rb.Long(f)
	}
	x, ok := h.bignums[v]
	if !ok {
		panic(&RangeError{Value: v, Msg: "no implicit conversion into Integer"})
	}
	if x.Cmp(bigLongMin) < 0 || x.Cmp(bigLongMax) > 0 {
		panic(&RangeError{Value: v, Msg: "bignum too big to convert into 'long'"})
	}
	return rb.Long(x.Int64())
}

// Num2ULong accepts negative values down to LONG_MIN and wraps them, as
// rb_num2ulong does.
func (h *Heap) Num2ULong(v rb.Value) rb.ULong {
	if h.isFixnum(v) {
		return rb.ULong(rb.Long(int(v) >> 1))
	}
	x, ok := h.bignums[v]
	if !ok {
		return rb.ULong(h.Num2Long(v))
	}
	switch {
	case x.Sign() >= 0 && x.Cmp(bigULongMax) <= 0:
		return rb.ULong(x.Uint64())
	case x.Sign() < 0 && x.Cmp(bigLongMin) >= 0:
		return rb.ULong(rb.Long(x.Int64()))
	}
	panic(&RangeError{Value: v, Msg: "bignum out of range of unsigned long"})
}

// Sym2ID decodes static symbols and looks dynamic ones up in the heap's
// symbol table.
func (h *Heap) Sym2ID(v rb.Value) rb.ID {
	sp := h.facts.Specials
	if uint64(v)&(1<<sp.SpecialShift-1) == sp.SymbolFlag {
		return rb.ID(v >> sp.SpecialShift)
	}
	if id, ok := h.symbols.dynamicID(v); ok {
		return id
	}
	panic(&RangeError{Value: v, Msg: "not a symbol"})
}
