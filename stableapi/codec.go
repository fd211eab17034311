package stableapi

import "github.com/chazu/rbstable/rb"

// Fixnum window: FIXNUM_MAX and FIXNUM_MIN. Values outside it are bignums.
const (
	FixnumMax = rb.LongMax >> 1
	FixnumMin = rb.LongMin >> 1
)

// ---------------------------------------------------------------------------
// Fixnums
// ---------------------------------------------------------------------------

// Fix2Long is an arithmetic shift right by one.
func (c classifier) Fix2Long(v rb.Value) rb.Long {
	c.assert(c.FixnumP(v), "Fix2Long", v, "fixnum", "non-fixnum")
	return rb.Long(int(v) >> 1)
}

func (c classifier) Fix2ULong(v rb.Value) rb.ULong {
	c.assert(c.FixnumP(v), "Fix2ULong", v, "fixnum", "non-fixnum")
	return rb.ULong(int(v) >> 1)
}

func (c classifier) Long2Fix(i rb.Long) rb.Value {
	c.assert(c.Fixable(i), "Long2Fix", rb.Value(i), "fixable long", "out of range")
	return rb.Value(i)<<1 | c.fixnumFlag
}

func (c classifier) Fixable(i rb.Long) bool {
	return i >= FixnumMin && i <= FixnumMax
}

func (c classifier) PosFixable(u rb.ULong) bool {
	return u <= rb.ULong(FixnumMax)
}

// ---------------------------------------------------------------------------
// Promotion
// ---------------------------------------------------------------------------

func (c classifier) Long2Num(h rb.Host, i rb.Long) rb.Value {
	if c.Fixable(i) {
		return c.Long2Fix(i)
	}
	return h.Int2Big(i)
}

func (c classifier) ULong2Num(h rb.Host, u rb.ULong) rb.Value {
	if c.PosFixable(u) {
		return c.Long2Fix(rb.Long(u))
	}
	return h.UInt2Big(u)
}

func (c classifier) Num2Long(h rb.Host, v rb.Value) rb.Long {
	if c.FixnumP(v) {
		return c.Fix2Long(v)
	}
	return h.Num2Long(v)
}

func (c classifier) Num2ULong(h rb.Host, v rb.Value) rb.ULong {
	if c.FixnumP(v) {
		return c.Fix2ULong(v)
	}
	return h.Num2ULong(v)
}

// ---------------------------------------------------------------------------
// Symbols
// ---------------------------------------------------------------------------

// ID2Sym is (id << RUBY_SPECIAL_SHIFT) | RUBY_SYMBOL_FLAG.
func (c classifier) ID2Sym(id rb.ID) rb.Value {
	return rb.Value(id)<<c.specialShift | c.symbolFlag
}

func (c classifier) Sym2ID(h rb.Host, v rb.Value) rb.ID {
	if c.StaticSymP(v) {
		return rb.ID(v >> c.specialShift)
	}
	return h.Sym2ID(v)
}
