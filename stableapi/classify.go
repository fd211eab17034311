package stableapi

import (
	"github.com/chazu/rbstable/rb"
)

// classifier holds the immediate tag patterns and header bits of one
// version. Every version variant embeds one; the fields are copied out of the
// version's layout facts once, at package init.
type classifier struct {
	qfalse, qtrue, qnil, qundef rb.Value

	immediateMask rb.Value
	fixnumFlag    rb.Value
	flonumMask    rb.Value
	flonumFlag    rb.Value
	symbolFlag    rb.Value
	specialShift  uint
	flonum        bool

	flagsOffset uintptr
	klassOffset uintptr
	typeMask    uintptr
	freeze      uintptr
	bignumSign  uintptr

	facts rb.Facts
}

func newClassifier(f rb.Facts) classifier {
	return classifier{
		qfalse:        rb.Value(f.Specials.False),
		qtrue:         rb.Value(f.Specials.True),
		qnil:          rb.Value(f.Specials.Nil),
		qundef:        rb.Value(f.Specials.Undef),
		immediateMask: rb.Value(f.Specials.ImmediateMask),
		fixnumFlag:    rb.Value(f.Specials.FixnumFlag),
		flonumMask:    rb.Value(f.Specials.FlonumMask),
		flonumFlag:    rb.Value(f.Specials.FlonumFlag),
		symbolFlag:    rb.Value(f.Specials.SymbolFlag),
		specialShift:  uint(f.Specials.SpecialShift),
		flonum:        f.Flonum,
		flagsOffset:   uintptr(f.Header.FlagsOffset),
		klassOffset:   uintptr(f.Header.KlassOffset),
		typeMask:      uintptr(f.Header.TypeMask),
		freeze:        uintptr(f.Header.Freeze),
		bignumSign:    uintptr(f.Header.BignumSign),
		facts:         f,
	}
}

func (c classifier) Version() rb.Version { return c.facts.Version }
func (c classifier) Facts() rb.Facts     { return c.facts }

// ---------------------------------------------------------------------------
// Immediates
// ---------------------------------------------------------------------------

// SpecialConstP is IMMEDIATE_P(v) || !RB_TEST(v).
func (c classifier) SpecialConstP(v rb.Value) bool {
	return c.ImmediateP(v) || !c.Test(v)
}

func (c classifier) NilP(v rb.Value) bool {
	return v == c.qnil
}

// Test clears the nil bits; only Qfalse and Qnil end up zero.
func (c classifier) Test(v rb.Value) bool {
	return v&^c.qnil != 0
}

func (c classifier) FixnumP(v rb.Value) bool {
	return v&c.fixnumFlag != 0
}

func (c classifier) StaticSymP(v rb.Value) bool {
	mask := ^(^rb.Value(0) << c.specialShift)
	return v&mask == c.symbolFlag
}

func (c classifier) FlonumP(v rb.Value) bool {
	return c.flonum && v&c.flonumMask == c.flonumFlag
}

func (c classifier) ImmediateP(v rb.Value) bool {
	return v&c.immediateMask != 0
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

func (c classifier) flags(v rb.Value) uintptr {
	return v.Word(c.flagsOffset)
}

func (c classifier) BuiltinType(v rb.Value) rb.Type {
	c.assertHeap("BuiltinType", v)
	return rb.Type(c.flags(v) & c.typeMask)
}

func (c classifier) RBType(v rb.Value) rb.Type {
	switch {
	case !c.SpecialConstP(v):
		return c.BuiltinType(v)
	case v == c.qfalse:
		return rb.TFalse
	case v == c.qnil:
		return rb.TNil
	case v == c.qtrue:
		return rb.TTrue
	case v == c.qundef:
		return rb.TUndef
	case c.FixnumP(v):
		return rb.TFixnum
	case c.StaticSymP(v):
		return rb.TSymbol
	}
	c.assert(c.FlonumP(v), "RBType", v, "flonum", "unknown immediate")
	return rb.TFloat
}

func (c classifier) TypeP(v rb.Value, t rb.Type) bool {
	switch {
	case !c.SpecialConstP(v):
		return c.BuiltinType(v) == t
	case v == c.qfalse:
		return t == rb.TFalse
	case v == c.qnil:
		return t == rb.TNil
	case v == c.qtrue:
		return t == rb.TTrue
	case v == c.qundef:
		return t == rb.TUndef
	case c.FixnumP(v):
		return t == rb.TFixnum
	case c.StaticSymP(v):
		return t == rb.TSymbol
	case c.FlonumP(v):
		return t == rb.TFloat
	}
	return false
}

// The predicates below split on heap vs immediate first: the two halves
// are disjoint and the split is one branch.

func (c classifier) SymbolP(v rb.Value) bool {
	if !c.SpecialConstP(v) {
		return c.BuiltinType(v) == rb.TSymbol
	}
	return c.StaticSymP(v)
}

func (c classifier) DynamicSymP(v rb.Value) bool {
	return !c.SpecialConstP(v) && c.BuiltinType(v) == rb.TSymbol
}

func (c classifier) FloatTypeP(v rb.Value) bool {
	if !c.SpecialConstP(v) {
		return c.BuiltinType(v) == rb.TFloat
	}
	return c.FlonumP(v)
}

func (c classifier) IntegerTypeP(v rb.Value) bool {
	if !c.SpecialConstP(v) {
		return c.BuiltinType(v) == rb.TBignum
	}
	return c.FixnumP(v)
}

// ---------------------------------------------------------------------------
// Object header
// ---------------------------------------------------------------------------

func (c classifier) RBasicClass(v rb.Value) (rb.Value, bool) {
	c.assertHeap("RBasicClass", v)
	klass := rb.Value(v.Word(c.klassOffset))
	return klass, klass != 0
}

func (c classifier) FrozenP(v rb.Value) bool {
	if c.SpecialConstP(v) {
		return true
	}
	return c.flags(v)&c.freeze != 0
}

func (c classifier) BignumPositiveP(v rb.Value) bool {
	c.assertType("BignumPositiveP", v, rb.TBignum)
	return c.flags(v)&c.bignumSign != 0
}

func (c classifier) BignumNegativeP(v rb.Value) bool {
	c.assertType("BignumNegativeP", v, rb.TBignum)
	return c.flags(v)&c.bignumSign == 0
}
