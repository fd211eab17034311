package parity

import (
	"fmt"
	"unsafe"

	"github.com/tliron/commonlog"

	"github.com/chazu/rbstable/rb"
)

var log = commonlog.GetLogger("rbsys.parity")

// typesProbed are the types TypeP is asked about for every sample.
var typesProbed = []rb.Type{
	rb.TNone, rb.TObject, rb.TClass, rb.TFloat, rb.TString, rb.TArray,
	rb.THash, rb.TBignum, rb.TSymbol, rb.TNil, rb.TTrue, rb.TFalse,
	rb.TFixnum, rb.TUndef, rb.TData,
}

// Run evaluates every operation that applies to each sample on both want
// (the reference) and got, and reports where they disagree. host serves
// promotion and dynamic symbol lookups for both.
//
// A panic in either implementation is recorded as a mismatch on that
// sample; Run itself does not panic.
func Run(want, got rb.API, host rb.Host, samples []Sample) *Report {
	r := &Report{
		Want:            want.Version(),
		Got:             got.Version(),
		WantFingerprint: want.Facts().Fingerprint(),
		GotFingerprint:  got.Facts().Fingerprint(),
		FactsDiff:       DiffFacts(want.Facts(), got.Facts()),
		Samples:         len(samples),
	}
	for _, d := range r.FactsDiff {
		log.Errorf("ruby %s facts differ: %s", r.Got, d)
	}

	for _, s := range samples {
		c := &comparison{report: r, name: s.Case.Name, want: want, got: got, host: host}
		c.guard(func() { c.sample(s.Value) })
	}
	c := &comparison{report: r, name: "codec", want: want, got: got, host: host}
	c.guard(c.codec)

	for _, m := range r.Mismatches {
		log.Errorf("ruby %s: %s", r.Got, m)
	}
	log.Infof("ruby %s vs %s: %d samples, %d checks, %d mismatches", r.Want, r.Got, r.Samples, r.Checks, len(r.Mismatches))
	return r
}

type comparison struct {
	report    *Report
	name      string
	want, got rb.API
	host      rb.Host
}

func (c *comparison) check(op string, want, got any) {
	c.report.Checks++
	if want != got {
		c.report.Mismatches = append(c.report.Mismatches, Mismatch{
			Case: c.name, Op: op, Want: fmt.Sprint(want), Got: fmt.Sprint(got),
		})
	}
}

func (c *comparison) guard(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			c.report.Mismatches = append(c.report.Mismatches, Mismatch{
				Case: c.name, Op: "panic", Want: "no panic", Got: fmt.Sprint(p),
			})
		}
	}()
	fn()
}

func (c *comparison) sample(v rb.Value) {
	w, g := c.want, c.got

	c.check("SpecialConstP", w.SpecialConstP(v), g.SpecialConstP(v))
	c.check("NilP", w.NilP(v), g.NilP(v))
	c.check("Test", w.Test(v), g.Test(v))
	c.check("FixnumP", w.FixnumP(v), g.FixnumP(v))
	c.check("StaticSymP", w.StaticSymP(v), g.StaticSymP(v))
	c.check("FlonumP", w.FlonumP(v), g.FlonumP(v))
	c.check("ImmediateP", w.ImmediateP(v), g.ImmediateP(v))
	c.check("RBType", w.RBType(v), g.RBType(v))
	for _, t := range typesProbed {
		c.check("TypeP("+t.String()+")", w.TypeP(v, t), g.TypeP(v, t))
	}
	c.check("SymbolP", w.SymbolP(v), g.SymbolP(v))
	c.check("DynamicSymP", w.DynamicSymP(v), g.DynamicSymP(v))
	c.check("FloatTypeP", w.FloatTypeP(v), g.FloatTypeP(v))
	c.check("IntegerTypeP", w.IntegerTypeP(v), g.IntegerTypeP(v))
	c.check("FrozenP", w.FrozenP(v), g.FrozenP(v))

	if w.SpecialConstP(v) {
		c.immediate(v)
		return
	}

	c.check("BuiltinType", w.BuiltinType(v), g.BuiltinType(v))
	wk, wok := w.RBasicClass(v)
	gk, gok := g.RBasicClass(v)
	c.check("RBasicClass", wk, gk)
	c.check("RBasicClass.ok", wok, gok)

	switch w.BuiltinType(v) {
	case rb.TString:
		c.str(v)
	case rb.TArray:
		c.array(v)
	case rb.TBignum:
		c.check("BignumPositiveP", w.BignumPositiveP(v), g.BignumPositiveP(v))
		c.check("BignumNegativeP", w.BignumNegativeP(v), g.BignumNegativeP(v))
	case rb.TSymbol:
		c.check("Sym2ID", w.Sym2ID(c.host, v), g.Sym2ID(c.host, v))
	case rb.TData:
		c.data(v)
	}
}

func (c *comparison) immediate(v rb.Value) {
	w, g := c.want, c.got
	switch {
	case w.FixnumP(v):
		c.check("Fix2Long", w.Fix2Long(v), g.Fix2Long(v))
		c.check("Fix2ULong", w.Fix2ULong(v), g.Fix2ULong(v))
		c.check("Num2Long", w.Num2Long(c.host, v), g.Num2Long(c.host, v))
		c.check("Long2Fix(Fix2Long)", v, g.Long2Fix(g.Fix2Long(v)))
	case w.StaticSymP(v):
		c.check("Sym2ID", w.Sym2ID(c.host, v), g.Sym2ID(c.host, v))
		c.check("ID2Sym(Sym2ID)", v, g.ID2Sym(g.Sym2ID(c.host, v)))
	}
}

func (c *comparison) str(v rb.Value) {
	w, g := c.want, c.got
	n := w.RStringLen(v)
	c.check("RStringLen", n, g.RStringLen(v))
	wp, gp := w.RStringPtr(v), g.RStringPtr(v)
	c.check("RStringPtr", wp, gp)
	if wp == gp {
		c.check("RStringPtr bytes", string(unsafe.Slice((*byte)(wp), n)), string(unsafe.Slice((*byte)(gp), g.RStringLen(v))))
	}
	wi, wok := w.(rb.InternedStrings)
	gi, gok := g.(rb.InternedStrings)
	if wok && gok {
		c.check("RStringInternedP", wi.RStringInternedP(v), gi.RStringInternedP(v))
	}
}

func (c *comparison) array(v rb.Value) {
	w, g := c.want, c.got
	n := w.RArrayLen(v)
	c.check("RArrayLen", n, g.RArrayLen(v))
	c.check("RArrayConstPtr", w.RArrayConstPtr(v), g.RArrayConstPtr(v))
	if n != g.RArrayLen(v) {
		return
	}
	for i := rb.Long(0); i < n; i++ {
		c.check(fmt.Sprintf("RArrayAref(%d)", i), w.RArrayAref(v, i), g.RArrayAref(v, i))
	}
}

// data compares the typed data accessors where both sides have them.
func (c *comparison) data(v rb.Value) {
	wt, wok := c.want.(rb.TypedData)
	gt, gok := c.got.(rb.TypedData)
	if !wok || !gok {
		return
	}
	typed := wt.RTypedDataP(v)
	c.check("RTypedDataP", typed, gt.RTypedDataP(v))
	if !typed || !gt.RTypedDataP(v) {
		return
	}
	c.check("RTypedDataEmbeddedP", wt.RTypedDataEmbeddedP(v), gt.RTypedDataEmbeddedP(v))
	c.check("RTypedDataType", wt.RTypedDataType(v), gt.RTypedDataType(v))
	c.check("RTypedDataGetData", wt.RTypedDataGetData(v), gt.RTypedDataGetData(v))
}

// codec compares the pure conversions on the fixnum window edges.
func (c *comparison) codec() {
	w, g := c.want, c.got
	fmax, fmin := rb.LongMax>>1, rb.LongMin>>1
	for _, i := range []rb.Long{0, 1, -1, fmax, fmin, fmax + 1, fmin - 1, rb.LongMax, rb.LongMin} {
		c.check(fmt.Sprintf("Fixable(%d)", i), w.Fixable(i), g.Fixable(i))
		if w.Fixable(i) {
			c.check(fmt.Sprintf("Long2Fix(%d)", i), w.Long2Fix(i), g.Long2Fix(i))
		}
	}
	for _, u := range []rb.ULong{0, rb.ULong(fmax), rb.ULong(fmax) + 1, rb.ULongMax} {
		c.check(fmt.Sprintf("PosFixable(%d)", u), w.PosFixable(u), g.PosFixable(u))
	}
	// Operator IDs and IDs with ID_STATIC_SYM set encode without a table
	// lookup on every version.
	for _, id := range []rb.ID{1 << 4, 0x1234<<4 | 1, 0xfffff<<4 | 1} {
		c.check(fmt.Sprintf("ID2Sym(%d)", id), w.ID2Sym(id), g.ID2Sym(id))
	}
}
