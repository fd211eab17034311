package parity

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
)

// Builder creates interpreter values for corpus cases. Unit tests build into
// a simulated heap; integration tests build with the real interpreter.
type Builder interface {
	Special(name string) (rb.Value, error)
	Integer(x *big.Int) (rb.Value, error)
	Float(f float64) (rb.Value, error)
	// String and Array embed when the value fits unless heap is set.
	String(s string, heap bool) (rb.Value, error)
	Array(elems []rb.Value, heap bool) (rb.Value, error)
	Symbol(name string) (rb.Value, error)
	DynamicSymbol(name string) (rb.Value, error)
	Hash() (rb.Value, error)
	Object() (rb.Value, error)
	// TypedData wraps a copy of payload, inline unless heap is set.
	TypedData(payload []byte, heap bool) (rb.Value, error)
	// Data builds an untyped T_DATA.
	Data() (rb.Value, error)
	Freeze(v rb.Value) error
	// Intern returns the fstring for v, which need not be v itself.
	Intern(v rb.Value) (rb.Value, error)
}

// Sample is a built corpus case.
type Sample struct {
	Case  Case
	Value rb.Value
}

// Build constructs every case of c with b. Embed capacities in f resolve
// "capacity" bounds. The interned flag is ignored for layouts without an
// fstring bit.
func Build(c *Corpus, b Builder, f rb.Facts) ([]Sample, error) {
	samples := make([]Sample, 0, len(c.Cases))
	for _, cs := range c.Cases {
		v, err := buildCase(cs, b, f)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", cs.Name, err)
		}
		if cs.Interned && f.String.FStr != 0 {
			if v, err = b.Intern(v); err != nil {
				return nil, fmt.Errorf("build %s: %w", cs.Name, err)
			}
		}
		if cs.Frozen {
			if err := b.Freeze(v); err != nil {
				return nil, fmt.Errorf("build %s: %w", cs.Name, err)
			}
		}
		samples = append(samples, Sample{Case: cs, Value: v})
	}
	log.Debugf("built %d samples for ruby %s", len(samples), f.Version)
	return samples, nil
}

func buildCase(cs Case, b Builder, f rb.Facts) (rb.Value, error) {
	switch cs.Kind {
	case KindSpecial:
		return b.Special(cs.Text)
	case KindFixnum, KindBignum:
		return b.Integer(cs.integer())
	case KindFloat:
		return b.Float(cs.Float)
	case KindString:
		s := cs.Text
		if s == "" {
			s = filler(cs.length(f.String.EmbedCapacity))
		}
		return b.String(s, cs.Heap)
	case KindArray:
		n := cs.length(f.Array.EmbedCapacity)
		elems := make([]rb.Value, n)
		for i := range elems {
			v, err := b.Integer(big.NewInt(int64(i)))
			if err != nil {
				return 0, err
			}
			elems[i] = v
		}
		return b.Array(elems, cs.Heap)
	case KindSymbol:
		return b.Symbol(cs.Text)
	case KindDSymbol:
		return b.DynamicSymbol(cs.Text)
	case KindHash:
		return b.Hash()
	case KindObject:
		return b.Object()
	case KindData:
		return b.Data()
	case KindTypedData:
		if !f.TypedData.Supported() {
			return b.Data()
		}
		return b.TypedData([]byte(cs.Text), cs.Heap)
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidCase, cs.Kind)
}

// filler returns n bytes of printable text.
func filler(n int) string {
	const alphabet = "abcdefghijklmnopqrstuvwxyz"
	return strings.Repeat(alphabet, n/len(alphabet)+1)[:n]
}

// ---------------------------------------------------------------------------
// Simulated heap builder
// ---------------------------------------------------------------------------

// HeapBuilder builds values in a heapsim.Heap.
type HeapBuilder struct {
	Heap *heapsim.Heap
}

func (b HeapBuilder) Special(name string) (rb.Value, error) {
	switch name {
	case "nil":
		return b.Heap.Nil(), nil
	case "true":
		return b.Heap.True(), nil
	case "false":
		return b.Heap.False(), nil
	case "undef":
		return b.Heap.Undef(), nil
	}
	return 0, fmt.Errorf("unknown special constant %q", name)
}

func (b HeapBuilder) Integer(x *big.Int) (rb.Value, error) {
	if x.IsInt64() {
		return b.Heap.Integer(x.Int64())
	}
	return b.Heap.Bignum(x)
}

func (b HeapBuilder) Float(f float64) (rb.Value, error) { return b.Heap.Float(f) }

func (b HeapBuilder) String(s string, heap bool) (rb.Value, error) {
	if heap {
		return b.Heap.HeapString(s)
	}
	return b.Heap.String(s)
}

func (b HeapBuilder) Array(elems []rb.Value, heap bool) (rb.Value, error) {
	if heap {
		return b.Heap.HeapArray(elems...)
	}
	return b.Heap.Array(elems...)
}

func (b HeapBuilder) Symbol(name string) (rb.Value, error) { return b.Heap.Symbol(name), nil }

func (b HeapBuilder) DynamicSymbol(name string) (rb.Value, error) {
	return b.Heap.DynamicSymbol(name)
}

func (b HeapBuilder) Hash() (rb.Value, error)   { return b.Heap.Hash() }
func (b HeapBuilder) Object() (rb.Value, error) { return b.Heap.Object() }

func (b HeapBuilder) TypedData(payload []byte, heap bool) (rb.Value, error) {
	typ, err := b.Heap.DataType("parity")
	if err != nil {
		return 0, err
	}
	if !heap {
		return b.Heap.EmbeddedTypedData(typ, payload)
	}
	buf, err := b.Heap.Buffer(payload)
	if err != nil {
		return 0, err
	}
	return b.Heap.TypedData(typ, buf)
}

func (b HeapBuilder) Data() (rb.Value, error) { return b.Heap.Data(nil) }

func (b HeapBuilder) Freeze(v rb.Value) error {
	b.Heap.Freeze(v)
	return nil
}

func (b HeapBuilder) Intern(v rb.Value) (rb.Value, error) {
	if err := b.Heap.Intern(v); err != nil {
		return 0, err
	}
	return v, nil
}
