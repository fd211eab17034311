package parity

import (
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/rbstable/rb"
)

//go:embed corpus.toml
var defaultCorpus string

// Case kinds.
const (
	KindSpecial = "special"
	KindFixnum  = "fixnum"
	KindBignum  = "bignum"
	KindFloat   = "float"
	KindString  = "string"
	KindArray   = "array"
	KindSymbol  = "symbol"
	KindDSymbol = "dsymbol"
	KindHash    = "hash"
	KindObject  = "object"
	KindData    = "data"
	// KindTypedData builds a plain T_DATA on versions without the
	// embeddable typed data layout.
	KindTypedData = "typeddata"
)

// Bounds a case can be expressed relative to.
const (
	BoundCapacity  = "capacity"
	BoundFixnumMax = "fixnum-max"
	BoundFixnumMin = "fixnum-min"
	BoundLongMax   = "long-max"
	BoundLongMin   = "long-min"
)

var ErrInvalidCase = errors.New("invalid corpus case")

// Case describes one value to build. Which fields matter depends on Kind.
type Case struct {
	Name     string  `toml:"name"`
	Kind     string  `toml:"kind"`
	Text     string  `toml:"text"`
	Int      int64   `toml:"int"`
	Float    float64 `toml:"float"`
	Length   int     `toml:"length"`
	Bound    string  `toml:"bound"`
	Offset   int64   `toml:"offset"`
	Heap     bool    `toml:"heap"`
	Frozen   bool    `toml:"frozen"`
	Interned bool    `toml:"interned"`
}

// Corpus is an ordered list of cases.
type Corpus struct {
	Cases []Case `toml:"case"`
}

// DefaultCorpus returns the built-in corpus: boundary strings and arrays,
// both fixnum edges and one past them, immediates and heap floats, static
// and dynamic symbols.
func DefaultCorpus() (*Corpus, error) {
	return ParseCorpus(defaultCorpus)
}

// LoadCorpus reads a corpus file.
func LoadCorpus(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	c, err := ParseCorpus(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCorpus decodes and validates corpus text.
func ParseCorpus(text string) (*Corpus, error) {
	var c Corpus
	md, err := toml.Decode(text, &c)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidCase, strings.Join(keys, ", "))
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Corpus) validate() error {
	seen := make(map[string]bool, len(c.Cases))
	for i, cs := range c.Cases {
		if cs.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidCase, i)
		}
		if seen[cs.Name] {
			return fmt.Errorf("%w: duplicate case %q", ErrInvalidCase, cs.Name)
		}
		seen[cs.Name] = true

		switch cs.Kind {
		case KindSpecial:
			switch cs.Text {
			case "nil", "true", "false", "undef":
			default:
				return fmt.Errorf("%w: %s: unknown special constant %q", ErrInvalidCase, cs.Name, cs.Text)
			}
		case KindFixnum, KindBignum:
			switch cs.Bound {
			case "", BoundFixnumMax, BoundFixnumMin, BoundLongMax, BoundLongMin:
			default:
				return fmt.Errorf("%w: %s: bound %q does not apply to integers", ErrInvalidCase, cs.Name, cs.Bound)
			}
			if cs.Text != "" {
				if _, ok := new(big.Int).SetString(cs.Text, 10); !ok {
					return fmt.Errorf("%w: %s: %q is not a decimal integer", ErrInvalidCase, cs.Name, cs.Text)
				}
			}
		case KindString, KindArray:
			if cs.Bound != "" && cs.Bound != BoundCapacity {
				return fmt.Errorf("%w: %s: bound %q does not apply to containers", ErrInvalidCase, cs.Name, cs.Bound)
			}
			if cs.Length < 0 {
				return fmt.Errorf("%w: %s: negative length", ErrInvalidCase, cs.Name)
			}
		case KindSymbol, KindDSymbol:
			if cs.Text == "" {
				return fmt.Errorf("%w: %s: symbol needs text", ErrInvalidCase, cs.Name)
			}
		case KindFloat, KindHash, KindObject, KindData, KindTypedData:
		default:
			return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidCase, cs.Name, cs.Kind)
		}
	}
	return nil
}

// integer resolves an integer case for the target's C long.
func (cs Case) integer() *big.Int {
	if cs.Text != "" {
		x, _ := new(big.Int).SetString(cs.Text, 10)
		return x
	}
	var base int64
	switch cs.Bound {
	case BoundFixnumMax:
		base = int64(rb.LongMax >> 1)
	case BoundFixnumMin:
		base = int64(rb.LongMin >> 1)
	case BoundLongMax:
		base = int64(rb.LongMax)
	case BoundLongMin:
		base = int64(rb.LongMin)
	default:
		base = cs.Int
	}
	return new(big.Int).Add(big.NewInt(base), big.NewInt(cs.Offset))
}

// length resolves a container size given the layout's embed capacity.
func (cs Case) length(capacity uint64) int {
	if cs.Bound == BoundCapacity {
		return int(int64(capacity) + cs.Offset)
	}
	if cs.Text != "" && cs.Kind == KindString {
		return len(cs.Text)
	}
	return cs.Length
}
