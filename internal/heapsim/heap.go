package heapsim

import (
	"errors"
	"fmt"
	"math/big"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/tliron/commonlog"

	"github.com/chazu/rbstable/rb"
)

var log = commonlog.GetLogger("rbsys.heapsim")

// DefaultArenaSize is used when New is given a size of zero.
const DefaultArenaSize = 4 << 20

// ErrArenaFull is returned (wrapped) when an allocation does not fit in the
// remaining arena.
var ErrArenaFull = errors.New("heapsim: arena exhausted")

// Heap is a simulated interpreter heap. Objects are laid out at the offsets
// and with the flag bits given by a version's Facts, in memory outside the
// Go heap, so any rb.API implementation for that version can read them.
//
// A Heap is not safe for concurrent mutation. Reading built objects from
// several goroutines is fine.
type Heap struct {
	facts rb.Facts
	mem   []byte
	base  uintptr
	next  uintptr

	classes map[rb.Type]rb.Value
	symbols *symbolTable
	bignums map[rb.Value]*big.Int
}

// New maps an arena of size bytes and lays out the core classes in it.
func New(facts rb.Facts, size int) (*Heap, error) {
	if facts.WordSize != uint64(rb.WordSize) {
		return nil, fmt.Errorf("heapsim: facts for %d-byte words on a %d-byte target", facts.WordSize, rb.WordSize)
	}
	if size == 0 {
		size = DefaultArenaSize
	}
	mem, err := mapArena(size)
	if err != nil {
		return nil, err
	}
	h := &Heap{
		facts:   facts,
		mem:     mem,
		base:    uintptr(unsafe.Pointer(&mem[0])),
		classes: make(map[rb.Type]rb.Value),
		symbols: newSymbolTable(),
		bignums: make(map[rb.Value]*big.Int),
	}
	if err := h.bootClasses(); err != nil {
		_ = unmapArena(mem)
		return nil, err
	}
	log.Debugf("mapped %s arena at 0x%x for ruby %s", humanize.IBytes(uint64(size)), h.base, facts.Version)
	return h, nil
}

// MustNew is New for tests and fixtures; it panics on error.
func MustNew(facts rb.Facts) *Heap {
	h, err := New(facts, 0)
	if err != nil {
		panic(err)
	}
	return h
}

// Close unmaps the arena. Values built by h are invalid afterwards.
func (h *Heap) Close() error {
	if h.mem == nil {
		return nil
	}
	log.Debugf("releasing arena: %s of %s used", humanize.IBytes(uint64(h.next)), humanize.IBytes(uint64(len(h.mem))))
	err := unmapArena(h.mem)
	h.mem = nil
	return err
}

// Facts returns the layout h builds objects with.
func (h *Heap) Facts() rb.Facts {
	return h.facts
}

// Contains reports whether p points into the arena.
func (h *Heap) Contains(p unsafe.Pointer) bool {
	return h.containsAddr(uintptr(p))
}

func (h *Heap) containsAddr(a uintptr) bool {
	return a >= h.base && a < h.base+uintptr(len(h.mem))
}

// Class returns the class object for a built-in type, or false if the
// simulated heap has none.
func (h *Heap) Class(t rb.Type) (rb.Value, bool) {
	c, ok := h.classes[t]
	return c, ok
}

// ---------------------------------------------------------------------------
// Allocation
// ---------------------------------------------------------------------------

func (h *Heap) word() uintptr { return uintptr(h.facts.WordSize) }

// slotSize picks the smallest size pool that holds n bytes.
func (h *Heap) slotSize(n uintptr) (uintptr, error) {
	base := uintptr(h.facts.GC.BaseSlotSize)
	for i := uint64(0); i < h.facts.GC.SizePoolCount; i++ {
		if s := base << i; n <= s {
			return s, nil
		}
	}
	return 0, fmt.Errorf("heapsim: %d byte object exceeds the largest slot (%d)", n, h.facts.GC.MaxSlotSize())
}

// raw carves n bytes, word aligned and zeroed, off the arena.
func (h *Heap) raw(n uintptr) (unsafe.Pointer, error) {
	w := h.word()
	off := (h.next + w - 1) &^ (w - 1)
	if off+n > uintptr(len(h.mem)) {
		left := uint64(0)
		if size := uintptr(len(h.mem)); off < size {
			left = uint64(size - off)
		}
		return nil, fmt.Errorf("%w: need %s, %s of %s left", ErrArenaFull,
			humanize.IBytes(uint64(n)), humanize.IBytes(left), humanize.IBytes(uint64(len(h.mem))))
	}
	h.next = off + n
	return unsafe.Pointer(&h.mem[off]), nil
}

// object allocates a slot of at least n bytes and writes the RBasic header.
func (h *Heap) object(n uintptr, t rb.Type, flags uintptr) (rb.Value, error) {
	size, err := h.slotSize(n)
	if err != nil {
		return 0, err
	}
	p, err := h.raw(size)
	if err != nil {
		return 0, err
	}
	v := rb.FromPointer(p)
	h.setWord(v, uintptr(h.facts.Header.FlagsOffset), uintptr(t)|flags)
	if c, ok := h.classes[t]; ok {
		h.setWord(v, uintptr(h.facts.Header.KlassOffset), uintptr(c))
	}
	return v, nil
}

func (h *Heap) setWord(v rb.Value, off, x uintptr) {
	*(*uintptr)(v.Addr(off)) = x
}

func (h *Heap) setLong(v rb.Value, off uintptr, x rb.Long) {
	*(*rb.Long)(v.Addr(off)) = x
}

func (h *Heap) orFlags(v rb.Value, bits uintptr) {
	off := uintptr(h.facts.Header.FlagsOffset)
	h.setWord(v, off, v.Word(off)|bits)
}

func (h *Heap) bootClasses() error {
	class, err := h.object(uintptr(h.facts.GC.BaseSlotSize), rb.TClass, 0)
	if err != nil {
		return err
	}
	// Class is an instance of itself.
	h.setWord(class, uintptr(h.facts.Header.KlassOffset), uintptr(class))
	h.classes[rb.TClass] = class

	for _, t := range []rb.Type{rb.TObject, rb.TString, rb.TArray, rb.THash, rb.TSymbol, rb.TFloat, rb.TBignum, rb.TData} {
		c, err := h.object(uintptr(h.facts.GC.BaseSlotSize), rb.TClass, 0)
		if err != nil {
			return err
		}
		h.classes[t] = c
	}
	return nil
}
