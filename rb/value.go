package rb

import "unsafe"

// Value is CRuby's VALUE: one machine word that is either an immediate
// (fixnum, static symbol, flonum, nil/true/false/undef) or the address of an
// object header.
//
// Which variant a word is depends only on its low bits, but the meaning of
// those bits changes between interpreter versions. Value therefore carries no
// predicates of its own; classify it through an API.
type Value uintptr

// ID is an interned identifier (CRuby's ID). Static symbols embed it
// directly in the tagged word.
type ID uintptr

// Word geometry of the target.
const (
	WordSize = unsafe.Sizeof(Value(0))
	WordBits = 8 * WordSize
)

// ---------------------------------------------------------------------------
// Object memory access
// ---------------------------------------------------------------------------

// Pointer returns the address held by v. Only meaningful for heap
// references; the memory belongs to the interpreter.
func (v Value) Pointer() unsafe.Pointer {
	return unsafe.Pointer(uintptr(v))
}

// FromPointer makes a heap reference from an object address.
func FromPointer(p unsafe.Pointer) Value {
	return Value(uintptr(p))
}

// Addr returns the address off bytes into the object v points to.
func (v Value) Addr(off uintptr) unsafe.Pointer {
	return unsafe.Add(v.Pointer(), off)
}

// Word reads the machine word at byte offset off of the object v points to.
func (v Value) Word(off uintptr) uintptr {
	return *(*uintptr)(v.Addr(off))
}

// LongAt reads a C long at byte offset off of the object v points to.
func (v Value) LongAt(off uintptr) Long {
	return *(*Long)(v.Addr(off))
}

// PointerAt reads a pointer field at byte offset off of the object v
// points to.
func (v Value) PointerAt(off uintptr) unsafe.Pointer {
	return *(*unsafe.Pointer)(v.Addr(off))
}
