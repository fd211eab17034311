//go:build cgo && !rbsys_nolibruby

package rbhost

/*
#cgo pkg-config: ruby
#include "host.h"
*/
import "C"

import (
	"fmt"

	"github.com/chazu/rbstable/rb"
)

// Host calls libruby on the calling thread. It holds no state; the zero
// value is ready to use.
//
// Every method runs interpreter code, so it must be called from a thread
// the interpreter owns with the GVL held: inside a method an extension
// defined, or on the thread that booted an embedded interpreter.
type Host struct{}

var _ rb.Host = (*Host)(nil)

// New returns a Host.
func New() *Host {
	return &Host{}
}

// Error is the panic value when the interpreter raises, for example
// RangeError from Num2Long on a bignum wider than a long.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("rbhost: %s raised %s", e.Op, e.Message)
}

func check(op string, state C.int) {
	if state != 0 {
		panic(&Error{Op: op, Message: C.GoString(C.host_last_error())})
	}
}

// Int2Big is rb_int2big. It allocates and never raises.
func (h *Host) Int2Big(i rb.Long) rb.Value {
	return rb.Value(C.host_int2big(C.long(i)))
}

// UInt2Big is rb_uint2big.
func (h *Host) UInt2Big(u rb.ULong) rb.Value {
	return rb.Value(C.host_uint2big(C.ulong(u)))
}

// Num2Long is rb_num2long under rb_protect. An exception surfaces as a
// panic with *Error.
func (h *Host) Num2Long(v rb.Value) rb.Long {
	var state C.int
	r := C.host_num2long(C.uintptr_t(v), &state)
	check("Num2Long", state)
	return rb.Long(r)
}

// Num2ULong is rb_num2ulong under rb_protect.
func (h *Host) Num2ULong(v rb.Value) rb.ULong {
	var state C.int
	r := C.host_num2ulong(C.uintptr_t(v), &state)
	check("Num2ULong", state)
	return rb.ULong(r)
}

// Sym2ID is rb_sym2id under rb_protect. Dynamic symbols get their ID
// assigned on first use.
func (h *Host) Sym2ID(v rb.Value) rb.ID {
	var state C.int
	r := C.host_sym2id(C.uintptr_t(v), &state)
	check("Sym2ID", state)
	return rb.ID(r)
}
