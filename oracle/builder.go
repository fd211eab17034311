//go:build cgo && rboracle

package oracle

// #include <stdlib.h>
// #include "compiled.h"
import "C"

import (
	"fmt"
	"math/big"
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

// Builder creates real interpreter objects. Its method set matches the
// parity harness's builder, so corpus cases can be built for the oracle
// without this package depending on the harness.
//
// The GC is off for the life of the VM; built values are never collected.
type Builder struct {
	VM *VM
}

func (b Builder) Special(name string) (rb.Value, error) {
	which := map[string]C.int{
		"nil":   C.RBO_QNIL,
		"true":  C.RBO_QTRUE,
		"false": C.RBO_QFALSE,
		"undef": C.RBO_QUNDEF,
	}
	w, ok := which[name]
	if !ok {
		return 0, fmt.Errorf("unknown special constant %q", name)
	}
	return rb.Value(layout(w)), nil
}

func (b Builder) Integer(x *big.Int) (rb.Value, error) {
	s := C.CString(x.Text(10))
	defer C.free(unsafe.Pointer(s))
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_integer(s)) }), nil
}

func (b Builder) Float(f float64) (rb.Value, error) {
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_float(C.double(f))) }), nil
}

func (b Builder) String(s string, heap bool) (rb.Value, error) {
	p := C.CBytes([]byte(s))
	defer C.free(p)
	return call(b.VM, func() rb.Value {
		return rb.Value(C.impl_new_string((*C.char)(p), C.long(len(s)), cbool(heap)))
	}), nil
}

// Concat joins parts with String#+ the way Ruby code builds a string, so the
// interpreter alone decides whether the result is embedded.
func (b Builder) Concat(parts ...string) (rb.Value, error) {
	if len(parts) == 0 {
		return b.String("", false)
	}
	ptrs := unsafe.Slice((**C.char)(C.malloc(C.size_t(len(parts))*C.size_t(unsafe.Sizeof((*C.char)(nil))))), len(parts))
	defer C.free(unsafe.Pointer(&ptrs[0]))
	lens := make([]C.long, len(parts))
	for i, p := range parts {
		ptrs[i] = (*C.char)(C.CBytes([]byte(p)))
		defer C.free(unsafe.Pointer(ptrs[i]))
		lens[i] = C.long(len(p))
	}
	return call(b.VM, func() rb.Value {
		return rb.Value(C.impl_new_concat(&ptrs[0], &lens[0], C.long(len(parts))))
	}), nil
}

func (b Builder) Array(elems []rb.Value, heap bool) (rb.Value, error) {
	var p *C.rbo_value
	if len(elems) > 0 {
		p = (*C.rbo_value)(unsafe.Pointer(&elems[0]))
	}
	return call(b.VM, func() rb.Value {
		return rb.Value(C.impl_new_array(p, C.long(len(elems)), cbool(heap)))
	}), nil
}

func (b Builder) Symbol(name string) (rb.Value, error) {
	s := C.CString(name)
	defer C.free(unsafe.Pointer(s))
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_symbol(s)) }), nil
}

// DynamicSymbol interns a fresh string. The name must not have been seen as
// a static symbol before, or the interpreter returns that one.
func (b Builder) DynamicSymbol(name string) (rb.Value, error) {
	s := C.CString(name)
	defer C.free(unsafe.Pointer(s))
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_dynamic_symbol(s)) }), nil
}

func (b Builder) Hash() (rb.Value, error) {
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_hash()) }), nil
}

func (b Builder) Object() (rb.Value, error) {
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_object()) }), nil
}

// TypedData builds a typed data object holding a copy of payload, inline
// unless heap is set. Versions before 3.3 report an error.
func (b Builder) TypedData(payload []byte, heap bool) (rb.Value, error) {
	p := C.CBytes(payload)
	defer C.free(p)
	v := call(b.VM, func() rb.Value {
		return rb.Value(C.impl_new_typed_data((*C.char)(p), C.long(len(payload)), cbool(!heap)))
	})
	if v == 0 {
		return 0, fmt.Errorf("oracle: ruby has no embeddable typed data")
	}
	return v, nil
}

// Data builds an untyped T_DATA with no payload.
func (b Builder) Data() (rb.Value, error) {
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_new_data()) }), nil
}

func (b Builder) Freeze(v rb.Value) error {
	b.VM.Do(func() { C.impl_freeze(cv(v)) })
	return nil
}

func (b Builder) Intern(v rb.Value) (rb.Value, error) {
	return call(b.VM, func() rb.Value { return rb.Value(C.impl_intern(cv(v))) }), nil
}

// ID interns name in the identifier table.
func (b Builder) ID(name string) rb.ID {
	s := C.CString(name)
	defer C.free(unsafe.Pointer(s))
	return call(b.VM, func() rb.ID { return rb.ID(C.impl_intern_id(s)) })
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
