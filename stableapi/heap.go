package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

func valuesAt(p unsafe.Pointer) *rb.Value {
	return (*rb.Value)(p)
}

// aref reads element i of a VALUE buffer.
func aref(p *rb.Value, i rb.Long) rb.Value {
	return *(*rb.Value)(unsafe.Add(unsafe.Pointer(p), uintptr(i)*rb.WordSize))
}

func (c classifier) assertIndex(op string, v rb.Value, i, n rb.Long) {
	c.assert(i >= 0 && i < n, op, v, "index in range", "out of bounds")
}
