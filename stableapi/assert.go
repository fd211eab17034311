package stableapi

import "github.com/chazu/rbstable/rb"

// Assertions compile away unless the rbsys_debug tag is set. Checked gives
// the same verification at run time without a rebuild.

func (c classifier) assert(ok bool, op string, v rb.Value, want, got string) {
	if debugAssertions && !ok {
		panic(&rb.PreconditionError{Op: op, Value: v, Want: want, Got: got})
	}
}

func (c classifier) assertHeap(op string, v rb.Value) {
	if debugAssertions && c.SpecialConstP(v) {
		panic(&rb.PreconditionError{Op: op, Value: v, Want: "heap reference", Got: "special constant"})
	}
}

func (c classifier) assertType(op string, v rb.Value, want rb.Type) {
	if !debugAssertions {
		return
	}
	c.assertHeap(op, v)
	if got := c.BuiltinType(v); got != want {
		panic(&rb.PreconditionError{Op: op, Value: v, Want: want.String(), Got: got.String()})
	}
}
