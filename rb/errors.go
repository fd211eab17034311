package rb

import "fmt"

// PreconditionError is the panic value raised when a checked or debug build
// catches an accessor called on the wrong kind of value. It is never
// returned as an error; a precondition violation is a bug in the caller.
type PreconditionError struct {
	Op    string
	Value Value
	Want  string
	Got   string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated for 0x%x: want %s, got %s", e.Op, uintptr(e.Value), e.Want, e.Got)
}
