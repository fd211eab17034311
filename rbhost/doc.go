// Package rbhost implements rb.Host with libruby's own out-of-line
// conversion functions, for extensions running inside the interpreter.
//
// The package needs cgo and the interpreter's development headers, found
// through pkg-config. Building with the rbsys_nolibruby tag leaves it
// empty, so the rest of the module can be built and tested on machines
// without them.
package rbhost
