// Package heapsim builds interpreter objects without an interpreter.
//
// A Heap maps an arena outside the Go heap and lays strings, arrays,
// symbols, floats, bignums and plain objects out in it at the offsets and
// flag positions of one version's rb.Facts. The resulting rb.Values can be
// read by any rb.API for that version, which makes the heap the fixture for
// exercising every accessor on every supported layout from a single
// machine. Heap also implements rb.Host.
package heapsim
