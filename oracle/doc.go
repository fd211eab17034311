//go:build cgo && rboracle

// Package oracle is the reference implementation of the value accessors:
// thin cgo wrappers over the interpreter's own header macros, compiled
// against whatever Ruby pkg-config finds.
//
// It exists to test package stableapi and is only built with
//
//	go test -tags 'rboracle ruby_3_4' ./test/integration/...
//
// where the version tag matches the interpreter pkg-config resolves.
//
// Boot starts a single embedded interpreter with its GC disabled. Every call
// runs on the interpreter's thread, so an API from New is safe to use from
// any goroutine, but it is slow.
package oracle
