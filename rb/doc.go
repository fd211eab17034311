// Package rb holds the vocabulary shared by every implementation of the
// CRuby value accessors.
//
// This package contains:
//   - Value, ID and the C long types of the target
//   - built-in type codes (Type)
//   - interpreter versions and their layout facts (Facts)
//   - the operation contract (API) and the interpreter callbacks (Host)
//
// It has no knowledge of any particular version's bit layout. The
// reimplementation lives in package stableapi, the header-compiled oracle in
// package oracle.
package rb
