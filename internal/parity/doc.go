// Package parity compares two implementations of rb.API value by value.
//
// A corpus (TOML, see corpus.toml for the built-in one) names the values to
// build. A Builder turns the corpus into interpreter values, either in a
// simulated heap or with a live interpreter, and Run evaluates every
// applicable operation on both implementations and records each
// disagreement. Reports encode to canonical CBOR so runs on different
// machines can be archived and compared byte for byte.
package parity
