// Package stableapi reimplements the CRuby value accessors that the
// interpreter only ships as inline header code: type classification, string
// and array field access, fixnum and symbol encoding.
//
// Each supported interpreter version has its own variant (Ruby27 through
// Ruby40) built from that version's layout package. An extension compiles
// against exactly one of them, chosen with a ruby_X_Y build tag and reached
// through Default:
//
//	go build -tags ruby_3_4 ./...
//
//	api := stableapi.Default()
//	if api.TypeP(v, rb.TString) {
//		b := stableapi.StringBytes(api, v)
//		...
//	}
//
// Building without a tag fails; there is no fallback layout.
//
// Accessors do not verify their preconditions. Calling RStringLen on an
// array reads whatever word sits at the string length offset. Wrap the API
// with Checked, or build with the rbsys_debug tag, to turn such calls into
// panics carrying *rb.PreconditionError.
package stableapi
