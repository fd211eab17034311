//go:build !ruby_2_7 && !ruby_3_0 && !ruby_3_1 && !ruby_3_2 && !ruby_3_3 && !ruby_3_4 && !ruby_4_0

package stableapi

// Building without a version tag is an error. The assignment below fails to
// type-check and the compiler prints the message.
var _ int = "stableapi: build with exactly one ruby_X_Y tag, e.g. -tags ruby_3_4"
