package stableapi

import (
	"unsafe"

	"github.com/chazu/rbstable/rb"
)

// StringBytes returns the bytes of the T_STRING v without copying. The
// slice aliases interpreter memory: it is valid only while v is alive and
// unmodified, and must not be written to.
func StringBytes(api rb.API, v rb.Value) []byte {
	return unsafe.Slice((*byte)(api.RStringPtr(v)), api.RStringLen(v))
}

// StringValue copies the bytes of the T_STRING v into a Go string.
func StringValue(api rb.API, v rb.Value) string {
	return string(StringBytes(api, v))
}

// ArrayValues returns the elements of the T_ARRAY v without copying, with
// the same lifetime rules as StringBytes.
func ArrayValues(api rb.API, v rb.Value) []rb.Value {
	return unsafe.Slice(api.RArrayConstPtr(v), api.RArrayLen(v))
}
