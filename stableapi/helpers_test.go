package stableapi_test

import (
	"errors"
	"testing"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

// eachVersion runs fn once per supported version, each with a fresh
// simulated heap laid out for that version.
func eachVersion(t *testing.T, fn func(t *testing.T, api rb.API, h *heapsim.Heap)) {
	t.Helper()
	for _, api := range stableapi.All() {
		t.Run(api.Version().String(), func(t *testing.T) {
			h, err := heapsim.New(api.Facts(), 0)
			if err != nil {
				t.Fatalf("heapsim.New: %v", err)
			}
			t.Cleanup(func() { h.Close() })
			fn(t, api, h)
		})
	}
}

func must(v rb.Value, err error) rb.Value {
	if err != nil {
		panic(err)
	}
	return v
}

// expectPrecondition runs fn and returns the *rb.PreconditionError it
// panicked with, failing the test if it did not.
func expectPrecondition(t *testing.T, op string, fn func()) (pe *rb.PreconditionError) {
	t.Helper()
	defer func() {
		r := recover()
		err, _ := r.(error)
		if !errors.As(err, &pe) {
			t.Errorf("%s: panic = %v, want *rb.PreconditionError", op, r)
			return
		}
		if pe.Op != op {
			t.Errorf("%s: PreconditionError.Op = %q", op, pe.Op)
		}
	}()
	fn()
	return nil
}
