package stableapi_test

import (
	"testing"
	"unsafe"

	"github.com/chazu/rbstable/internal/heapsim"
	"github.com/chazu/rbstable/rb"
	"github.com/chazu/rbstable/stableapi"
)

func TestTypedDataVersions(t *testing.T) {
	for _, api := range stableapi.All() {
		_, ok := api.(rb.TypedData)
		if want := api.Facts().TypedData.Supported(); ok != want {
			t.Errorf("%s: implements rb.TypedData = %v, want %v", api.Version(), ok, want)
		}
		if _, outer := stableapi.Checked(api).(rb.TypedData); outer != ok {
			t.Errorf("%s: Checked changed TypedData from %v to %v", api.Version(), ok, outer)
		}
	}
}

func TestTypedDataAccessors(t *testing.T) {
	eachVersion(t, func(t *testing.T, api rb.API, h *heapsim.Heap) {
		td, ok := api.(rb.TypedData)
		if !ok {
			t.Skipf("ruby %s has no embeddable typed data", api.Version())
		}
		typ, err := h.DataType("point")
		if err != nil {
			t.Fatal(err)
		}
		payload := []byte("x=1,y=2")
		outside, err := h.Buffer(payload)
		if err != nil {
			t.Fatal(err)
		}

		wrapped := must(h.TypedData(typ, outside))
		embedded := must(h.EmbeddedTypedData(typ, payload))
		untyped := must(h.Data(outside))

		for _, v := range []rb.Value{wrapped, embedded, untyped} {
			if got := api.RBType(v); got != rb.TData {
				t.Errorf("RBType = %v, want T_DATA", got)
			}
		}
		if !td.RTypedDataP(wrapped) || !td.RTypedDataP(embedded) {
			t.Error("RTypedDataP = false for typed data")
		}
		if td.RTypedDataP(untyped) {
			t.Error("RTypedDataP = true for untyped RData")
		}

		if td.RTypedDataEmbeddedP(wrapped) {
			t.Error("wrapped payload reads as embedded")
		}
		if !td.RTypedDataEmbeddedP(embedded) {
			t.Error("inline payload reads as wrapped")
		}
		for _, v := range []rb.Value{wrapped, embedded} {
			if got := td.RTypedDataType(v); got != typ {
				t.Errorf("RTypedDataType = %p, want %p", got, typ)
			}
		}

		if got := td.RTypedDataGetData(wrapped); got != outside {
			t.Errorf("RTypedDataGetData(wrapped) = %p, want %p", got, outside)
		}
		inline := td.RTypedDataGetData(embedded)
		if !embeddedAt(embedded, inline, api.Facts().TypedData.EmbedOffset) {
			t.Errorf("RTypedDataGetData(embedded) = %p, not inside the object at %#x", inline, uintptr(embedded))
		}
		if got := unsafe.String((*byte)(inline), len(payload)); got != string(payload) {
			t.Errorf("embedded payload = %q", got)
		}
	})
}

func TestCheckedTypedData(t *testing.T) {
	h := heapsim.MustNew(stableapi.Ruby34.Facts())
	defer h.Close()
	td := stableapi.Checked(stableapi.Ruby34).(rb.TypedData)

	untyped := must(h.Data(nil))
	if td.RTypedDataP(untyped) {
		t.Error("RTypedDataP = true for untyped RData")
	}
	expectPrecondition(t, "RTypedDataP", func() { td.RTypedDataP(must(h.Object())) })
	pe := expectPrecondition(t, "RTypedDataType", func() { td.RTypedDataType(untyped) })
	if pe != nil && pe.Want != "typed data" {
		t.Errorf("RTypedDataType(untyped): want = %q", pe.Want)
	}
	expectPrecondition(t, "RTypedDataEmbeddedP", func() { td.RTypedDataEmbeddedP(h.Nil()) })
	expectPrecondition(t, "RTypedDataGetData", func() { td.RTypedDataGetData(untyped) })
}
