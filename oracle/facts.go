//go:build cgo && rboracle

package oracle

// #include "compiled.h"
import "C"

import (
	"errors"
	"fmt"

	"github.com/chazu/rbstable/rb"
)

// ErrProbe is returned when a runtime probe of the interpreter fails.
var ErrProbe = errors.New("oracle: layout probe failed")

func layout(which C.int) uint64 {
	return uint64(C.impl_layout(which))
}

// readFacts fills rb.Facts from the compiled headers. Embedding capacities
// and slot sizes are not header constants; they are probed by allocating
// objects on the interpreter thread.
func readFacts(vm *VM) (rb.Facts, error) {
	f := rb.Facts{
		Version: rb.Version{
			Major: int(C.impl_api_version(0)),
			Minor: int(C.impl_api_version(1)),
		},
		WordSize: uint64(rb.WordSize),
		Flonum:   layout(C.RBO_USE_FLONUM) != 0,
		Specials: rb.Specials{
			False:         layout(C.RBO_QFALSE),
			True:          layout(C.RBO_QTRUE),
			Nil:           layout(C.RBO_QNIL),
			Undef:         layout(C.RBO_QUNDEF),
			ImmediateMask: layout(C.RBO_IMMEDIATE_MASK),
			FixnumFlag:    layout(C.RBO_FIXNUM_FLAG),
			FlonumMask:    layout(C.RBO_FLONUM_MASK),
			FlonumFlag:    layout(C.RBO_FLONUM_FLAG),
			SymbolFlag:    layout(C.RBO_SYMBOL_FLAG),
			SpecialShift:  layout(C.RBO_SPECIAL_SHIFT),
		},
		Header: rb.Header{
			FlagsOffset: layout(C.RBO_BASIC_FLAGS_OFFSET),
			KlassOffset: layout(C.RBO_BASIC_KLASS_OFFSET),
			TypeMask:    layout(C.RBO_T_MASK),
			Freeze:      layout(C.RBO_FL_FREEZE),
			UShift:      layout(C.RBO_FL_USHIFT),
			BignumSign:  layout(C.RBO_BIGNUM_SIGN),
		},
		String: rb.StringLayout{
			NoEmbed:        layout(C.RBO_STR_NOEMBED),
			EmbedLenMask:   layout(C.RBO_STR_EMBED_LEN_MASK),
			EmbedLenShift:  layout(C.RBO_STR_EMBED_LEN_SHIFT),
			EmbedLenOffset: layout(C.RBO_STR_EMBED_LEN_OFFSET),
			EmbedAryOffset: layout(C.RBO_STR_EMBED_ARY_OFFSET),
			HeapLenOffset:  layout(C.RBO_STR_HEAP_LEN_OFFSET),
			HeapPtrOffset:  layout(C.RBO_STR_HEAP_PTR_OFFSET),
			FStr:           layout(C.RBO_STR_FSTR),
		},
		Array: rb.ArrayLayout{
			EmbedFlag:      layout(C.RBO_ARY_EMBED_FLAG),
			EmbedLenMask:   layout(C.RBO_ARY_EMBED_LEN_MASK),
			EmbedLenShift:  layout(C.RBO_ARY_EMBED_LEN_SHIFT),
			EmbedAryOffset: layout(C.RBO_ARY_EMBED_ARY_OFFSET),
			HeapLenOffset:  layout(C.RBO_ARY_HEAP_LEN_OFFSET),
			HeapPtrOffset:  layout(C.RBO_ARY_HEAP_PTR_OFFSET),
		},
		TypedData: rb.TypedDataLayout{
			TypeOffset:  layout(C.RBO_TD_TYPE_OFFSET),
			FlagOffset:  layout(C.RBO_TD_FLAG_OFFSET),
			DataOffset:  layout(C.RBO_TD_DATA_OFFSET),
			Embedded:    layout(C.RBO_TD_EMBEDDED),
			TypedFlag:   layout(C.RBO_TD_TYPED_FLAG),
			EmbedOffset: layout(C.RBO_TD_EMBED_OFFSET),
		},
	}

	var str, ary, slot, pools C.long
	vm.Do(func() {
		str = C.impl_probe_string_embed_capacity()
		ary = C.impl_probe_array_embed_capacity()
		slot = C.impl_probe_base_slot_size()
		pools = C.impl_probe_size_pool_count()
	})
	for _, p := range []struct {
		name string
		v    C.long
	}{{"string embed capacity", str}, {"array embed capacity", ary}, {"base slot size", slot}, {"size pool count", pools}} {
		if p.v < 0 {
			return rb.Facts{}, fmt.Errorf("%w: %s", ErrProbe, p.name)
		}
	}
	f.String.EmbedCapacity = uint64(str)
	f.Array.EmbedCapacity = uint64(ary)
	f.GC = rb.GCLayout{BaseSlotSize: uint64(slot), SizePoolCount: uint64(pools)}

	log.Infof("ruby %s facts read from headers, fingerprint %016x", f.Version, f.Fingerprint())
	return f, nil
}
