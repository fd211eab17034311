//go:build !unix

package heapsim

// Go heap objects do not move, so a plain allocation works where mmap is
// unavailable. The arena stays reachable through Heap.mem.
func mapArena(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapArena([]byte) error { return nil }
