//go:build unix

package heapsim

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mapArena reserves size bytes of anonymous memory outside the Go heap.
func mapArena(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("heapsim: mmap %d bytes: %w", size, err)
	}
	return mem, nil
}

func unmapArena(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("heapsim: munmap: %w", err)
	}
	return nil
}
