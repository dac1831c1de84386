//go:build unix

// Package arena provides platform-specific helpers for obtaining
// page-aligned anonymous memory regions.
package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Map returns an anonymous private mapping of size bytes. Mappings are
// page-aligned by the kernel, which is what makes them suitable backing
// regions for the page allocator.
func Map(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
