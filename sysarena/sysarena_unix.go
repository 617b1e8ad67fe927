//go:build unix

// Package sysarena implements a memalloc.Arena backed by a single
// anonymous mmap reservation, in the style of alewtschuk-balloc's
// BuddyPool: the whole region is reserved up front with one unix.Mmap
// call so that, like memarena, no byte handed out ever moves.
//
// Extend only advances the in-use high-water mark within the already
// mapped region; it never calls mmap again. Close unmaps the entire
// reservation.
package sysarena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Arena is a memalloc.Arena backed by one anonymous mmap reservation.
type Arena struct {
	data []byte
	lo   unsafe.Pointer
	hi   uintptr
}

// New reserves capacity bytes of anonymous, zero-filled memory via mmap.
// capacity is rounded up by the kernel to a whole number of pages but the
// Arena never grows the mapping itself.
func New(capacity int) (*Arena, error) {
	data, err := unix.Mmap(-1, 0, capacity, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("sysarena: mmap %d bytes: %w", capacity, err)
	}

	return &Arena{
		data: data,
		lo:   unsafe.Pointer(unsafe.SliceData(data)),
	}, nil
}

// Extend implements memalloc.Arena.
func (a *Arena) Extend(n uintptr) (unsafe.Pointer, bool) {
	if a.hi+n > uintptr(len(a.data)) {
		return nil, false
	}
	p := unsafe.Add(a.lo, a.hi)
	a.hi += n
	return p, true
}

// Lo implements memalloc.Arena.
func (a *Arena) Lo() unsafe.Pointer { return a.lo }

// Hi implements memalloc.Arena.
func (a *Arena) Hi() unsafe.Pointer {
	if a.hi == 0 {
		return a.lo
	}
	return unsafe.Add(a.lo, a.hi-1)
}

// Close unmaps the arena's backing memory. The Arena must not be used
// afterward.
func (a *Arena) Close() error {
	return unix.Munmap(a.data)
}
