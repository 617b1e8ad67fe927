// Package memarena implements a memalloc.Arena backed by a single
// fixed-capacity Go byte slice, in the spirit of lldb's MemFiler: a
// pure-Go, no-syscall store useful for tests and for hosts that would
// rather let the Go runtime manage the backing pages.
//
// The capacity is fixed at construction time and never reallocated:
// growing a Go slice past its capacity via append can move it, which
// would invalidate every address the allocator core has already handed
// out. Extend instead only ever advances len() up to the fixed cap(),
// so unsafe.SliceData's return value never changes for the life of the
// Arena.
package memarena

import "unsafe"

// Arena is a memalloc.Arena backed by a single pre-sized Go allocation.
type Arena struct {
	buf []byte
	lo  unsafe.Pointer
	hi  uintptr // one past the last committed byte, relative to lo
}

// New returns an Arena with room to grow up to capacity bytes. capacity is
// reserved immediately; Extend only ever advances the in-use length within
// it and never triggers a Go-side reallocation.
func New(capacity int) *Arena {
	buf := make([]byte, 0, capacity)
	return &Arena{
		buf: buf,
		lo:  unsafe.Pointer(unsafe.SliceData(buf)),
	}
}

// Extend implements memalloc.Arena.
func (a *Arena) Extend(n uintptr) (unsafe.Pointer, bool) {
	if a.hi+n > uintptr(cap(a.buf)) {
		return nil, false
	}

	p := unsafe.Add(a.lo, a.hi)
	a.hi += n
	a.buf = a.buf[:a.hi]
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

// Len reports the number of bytes committed so far via Extend.
func (a *Arena) Len() int { return int(a.hi) }

// Cap reports the arena's fixed capacity, set at construction.
func (a *Arena) Cap() int { return cap(a.buf) }
