package memalloc

import "unsafe"

// addrOf returns buf's backing address for use in raw block-layout tests.
// Tests that use it keep buf alive for their own duration, so there's no
// GC-movement hazard despite Go slices not normally promising a stable
// address.
func addrOf(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
}
