package memalloc

import "unsafe"

// Arena is the contract the allocator core requires of its host: an
// opaque "arena provider" whose concurrency model, mapping strategy and
// limits are entirely its own business. memarena and sysarena are two
// concrete, exercised implementations; a host embedding this package in,
// say, a language VM or a custom page allocator would supply its own.
//
// An Arena is a contiguous byte region that can only grow, never shrink, and
// never move once bytes have been handed out — every pointer the allocator
// core derives from Lo, Hi or a previous Extend's return value must stay
// valid for the Arena's whole lifetime.
type Arena interface {
	// Extend enlarges the arena by exactly n bytes and returns a pointer
	// to the first byte of the newly added region (the arena's previous
	// high-water mark). ok is false if the arena could not grow by n
	// bytes, in which case the returned pointer is nil.
	Extend(n uintptr) (p unsafe.Pointer, ok bool)

	// Lo returns the first byte of the currently-mapped region. Lo never
	// changes after the Arena is constructed.
	Lo() unsafe.Pointer

	// Hi returns the last byte (inclusive) of the currently-mapped
	// region. Hi advances by n on every successful Extend(n). Hi's value
	// is undefined before the first Extend.
	Hi() unsafe.Pointer
}
