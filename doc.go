// Package memalloc implements a boundary-tag, explicit-free-list dynamic
// memory allocator over a growable byte arena.
//
// The allocator core never maps memory itself; it is handed an Arena by
// its host and only ever grows that arena, payload-aligns blocks to 16
// bytes, and threads a single unordered free list through freed blocks'
// own payload bytes. See memarena and sysarena for two concrete Arena
// implementations.
package memalloc
