package memalloc

import (
	"fmt"
	"io"
	"os"
	"unsafe"
)

// prologueSize is the size of the permanently-allocated sentinel block
// Init writes at the base of the arena, just above initPad, so that coalesceLeft never
// has to special-case "no left neighbor".
const prologueSize = dsize

// initPad is a single filler word placed before the prologue so the first
// real block's payload falls on a 16-byte boundary.
const initPad = wordSize

// Allocator is a first-fit, boundary-tag allocator over a growable byte
// arena supplied by a host Arena. The zero value is not usable; construct
// one with New and call Init before any Malloc/Free. An Allocator is not
// safe for concurrent use.
type Allocator struct {
	host Arena

	heapFirst uintptr // address of the first possible real block; fixed
	heapLast  uintptr // current top of arena (one past the last block)
	freeHead  uintptr // head of the explicit free list, 0 if empty

	initialized bool
	diag        io.Writer
}

// New constructs an Allocator bound to host. Call Init before use. Check's
// diagnostic sink defaults to os.Stderr; override it with
// SetDiagnosticSink.
func New(host Arena) *Allocator {
	return &Allocator{host: host, diag: os.Stderr}
}

// SetDiagnosticSink routes Check's violation reports to w. A nil w
// discards them.
func (a *Allocator) SetDiagnosticSink(w io.Writer) {
	a.diag = w
}

// Init prepares the arena for allocation: it carves out the initial
// padding and prologue sentinel. Re-invoking Init resets freeHead and
// re-derives the sentinels rather than erroring, so repeated test traces
// can reuse one Allocator; every pointer from before the re-invocation
// becomes invalid, since the arena's contents are undefined across Init
// per the allocator's re-initialization contract.
func (a *Allocator) Init() error {
	p, ok := a.host.Extend(initPad + prologueSize)
	if !ok {
		return &ErrInitFailed{Reason: "host arena rejected initial extend"}
	}

	lo := uintptr(p)
	prologue := lo + initPad
	setTags(prologue, prologueSize, true)

	a.heapFirst = prologue + prologueSize
	a.heapLast = a.heapFirst
	a.freeHead = 0
	a.initialized = true
	return nil
}

// Malloc returns a pointer to a newly allocated region of at least size
// bytes, or nil if the arena could not grow to satisfy the request.
// Malloc(0) returns nil: a sentinel, not an error.
func (a *Allocator) Malloc(size uintptr) unsafe.Pointer {
	if !a.initialized || size == 0 {
		return nil
	}

	adj := adjustedSize(size)

	if b := a.findFit(adj); b != 0 {
		return unsafe.Pointer(payload(b))
	}

	b, err := a.createSpace(adj)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(payload(b))
}

// Calloc allocates space for nmemb elements of size bytes each, zeroed. It
// returns nil (without growing the arena) if nmemb*size overflows uintptr.
func (a *Allocator) Calloc(nmemb, size uintptr) unsafe.Pointer {
	if nmemb != 0 && size > (^uintptr(0))/nmemb {
		return nil // nmemb*size overflows
	}

	total := nmemb * size
	p := a.Malloc(total)
	if p == nil {
		return nil
	}

	buf := unsafe.Slice((*byte)(p), total)
	for i := range buf {
		buf[i] = 0
	}
	return p
}

// Free releases the block backing p, which must be a pointer previously
// returned by Malloc, Calloc or Realloc on this Allocator and not already
// freed. Freeing a nil pointer is a no-op. Behavior on a pointer not
// obtained from this Allocator is undefined; Free only catches the narrow,
// cheap case of a misaligned address en route and reports it rather than
// dereferencing it.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p == nil || !a.initialized {
		return
	}

	b := blockFromPayload(uintptr(p))
	if !a.validBlockAddr(b) {
		return
	}

	size := blockSize(b)
	setTags(b, size, false)
	a.flAppend(b)
	a.coalesce(b)
}

// Realloc resizes the allocation at p to size bytes. A nil p behaves as
// Malloc(size); a size of 0 behaves as Free(p) followed by returning nil.
// Contents up to the smaller of the old and new sizes are preserved; the
// returned pointer may differ from p.
func (a *Allocator) Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	if p == nil {
		return a.Malloc(size)
	}
	if size == 0 {
		a.Free(p)
		return nil
	}

	b := blockFromPayload(uintptr(p))
	if !a.validBlockAddr(b) {
		return nil
	}
	oldSize := blockSize(b)
	oldPayload := oldSize - dsize

	np := a.Malloc(size)
	if np == nil {
		return nil
	}

	n := oldPayload
	if size < n {
		n = size
	}
	src := unsafe.Slice((*byte)(p), n)
	dst := unsafe.Slice((*byte)(np), n)
	copy(dst, src)

	a.Free(p)
	return np
}

// validBlockAddr reports whether b sits on the allocator's 16-byte block
// grid relative to heapFirst. It is the one cheap check Free and Realloc
// can make en route to a caller-supplied pointer without a general
// validity guarantee: a misaligned address is reported to the diagnostic
// sink and rejected; an address that happens to land on the grid but was
// never returned by Malloc is still undefined behavior per spec.
func (a *Allocator) validBlockAddr(b uintptr) bool {
	if (b-a.heapFirst)%dsize == 0 {
		return true
	}
	if a.diag != nil {
		fmt.Fprint(a.diag, (&ErrInvalidPointer{Ptr: b}).Error())
	}
	return false
}
