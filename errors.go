package memalloc

import "fmt"

// ErrOutOfMemory is returned (or observable as a nil return from Malloc,
// Realloc or Calloc) when the host Arena could not satisfy a growth request.
type ErrOutOfMemory struct {
	Requested uintptr
}

func (e *ErrOutOfMemory) Error() string {
	return fmt.Sprintf("memalloc: out of memory requesting %d bytes", e.Requested)
}

// ErrInitFailed is returned by Allocator.Init when the host Arena could not
// supply the initial sentinel padding.
type ErrInitFailed struct {
	Reason string
}

func (e *ErrInitFailed) Error() string {
	return fmt.Sprintf("memalloc: init failed: %s", e.Reason)
}

// ErrInvariantViolation describes a single structural defect found by
// Allocator.Check. It is never returned by a public method; Check writes it
// to the allocator's diagnostic sink and continues, per the allocator's
// "report, don't act" error policy.
type ErrInvariantViolation struct {
	// Rule is the short label Check gives the violated invariant, e.g.
	// "I1" or "SENTINEL".
	Rule string
	// At is the raw arena address where the violation was observed, or a
	// negative value if not block-specific.
	At  int64
	Msg string
}

func (e *ErrInvariantViolation) Error() string {
	if e.At < 0 {
		return fmt.Sprintf("memalloc: invariant %s violated: %s", e.Rule, e.Msg)
	}
	return fmt.Sprintf("memalloc: invariant %s violated at +%#x: %s", e.Rule, e.At, e.Msg)
}

// ErrInvalidPointer is used internally to describe a pointer handed to Free
// or Realloc that cannot possibly have come from Malloc (e.g. not aligned to
// the allocator's block grid). Behavior on invalid pointers not obtained
// from Malloc is undefined and detecting it is not required; this type
// exists only for the narrow, cheap checks the implementation happens to
// make en route (alignment), not as a general validity guarantee.
type ErrInvalidPointer struct {
	Ptr uintptr
}

func (e *ErrInvalidPointer) Error() string {
	return fmt.Sprintf("memalloc: invalid pointer %#x", e.Ptr)
}
