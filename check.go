package memalloc

import (
	"fmt"

	"modernc.org/mathutil"
)

// Check walks the arena twice — once block-by-block from heapFirst, once
// along the free list — and reconciles them. It reports every invariant
// violation it finds to the diagnostic sink (SetDiagnosticSink) and
// returns the violation count.
//
// verbose controls how many violations are reported before Check gives up
// early and returns; 0 or negative means unbounded. mathutil.Max keeps a
// negative verbose from being mistaken for a real bound below.
func (a *Allocator) Check(verbose int32) int {
	limit := mathutil.Max(int(verbose), 0)
	if limit == 0 {
		limit = 1 << 20
	}

	violations := 0
	freeSeen := map[uintptr]bool{}

	violations += a.checkPrologue()

	prevFree := false
	implicitFree := 0
	for b := a.heapFirst; b != a.heapLast && violations < limit; {
		size := blockSize(b)
		if size == 0 {
			violations += a.report("I1", b, "zero-size block, aborting traversal")
			break
		}
		if size < minBlock {
			violations += a.report("I1", b, "block smaller than minimum size")
		}
		if size%dsize != 0 {
			violations += a.report("I1", b, "block size not 16-byte aligned")
		}
		if (b-a.heapFirst)%dsize != 0 {
			violations += a.report("I7", b, "block address not 16-byte aligned from heapFirst")
		}

		hdr := loadWord(header(b))
		ftr := loadWord(footerAddr(b, size))
		if hdr != ftr {
			violations += a.report("I1", b, "header/footer mismatch")
		}

		alloc := blockAllocated(b)
		if !alloc {
			implicitFree++
			if prevFree {
				violations += a.report("I3", b, "adjacent free blocks not coalesced")
			}
		}
		prevFree = !alloc

		b += size
		if b > a.heapLast {
			violations += a.report("I1", b, "block overruns arena")
			break
		}
	}

	if violations >= limit {
		return violations
	}

	violations += a.checkEpilogue()

	prevNode := uintptr(0)
	for b := a.freeHead; b != 0 && violations < limit; b = freeNext(b) {
		if blockAllocated(b) {
			violations += a.report("I2", b, "allocated block present in free list")
		}
		if freeSeen[b] {
			violations += a.report("I4", b, "free list contains a cycle")
			break
		}
		freeSeen[b] = true

		if freePrev(b) != prevNode {
			violations += a.report("I6", b, "free list prev pointer inconsistent with next-walk")
		}
		prevNode = b
	}
	if violations >= limit {
		return violations
	}

	if len(freeSeen) != implicitFree {
		violations += a.reportGlobal("I2", fmt.Sprintf(
			"free list length %d does not match implicit free block count %d",
			len(freeSeen), implicitFree))
	}

	return violations
}

// checkPrologue verifies the permanently-allocated sentinel block Init
// writes immediately below heapFirst is present, sized prologueSize, and
// marked allocated — the "prologue present and placed" check spec.md
// §4.9 names.
func (a *Allocator) checkPrologue() int {
	prologue := a.heapFirst - prologueSize
	tag := loadWord(header(prologue))
	if size := tagSize(tag); size != prologueSize {
		return a.report("SENTINEL", prologue, "prologue sentinel has wrong size")
	}
	if !tagAlloc(tag) {
		return a.report("SENTINEL", prologue, "prologue sentinel not marked allocated")
	}
	if ftr := loadWord(footerAddr(prologue, prologueSize)); ftr != tag {
		return a.report("SENTINEL", prologue, "prologue header/footer mismatch")
	}
	return 0
}

// checkEpilogue verifies heapLast — the "next block would start here"
// epilogue sentinel spec.md §4.9 names — sits on the 16-byte block grid
// relative to heapFirst, so that no traversal can straddle it.
func (a *Allocator) checkEpilogue() int {
	if (a.heapLast-a.heapFirst)%dsize != 0 {
		return a.reportGlobal("SENTINEL", "epilogue (heapLast) not 16-byte aligned from heapFirst")
	}
	return 0
}

// report writes a single violation line to the diagnostic sink, if one is
// set, and returns 1 so callers can fold it straight into a running count.
// No trailing newline is appended: a sink writing to a shared stream gets
// to decide its own line discipline.
func (a *Allocator) report(rule string, at uintptr, msg string) int {
	v := &ErrInvariantViolation{Rule: rule, At: int64(at), Msg: msg}
	if a.diag != nil {
		fmt.Fprint(a.diag, v.Error())
	}
	return 1
}

// reportGlobal is report for violations that aren't tied to one block
// address, e.g. a free-list-length mismatch against the whole arena.
func (a *Allocator) reportGlobal(rule, msg string) int {
	v := &ErrInvariantViolation{Rule: rule, At: -1, Msg: msg}
	if a.diag != nil {
		fmt.Fprint(a.diag, v.Error())
	}
	return 1
}
