package memalloc

// The free list is a doubly-linked, unordered (LIFO) list of free blocks,
// threaded through the first 16 payload bytes of each member. Its head is
// freeHead, a single Allocator-scoped address; 0 plays the role of the
// null sentinel at both ends.
//
// Unlike flt.go, there is exactly one list: no segregated size classes,
// so there's no FLT-style bucketing to generalize here, only the
// append/remove primitives.

// flAppend inserts b at the head of the free list.
func (a *Allocator) flAppend(b uintptr) {
	head := a.freeHead
	setFreeLinks(b, head, 0)
	if head != 0 {
		setFreePrev(head, b)
	}
	a.freeHead = b
}

// flRemove unlinks b from the free list in O(1), using only b's own
// prev/next links: a direct four-way case split on whether b has a prev
// and/or a next, with no dependency on the current value of freeHead
// beyond the prev==0 (b is the head) branches.
func (a *Allocator) flRemove(b uintptr) {
	prev, next := freePrev(b), freeNext(b)
	switch {
	case prev == 0 && next == 0:
		a.freeHead = 0
	case prev == 0:
		setFreePrev(next, 0)
		a.freeHead = next
	case next == 0:
		setFreeNext(prev, 0)
	default:
		setFreeNext(prev, next)
		setFreePrev(next, prev)
	}
}

// flCount walks the free list and returns its length. Check does not call
// it; it counts free-list nodes during its own walk.
func (a *Allocator) flCount() int {
	n := 0
	for b := a.freeHead; b != 0; b = freeNext(b) {
		n++
	}
	return n
}
