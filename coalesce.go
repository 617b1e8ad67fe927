package memalloc

// coalesceLeft merges b with its left neighbor if that neighbor exists
// inside the arena and is free. It returns the address of the (possibly
// merged) block. Called both directly on a freshly-freed block and, from
// coalesce, on the right neighbor of a freshly-freed block (so that a
// right-free-neighbor merge is just a left-merge performed from the
// other side).
func (a *Allocator) coalesceLeft(b uintptr) uintptr {
	lf := leftFooterAddr(b)

	tag := loadWord(lf)
	if tagAlloc(tag) {
		// Either a real allocated neighbor, or the permanently-allocated
		// prologue sentinel installed by Init — both cases decline to merge.
		return b
	}

	leftSize := tagSize(tag)
	left := headerFromFooter(lf, leftSize)
	size := blockSize(b)

	a.flRemove(b)
	a.flRemove(left)

	merged := left
	setTags(merged, leftSize+size, false)
	a.flAppend(merged)

	return merged
}

// coalesce merges a freshly-freed block b with both neighbors where
// possible and returns the resulting block's address. b must already be
// marked free and present in the free list before this is called (Free
// does exactly that). Because both merge participants are always on the
// free list before merging, and the merged block is re-appended only
// after both are removed, no two adjacent free blocks ever persist past
// the call.
func (a *Allocator) coalesce(b uintptr) uintptr {
	b = a.coalesceLeft(b)

	size := blockSize(b)
	r := b + size
	if r == a.heapLast {
		return b
	}

	if !blockAllocated(r) {
		b = a.coalesceLeft(r)
	}

	return b
}
