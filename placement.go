package memalloc

// findFit implements first-fit with split-threshold placement: walk the
// free list from freeHead, returning the first block that fits adj bytes,
// splitting off the remainder when the candidate is large enough that a
// second usable free block would result.
func (a *Allocator) findFit(adj uintptr) uintptr {
	for b := a.freeHead; b != 0; {
		next := freeNext(b) // capture before b's links are rewritten
		c := blockSize(b)
		switch {
		case c >= minBlock+adj:
			return a.split(b, adj)
		case c >= adj:
			a.flRemove(b)
			setTags(b, c, true)
			return b
		}
		b = next
	}
	return 0
}

// split carves b into an allocated prefix of size adj and a free suffix
// holding the remainder. b is removed from the free list first; the
// suffix is appended to it.
func (a *Allocator) split(b, adj uintptr) uintptr {
	old := blockSize(b)
	a.flRemove(b)
	setTags(b, adj, true)

	rest := b + adj
	setTags(rest, old-adj, false)
	a.flAppend(rest)

	return b
}

// createSpace grows the arena by n bytes and carves a single allocated
// block spanning the new region. heapLast advances to the new top of the
// arena.
func (a *Allocator) createSpace(n uintptr) (uintptr, error) {
	p, ok := a.host.Extend(n)
	if !ok {
		return 0, &ErrOutOfMemory{Requested: n}
	}

	b := uintptr(p)
	setTags(b, n, true)
	a.heapLast = b + n
	return b, nil
}
