package memalloc

import "unsafe"

// Block layout:
//
//	+--------+---------------------------+--------+
//	| header |          payload          | footer |
//	+--------+---------------------------+--------+
//	  8 bytes         size-16 bytes          8 bytes
//
// header and footer both hold the same packed word: size in the upper bits
// (always a multiple of 16, so the low 4 bits are unused by size) with bit 0
// as the allocated flag. A free block's first 16 payload bytes hold the
// explicit free-list's next and prev links instead of user data.

const (
	wordSize = 8  // header/footer width, and the free-list link width
	dsize    = 16 // payload alignment granularity (header+footer overhead too)
	minBlock = 2 * dsize

	allocBit = uint64(1)
	sizeMask = ^allocBit

	nextLinkOff = 0
	prevLinkOff = wordSize
)

// roundUp16 rounds n up to the next multiple of 16.
func roundUp16(n uintptr) uintptr {
	return (n + dsize - 1) &^ (dsize - 1)
}

// adjustedSize turns a caller-requested payload size into the total block
// size (header + footer + rounded-up payload).
func adjustedSize(n uintptr) uintptr {
	adj := uintptr(wordSize*2) + roundUp16(n)
	if adj < minBlock {
		adj = minBlock
	}
	return adj
}

func pack(size uintptr, allocated bool) uint64 {
	v := uint64(size)
	if allocated {
		v |= allocBit
	}
	return v
}

func tagSize(tag uint64) uintptr { return uintptr(tag & sizeMask) }
func tagAlloc(tag uint64) bool   { return tag&allocBit != 0 }

func loadWord(addr uintptr) uint64 {
	return *(*uint64)(unsafe.Pointer(addr))
}

func storeWord(addr uintptr, v uint64) {
	*(*uint64)(unsafe.Pointer(addr)) = v
}

// header returns the address of b's header, which is b itself: blocks are
// always addressed by their header.
func header(b uintptr) uintptr { return b }

// footerAddr returns the address of b's footer given its total size.
func footerAddr(b, size uintptr) uintptr { return b + size - wordSize }

func blockSize(b uintptr) uintptr { return tagSize(loadWord(header(b))) }
func blockAllocated(b uintptr) bool { return tagAlloc(loadWord(header(b))) }

// setTags writes size|allocated into both b's header and footer, keeping
// them in lock-step.
func setTags(b, size uintptr, allocated bool) {
	w := pack(size, allocated)
	storeWord(header(b), w)
	storeWord(footerAddr(b, size), w)
}

// payload returns the address immediately after b's header: the pointer
// Malloc hands to callers.
func payload(b uintptr) uintptr { return b + wordSize }

// blockFromPayload is payload's inverse: recover a block's header address
// from a pointer previously returned by Malloc.
func blockFromPayload(p uintptr) uintptr { return p - wordSize }

// leftFooterAddr returns the address of the word immediately preceding b's
// header — the footer of b's left neighbor, if one exists inside the arena.
func leftFooterAddr(b uintptr) uintptr { return b - wordSize }

// headerFromFooter locates a block's header given the address of its
// footer and the size recorded in that footer.
func headerFromFooter(footer, size uintptr) uintptr { return footer - size + wordSize }

// setFreeLinks writes the explicit free list's next/prev pointers into a
// free block's payload. next/prev are 0 for "no link", the list's null
// sentinel at both ends.
func setFreeLinks(b, next, prev uintptr) {
	storeWord(payload(b)+nextLinkOff, uint64(next))
	storeWord(payload(b)+prevLinkOff, uint64(prev))
}

func freeNext(b uintptr) uintptr { return uintptr(loadWord(payload(b) + nextLinkOff)) }
func freePrev(b uintptr) uintptr { return uintptr(loadWord(payload(b) + prevLinkOff)) }

func setFreeNext(b, next uintptr) { storeWord(payload(b)+nextLinkOff, uint64(next)) }
func setFreePrev(b, prev uintptr) { storeWord(payload(b)+prevLinkOff, uint64(prev)) }
