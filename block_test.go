package memalloc

import "testing"

func TestRoundUp16(t *testing.T) {
	table := []struct{ n, want uintptr }{
		{0, 0},
		{1, 16},
		{15, 16},
		{16, 16},
		{17, 32},
	}
	for _, x := range table {
		if g, e := roundUp16(x.n), x.want; g != e {
			t.Fatal(x.n, g, e)
		}
	}
}

func TestAdjustedSizeRespectsMinBlock(t *testing.T) {
	if g, e := adjustedSize(1), uintptr(minBlock); g != e {
		t.Fatal(g, e)
	}
	if g, e := adjustedSize(100), uintptr(2*wordSize+roundUp16(100)); g != e {
		t.Fatal(g, e)
	}
}

func TestPackRoundTrip(t *testing.T) {
	for _, alloc := range []bool{true, false} {
		tag := pack(48, alloc)
		if g, e := tagSize(tag), uintptr(48); g != e {
			t.Fatal(alloc, g, e)
		}
		if g, e := tagAlloc(tag), alloc; g != e {
			t.Fatal(alloc, g, e)
		}
	}
}

func TestSetTagsWritesHeaderAndFooter(t *testing.T) {
	buf := make([]byte, 64)
	base := addrOf(buf)
	setTags(base, 48, true)

	if g, e := blockSize(base), uintptr(48); g != e {
		t.Fatal(g, e)
	}
	if g, e := blockAllocated(base), true; g != e {
		t.Fatal(g, e)
	}
	if g, e := loadWord(header(base)), loadWord(footerAddr(base, 48)); g != e {
		t.Fatal(g, e)
	}
}

func TestFreeLinksRoundTrip(t *testing.T) {
	buf := make([]byte, 64)
	b := addrOf(buf)

	setFreeLinks(b, 0x1000, 0x2000)
	if g, e := freeNext(b), uintptr(0x1000); g != e {
		t.Fatal(g, e)
	}
	if g, e := freePrev(b), uintptr(0x2000); g != e {
		t.Fatal(g, e)
	}

	setFreeNext(b, 0x3000)
	setFreePrev(b, 0x4000)
	if g, e := freeNext(b), uintptr(0x3000); g != e {
		t.Fatal(g, e)
	}
	if g, e := freePrev(b), uintptr(0x4000); g != e {
		t.Fatal(g, e)
	}
}
