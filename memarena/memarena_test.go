package memarena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestExtendAdvancesAndStays(t *testing.T) {
	a := New(64)
	require.Equal(t, 0, a.Len())
	require.Equal(t, 64, a.Cap())

	p1, ok := a.Extend(16)
	require.True(t, ok)
	require.NotNil(t, p1)
	require.Equal(t, 16, a.Len())

	p2, ok := a.Extend(16)
	require.True(t, ok)
	require.Equal(t, uintptr(16), uintptr(p2)-uintptr(p1))
}

func TestExtendFailsPastCapacity(t *testing.T) {
	a := New(16)
	_, ok := a.Extend(17)
	require.False(t, ok)
}

func TestExtendDoesNotMoveEarlierAddresses(t *testing.T) {
	a := New(128)
	p1, ok := a.Extend(32)
	require.True(t, ok)

	before := *(*byte)(p1)
	for i := 0; i < 3; i++ {
		_, ok := a.Extend(32)
		require.True(t, ok)
	}

	require.Equal(t, before, *(*byte)(p1))
	require.Equal(t, unsafe.Pointer(a.Lo()), a.Lo())
}
