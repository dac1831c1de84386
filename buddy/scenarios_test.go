package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Concrete end-to-end scenarios over small regions whose partitioning is
// known exactly: a 4-page region keeps 3 usable pages, an 8-page region
// keeps 7.

// Test_FourPageRegion: after construction the order-1 freelist holds pages
// 0-1 and the order-0 freelist holds page 2. An order-1 allocation returns
// page 0, an order-0 allocation returns page 2, and the region is then
// exhausted until something is freed.
func Test_FourPageRegion(t *testing.T) {
	a := newTestAllocator(t, 4)

	require.Equal(t, uint32(3), a.TotalPages())
	require.Equal(t, []PageRef{0}, a.FreeBlocks(1))
	require.Equal(t, []PageRef{2}, a.FreeBlocks(0))

	ref, pages, err := a.Alloc(1)
	require.NoError(t, err)
	require.Equal(t, PageRef(0), ref)
	require.Len(t, pages, 2*pageSize)

	ref, pages, err = a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(2), ref)
	require.Len(t, pages, pageSize)

	for order := uint(0); order <= a.TopOrder(); order++ {
		_, _, err = a.Alloc(order)
		require.ErrorIs(t, err, ErrNoSpace, "order %d must be exhausted", order)
	}

	require.NoError(t, a.Free(2))
	_, _, err = a.Alloc(0)
	require.NoError(t, err)
}

// Test_EightPageRegion: 7 usable pages seed one 4-page block, one 2-page
// block, and one single page, handed out largest-first.
func Test_EightPageRegion(t *testing.T) {
	a := newTestAllocator(t, 8)

	require.Equal(t, uint32(7), a.TotalPages())
	require.Equal(t, []PageRef{0}, a.FreeBlocks(2))
	require.Equal(t, []PageRef{4}, a.FreeBlocks(1))
	require.Equal(t, []PageRef{6}, a.FreeBlocks(0))

	ref, _, err := a.Alloc(2)
	require.NoError(t, err)
	require.Equal(t, PageRef(0), ref)

	ref, _, err = a.Alloc(1)
	require.NoError(t, err)
	require.Equal(t, PageRef(4), ref)

	ref, _, err = a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(6), ref)

	for order := uint(0); order <= a.TopOrder(); order++ {
		_, _, err = a.Alloc(order)
		require.ErrorIs(t, err, ErrNoSpace)
	}
}

// Test_SplitAndCoalesce: once the lone order-0 page is taken, an order-0
// request splits the order-1 block; freeing both halves merges them back
// onto the order-1 freelist.
func Test_SplitAndCoalesce(t *testing.T) {
	a := newTestAllocator(t, 4)

	ref, _, err := a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(2), ref)

	// Order-0 freelist is now empty, so this one splits pages 0-1.
	ref, _, err = a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(0), ref)
	require.Equal(t, []PageRef{1}, a.FreeBlocks(0))

	ref, _, err = a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(1), ref)

	require.NoError(t, a.Free(0))
	require.NoError(t, a.Free(1))

	require.Equal(t, []PageRef{0}, a.FreeBlocks(1))
	require.Empty(t, a.FreeBlocks(0))

	stats := a.Stats()
	require.Equal(t, uint64(1), stats.Splits)
	require.Equal(t, uint64(1), stats.Coalesces)
}

// Test_FreelistLIFO: freeing a block and allocating the same order again
// returns the just-freed block, head first.
func Test_FreelistLIFO(t *testing.T) {
	a := newTestAllocator(t, 8)

	p0, _, err := a.Alloc(0)
	require.NoError(t, err)
	p1, _, err := a.Alloc(0)
	require.NoError(t, err)
	require.NotEqual(t, p0, p1)

	require.NoError(t, a.Free(p0))

	again, _, err := a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, p0, again)

	require.NoError(t, a.Free(p1))
}

// Test_BuddyOutsideUsableRange: page 6 of a 7-page prefix has no buddy
// (page 7 is past the usable range and has no tree node), so freeing it
// must not merge.
func Test_BuddyOutsideUsableRange(t *testing.T) {
	a := newTestAllocator(t, 8)

	ref, _, err := a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, PageRef(6), ref)

	require.NoError(t, a.Free(6))

	require.Equal(t, []PageRef{6}, a.FreeBlocks(0))
	require.Zero(t, a.Stats().Coalesces)
}

// Test_AllocationAlignment: every returned reference is divisible by the
// block size in pages.
func Test_AllocationAlignment(t *testing.T) {
	a := newTestAllocator(t, 64)

	for order := uint(0); order <= 3; order++ {
		ref, _, err := a.Alloc(order)
		require.NoError(t, err)
		require.Zero(t, ref%(1<<order), "order %d block at page %d", order, ref)
		require.NoError(t, a.Free(ref))
	}
}
