package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsgol/buddykit/internal/format"
)

// ============================================================================
// Test Helpers
// ============================================================================

const pageSize = format.PageSize

// newTestAllocator builds an allocator over a fresh region of the given
// page count.
func newTestAllocator(t testing.TB, pages int) *Allocator {
	t.Helper()

	mem := make([]byte, pages*format.PageSize)
	a, err := New(mem)
	require.NoError(t, err)
	return a
}

// freelistSnapshot captures the block set of every freelist, keyed by
// order. Used to compare allocator states before and after a workload.
func freelistSnapshot(a *Allocator) map[uint][]PageRef {
	snap := make(map[uint][]PageRef)
	for order := uint(0); order <= a.TopOrder(); order++ {
		if blocks := a.FreeBlocks(order); len(blocks) > 0 {
			snap[order] = blocks
		}
	}
	return snap
}

// drainOrder allocates blocks of the given order until the allocator
// refuses, returning every reference handed out.
func drainOrder(t testing.TB, a *Allocator, order uint) []PageRef {
	t.Helper()

	var refs []PageRef
	for {
		ref, _, err := a.Alloc(order)
		if err != nil {
			require.ErrorIs(t, err, ErrNoSpace)
			return refs
		}
		refs = append(refs, ref)
	}
}
