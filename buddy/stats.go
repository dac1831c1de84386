package buddy

import "github.com/vsgol/buddykit/internal/format"

// AllocatorStats holds counters for testing and instrumentation.
type AllocatorStats struct {
	AllocCalls     uint64 // Total Alloc() calls
	FailedAllocs   uint64 // Alloc() calls that returned an error
	FreeCalls      uint64 // Total Free() calls
	Splits         uint64 // Blocks split on the allocation path
	Coalesces      uint64 // Buddy merges on the free path
	PagesAllocated uint64 // Pages handed out, cumulative
	PagesFreed     uint64 // Pages returned, cumulative
}

// Stats returns a snapshot of the allocator counters.
func (a *Allocator) Stats() AllocatorStats {
	return a.stats
}

// TotalPages returns the number of pages in the usable prefix.
func (a *Allocator) TotalPages() uint32 {
	return a.usable
}

// FreePages counts the pages currently sitting on freelists by walking
// the lists. Intended for tests and introspection, not hot paths.
func (a *Allocator) FreePages() uint32 {
	var free uint32
	for order := uint32(0); order <= a.height; order++ {
		for p := a.freelists[order]; p != format.NilPage; {
			free += format.BlockPages(order)
			next, _ := a.pageLinks(uint32(p))
			p = next
		}
	}
	return free
}

// TopOrder returns the highest order Alloc will attempt to satisfy. Any
// request above it fails immediately.
func (a *Allocator) TopOrder() uint {
	return uint(a.height)
}

// FreeBlocks returns the first-page numbers of the blocks on the given
// order's freelist, head first.
func (a *Allocator) FreeBlocks(order uint) []PageRef {
	if order > format.MaxOrder {
		return nil
	}
	var blocks []PageRef
	for p := a.freelists[order]; p != format.NilPage; {
		blocks = append(blocks, uint32(p))
		next, _ := a.pageLinks(uint32(p))
		p = next
	}
	return blocks
}
