package buddy

import (
	"fmt"
	"os"

	"github.com/vsgol/buddykit/internal/arena"
	"github.com/vsgol/buddykit/internal/format"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugBuddy = false

// PageRef identifies a handed-out block by the zero-based number of its
// first page within the usable prefix.
type PageRef = uint32

// Allocator manages a contiguous memory region and hands out runs of
// pages whose sizes are powers of two.
//
// All bookkeeping lives inside the managed region itself: the occupancy
// tree occupies a tail of pages reserved at construction, and freelist
// links are written into the head pages of free blocks. The struct below
// holds only fixed-size cursors into that region.
type Allocator struct {
	mem    []byte // the whole managed region
	usable uint32 // pages in the usable prefix
	height uint32 // occupancy tree height

	// Node arena carved out of the region's tail. nodeCount is the bump
	// cursor, in records.
	tail      []byte
	nodeCount uint32

	// Freelist heads, one per order. The head is a page number, or NilPage
	// when the list is empty. The rest of each list is threaded through the
	// link words of the free pages themselves.
	freelists [format.Orders]uint64

	stats AllocatorStats
}

// New constructs an allocator over mem. The slice must span a positive
// multiple of format.PageSize covering at least two pages; the allocator
// owns it until the caller discards the allocator.
//
// Beyond those checks, construction fails only with ErrRegionLarge, when
// the region is so large that the tree height would exceed MaxOrder.
// Runs in O(MaxOrder + M)
// where the M term is the initial freelist sweep.
func New(mem []byte) (*Allocator, error) {
	if len(mem)%format.PageSize != 0 {
		return nil, ErrRegionUnaligned
	}
	if len(mem) < 2*format.PageSize {
		return nil, ErrRegionSmall
	}
	a := &Allocator{mem: mem}
	if err := a.bootstrap(uint32(len(mem) / format.PageSize)); err != nil {
		return nil, err
	}
	return a, nil
}

// MapRegion obtains an anonymous page-aligned region of the given page
// count, suitable for handing to New. The returned release function
// unmaps the region; the caller must not touch it afterwards.
func MapRegion(pages int) ([]byte, func() error, error) {
	if pages < 2 {
		return nil, nil, ErrRegionSmall
	}
	mem, release, err := arena.Map(pages * format.PageSize)
	if err != nil {
		return nil, nil, fmt.Errorf("buddy: map region: %w", err)
	}
	return mem, release, nil
}

// Alloc hands out a block of 1<<order consecutive pages. It returns the
// block's first page number and the block's bytes as a sub-slice of the
// managed region.
//
// The returned page number is divisible by 1<<order. Runs in O(MaxOrder).
func (a *Allocator) Alloc(order uint) (PageRef, []byte, error) {
	a.stats.AllocCalls++
	if order > format.MaxOrder {
		a.stats.FailedAllocs++
		return 0, nil, ErrOrderTooLarge
	}
	block, ok := a.allocBlock(uint32(order))
	if !ok {
		a.stats.FailedAllocs++
		if debugBuddy {
			debugLogf("Alloc(%d): no block, height=%d", order, a.height)
		}
		return 0, nil, ErrNoSpace
	}

	// Only the block actually handed out is marked given; the intermediate
	// nodes on the split path stay unmarked.
	a.setWasGiven(block, uint32(order), true)
	a.stats.PagesAllocated += uint64(format.BlockPages(uint32(order)))

	start := int(block) * format.PageSize
	end := start + (format.PageSize << order)
	return block, a.mem[start:end:end], nil
}

// allocBlock finds a free block of the given order, splitting a larger
// block when the order's own freelist is empty.
func (a *Allocator) allocBlock(order uint32) (uint32, bool) {
	if order > a.height {
		return 0, false
	}
	if head := a.freelists[order]; head != format.NilPage {
		block := uint32(head)
		a.deleteBlock(block, order)
		return block, true
	}

	block, ok := a.allocBlock(order + 1)
	if !ok {
		return 0, false
	}
	a.stats.Splits++
	a.addBlock(block+format.BlockPages(order), order)
	return block, true
}

// Free returns a block previously handed out by Alloc. The order is
// recovered from the occupancy tree, then the block is merged with its
// buddy as long as the buddy is free at the same order.
//
// Runs in O(MaxOrder).
func (a *Allocator) Free(ref PageRef) error {
	a.stats.FreeCalls++
	if ref >= a.usable {
		return ErrBadRef
	}
	order, ok := a.findDepth(ref)
	if !ok {
		return ErrBadRef
	}
	a.setWasGiven(ref, order, false)
	a.stats.PagesFreed += uint64(format.BlockPages(order))
	a.addBlock(ref, order)

	block := ref
	for order < a.height {
		buddy := format.BuddyOf(block, order)
		if !a.isAvailable(buddy, order) {
			// The buddy is handed out, split further down, or lies outside
			// the usable prefix. Merging stops here.
			break
		}
		a.stats.Coalesces++
		a.deleteBlock(buddy, order)
		a.deleteBlock(block, order)
		if buddy < block {
			block = buddy
		}
		order++
		a.addBlock(block, order)
	}
	return nil
}

// debugLogf prints debug messages if debugBuddy is enabled.
func debugLogf(format string, args ...any) {
	if debugBuddy {
		fmt.Fprintf(os.Stderr, "[BUDDY] "+format+"\n", args...)
	}
}
