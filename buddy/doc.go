// Package buddy implements a binary buddy page allocator over a single
// caller-supplied contiguous region of memory.
//
// # Overview
//
// The allocator hands out runs of pages whose sizes are powers of two. A
// block of order k covers exactly 1<<k consecutive pages, and its first
// page number is always divisible by 1<<k. Splitting a block yields two
// "buddy" halves of the next order down; freeing a block merges it back
// with its buddy whenever the buddy is free at the same order.
//
// The allocator draws all of its bookkeeping state from the region it
// manages: a metadata tail at the end of the region holds the occupancy
// tree, and freelist links live inside the first two words of each free
// block's head page. No heap or global state is consulted.
//
// # Region layout
//
// New partitions a region of M pages into a usable prefix of U pages and a
// metadata tail of M-U pages:
//
//	| usable pages 0 .. U-1                    | occupancy tree nodes |
//	^ page 0                                   ^ page U
//
// U is the largest value whose occupancy tree still fits in the tail. The
// tree covers the next power of two above U; subtrees that would fall past
// page U-1 are simply never built, so a buddy outside the usable prefix
// reports as unavailable and never merges.
//
// # Usage Example
//
//	mem, release, err := buddy.MapRegion(1024)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
//	a, err := buddy.New(mem)
//	if err != nil {
//	    return err
//	}
//
//	// Allocate a run of 4 pages (order 2).
//	ref, pages, err := a.Alloc(2)
//	if err != nil {
//	    return err
//	}
//	copy(pages, payload)
//
//	// Later, return the block.
//	err = a.Free(ref)
//
// # Failure model
//
// Alloc fails with ErrNoSpace when no block of the requested order can be
// assembled by splitting larger free blocks, and with ErrOrderTooLarge when
// the order exceeds MaxOrder. There is no other recoverable error: freeing a reference that was not handed out by this allocator, or
// freeing twice, is undefined by contract. The allocator surfaces some of
// those misuses as ErrBadRef on a best-effort basis only.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
package buddy
