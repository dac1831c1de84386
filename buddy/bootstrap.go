package buddy

import "github.com/vsgol/buddykit/internal/format"

// Construction-time partitioning and occupancy tree build.
//
// The region of M pages is split into a usable prefix of U pages and a
// metadata tail holding the tree. U is found by shrinking from M until the
// tree for a capacity of NextPow2(U) fits in the pages given up so far.
// The tree is then built recursively: subtrees that lie wholly inside the
// usable prefix are built full, the subtree containing page U-1 is built
// partial, and subtrees past it are not built at all.

// bootstrap partitions the region and seeds the freelists.
func (a *Allocator) bootstrap(pages uint32) error {
	usable := pages
	var tailPages uint32
	for uint64(format.NodeSize)*(uint64(usable)+uint64(format.NextPow2(usable))) >
		uint64(tailPages)*format.PageSize {
		tailPages++
		usable--
	}

	height := format.Log2(usable - 1)
	if height > format.MaxOrder {
		return ErrRegionLarge
	}

	a.usable = usable
	a.height = height
	a.tail = a.mem[int(usable)*format.PageSize:]
	for order := range a.freelists {
		a.freelists[order] = format.NilPage
	}

	root := a.buildPartial(usable-1, height)
	if a.collectSubtrees(root, 0, height) {
		a.addBlock(0, height)
	}
	return nil
}

// buildFull builds a complete subtree of the given depth and returns its
// node index. Nodes start unavailable; collectSubtrees marks the roots of
// the free blocks afterwards.
func (a *Allocator) buildFull(depth uint32) uint32 {
	idx := a.newNode()
	if depth == 0 {
		return idx
	}
	left := a.buildFull(depth - 1)
	right := a.buildFull(depth - 1)
	a.setChildren(idx, left, right)
	return idx
}

// buildPartial builds the subtree covering pages 0..lastPage of a subtree
// of the given depth. When lastPage is the subtree's final slot the
// subtree is complete and the full builder takes over; otherwise only the
// side(s) containing usable pages are built, and a missing right child
// records that no usable pages exist on that side.
func (a *Allocator) buildPartial(lastPage, depth uint32) uint32 {
	idx := a.newNode()
	if lastPage == format.BlockPages(depth)-1 {
		a.setNodeFlag(idx, format.NodeFlagAvailable, true)
		if depth > 0 {
			left := a.buildFull(depth - 1)
			right := a.buildFull(depth - 1)
			a.setChildren(idx, left, right)
		}
		return idx
	}
	if depth == 0 {
		return idx
	}
	depth--
	if lastPage>>depth&1 == 1 {
		left := a.buildFull(depth)
		right := a.buildPartial(lastPage&(format.BlockPages(depth)-1), depth)
		a.setChildren(idx, left, right)
		return idx
	}
	left := a.buildPartial(lastPage, depth)
	a.setChildren(idx, left, format.NilNode)
	return idx
}

// collectSubtrees seeds the freelists with the complete subtrees of the
// freshly built tree, post-order. It reports whether the subtree rooted at
// idx is itself complete, in which case the caller adds it one level up;
// the constructor adds the final survivor at the top order.
func (a *Allocator) collectSubtrees(idx, pageNumber, depth uint32) bool {
	if depth == 0 {
		return true
	}
	right := a.nodeRight(idx)
	if right == format.NilNode {
		if a.collectSubtrees(a.nodeLeft(idx), pageNumber, depth-1) {
			a.addBlock(pageNumber, depth-1)
		}
		return false
	}
	if a.collectSubtrees(right, pageNumber+format.BlockPages(depth-1), depth-1) {
		return true
	}
	// The right side is incomplete and has seeded its own pieces; the left
	// subtree is complete by construction.
	a.addBlock(pageNumber, depth-1)
	return false
}
