package buddy

import "github.com/vsgol/buddykit/internal/format"

// Occupancy tree over the metadata tail.
//
// Nodes are fixed-width records bump-allocated from the tail in build
// order, with index-based children. A node at depth d from the root
// stands for a candidate block of order height-d. Two flags per node:
// available (the block is on its order's freelist) and wasGiven (the
// block was handed out at exactly this order).
//
// All descents walk from the root toward a page number, choosing the
// child by bit depth-1 of the page number and masking that bit off.
// Descent depth is bounded by MaxOrder, so the walks are iterative.

// newNode bump-allocates the next node record and returns its index.
func (a *Allocator) newNode() uint32 {
	idx := a.nodeCount
	a.nodeCount++
	off := int(idx) * format.NodeSize
	a.tail[off+format.NodeFlagsOffset] = 0
	format.PutU32(a.tail, off+format.NodeLeftOffset, format.NilNode)
	format.PutU32(a.tail, off+format.NodeRightOffset, format.NilNode)
	return idx
}

func (a *Allocator) setChildren(idx, left, right uint32) {
	off := int(idx) * format.NodeSize
	format.PutU32(a.tail, off+format.NodeLeftOffset, left)
	format.PutU32(a.tail, off+format.NodeRightOffset, right)
}

func (a *Allocator) nodeLeft(idx uint32) uint32 {
	return format.ReadU32(a.tail, int(idx)*format.NodeSize+format.NodeLeftOffset)
}

func (a *Allocator) nodeRight(idx uint32) uint32 {
	return format.ReadU32(a.tail, int(idx)*format.NodeSize+format.NodeRightOffset)
}

func (a *Allocator) nodeFlags(idx uint32) byte {
	return a.tail[int(idx)*format.NodeSize+format.NodeFlagsOffset]
}

func (a *Allocator) setNodeFlag(idx uint32, mask byte, v bool) {
	off := int(idx)*format.NodeSize + format.NodeFlagsOffset
	if v {
		a.tail[off] |= mask
	} else {
		a.tail[off] &^= mask
	}
}

// descend walks from the root to the node of the given order covering
// page p. It reports the node index and whether the node exists.
func (a *Allocator) descend(p, order uint32) (uint32, bool) {
	idx := uint32(0)
	for depth := a.height; depth != order; {
		depth--
		if p>>depth&1 == 1 {
			p &= format.BlockPages(depth) - 1
			idx = a.nodeRight(idx)
		} else {
			idx = a.nodeLeft(idx)
		}
		if idx == format.NilNode {
			return 0, false
		}
	}
	return idx, true
}

// isAvailable reports whether the block starting at page p is on the
// freelist of the given order. A block whose node does not exist, because
// it lies past the usable prefix, is never available.
func (a *Allocator) isAvailable(p, order uint32) bool {
	idx, ok := a.descend(p, order)
	if !ok {
		return false
	}
	return a.nodeFlags(idx)&format.NodeFlagAvailable != 0
}

// setAvailable flags the node at (p, order). The node must exist.
func (a *Allocator) setAvailable(p, order uint32, v bool) {
	idx, ok := a.descend(p, order)
	if !ok {
		panic("buddy: setAvailable on missing tree node")
	}
	a.setNodeFlag(idx, format.NodeFlagAvailable, v)
}

// setWasGiven flags the node at (p, order). The node must exist.
func (a *Allocator) setWasGiven(p, order uint32, v bool) {
	idx, ok := a.descend(p, order)
	if !ok {
		panic("buddy: setWasGiven on missing tree node")
	}
	a.setNodeFlag(idx, format.NodeFlagWasGiven, v)
}

// findDepth walks from the root toward page p and returns the order of
// the first ancestor marked wasGiven. This is how Free recovers the order
// a reference was handed out at. The walk only matches nodes whose block
// starts exactly at p, so interior pages of a block never match.
func (a *Allocator) findDepth(p uint32) (uint32, bool) {
	idx := uint32(0)
	depth := a.height
	for {
		if p == 0 && a.nodeFlags(idx)&format.NodeFlagWasGiven != 0 {
			return depth, true
		}
		if depth == 0 {
			return 0, false
		}
		depth--
		if p>>depth&1 == 1 {
			p &= format.BlockPages(depth) - 1
			idx = a.nodeRight(idx)
		} else {
			idx = a.nodeLeft(idx)
		}
		if idx == format.NilNode {
			return 0, false
		}
	}
}
