package buddy

import "github.com/vsgol/buddykit/internal/format"

// Freelist plumbing.
//
// Each order keeps a doubly-linked list of free blocks. Only the heads
// live in the Allocator; the next/prev links are written into the first
// two words of each free block's head page, as page numbers with NilPage
// for "no neighbour". Those words belong to the caller the moment the
// block is handed out, so every link access goes through these helpers
// and nothing else touches them.

func (a *Allocator) setPageNext(p uint32, next uint64) {
	format.PutU64(a.mem, int(p)*format.PageSize+format.PageNextOffset, next)
}

func (a *Allocator) setPagePrev(p uint32, prev uint64) {
	format.PutU64(a.mem, int(p)*format.PageSize+format.PagePrevOffset, prev)
}

// pageLinks reads both link words of page p.
func (a *Allocator) pageLinks(p uint32) (next, prev uint64) {
	off := int(p) * format.PageSize
	next = format.ReadU64(a.mem, off+format.PageNextOffset)
	prev = format.ReadU64(a.mem, off+format.PagePrevOffset)
	return next, prev
}

// addBlock marks the block available in the tree and prepends it to its
// order's freelist. Dirties the first two words of page p.
func (a *Allocator) addBlock(p, order uint32) {
	a.setAvailable(p, order, true)
	head := a.freelists[order]
	if head == format.NilPage {
		a.freelists[order] = uint64(p)
		a.setPageNext(p, format.NilPage)
		a.setPagePrev(p, format.NilPage)
		return
	}
	a.setPagePrev(uint32(head), uint64(p))
	a.setPageNext(p, head)
	a.setPagePrev(p, format.NilPage)
	a.freelists[order] = uint64(p)
}

// deleteBlock clears the tree's available flag and unlinks the block from
// its order's freelist. The block's link words are left undefined.
func (a *Allocator) deleteBlock(p, order uint32) {
	a.setAvailable(p, order, false)
	next, prev := a.pageLinks(p)
	if next != format.NilPage {
		a.setPagePrev(uint32(next), prev)
	}
	if prev != format.NilPage {
		a.setPageNext(uint32(prev), next)
	} else {
		a.freelists[order] = next
	}
}
