package buddy

import (
	"fmt"
	"io"

	"github.com/xlab/treeprint"

	"github.com/vsgol/buddykit/internal/format"
)

// DumpTree writes a rendering of the occupancy tree to w. Each line shows
// the node's order, the page span it stands for, and its flags: A for
// available (on a freelist), G for handed out, - for neither.
//
// Intended for diagnostics and tests; the output format is not stable.
func (a *Allocator) DumpTree(w io.Writer) error {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("region: %d usable pages, height %d", a.usable, a.height))
	a.dumpNode(tree, 0, 0, a.height)
	_, err := io.WriteString(w, tree.String())
	return err
}

func (a *Allocator) dumpNode(parent treeprint.Tree, idx, pageNumber, depth uint32) {
	branch := parent.AddBranch(a.nodeLabel(idx, pageNumber, depth))
	if depth == 0 {
		return
	}
	if left := a.nodeLeft(idx); left != format.NilNode {
		a.dumpNode(branch, left, pageNumber, depth-1)
	}
	if right := a.nodeRight(idx); right != format.NilNode {
		a.dumpNode(branch, right, pageNumber+format.BlockPages(depth-1), depth-1)
	}
}

func (a *Allocator) nodeLabel(idx, pageNumber, depth uint32) string {
	flags := a.nodeFlags(idx)
	state := "-"
	switch {
	case flags&format.NodeFlagAvailable != 0:
		state = "A"
	case flags&format.NodeFlagWasGiven != 0:
		state = "G"
	}
	last := pageNumber + format.BlockPages(depth) - 1
	if depth == 0 {
		return fmt.Sprintf("order 0 page %d [%s]", pageNumber, state)
	}
	return fmt.Sprintf("order %d pages %d-%d [%s]", depth, pageNumber, last, state)
}
