// Package format houses the low-level layout constants and arithmetic for
// the buddy page allocator. The goal is to keep the byte-level encoding
// focused and allocation-free so the higher-level buddy package can
// orchestrate the data in a more ergonomic form.
package format

const (
	// PageSize is the size of the page managed by the allocator. It matches
	// the common host page size and must be at least two machine words so
	// that freelist links fit at the start of any free page.
	PageSize = 4096

	// MaxOrder is the highest allocatable order. A block of order k covers
	// exactly 1<<k consecutive pages.
	MaxOrder = 20

	// Orders is the number of freelists the allocator maintains.
	Orders = MaxOrder + 1

	// WordSize is the width of a freelist link word inside a free page.
	WordSize = 8

	// PageNextOffset and PagePrevOffset locate the two link words at the
	// start of a free block's first page. They are defined only while the
	// page heads a free block; after allocation the bytes are caller data.
	PageNextOffset = 0
	PagePrevOffset = WordSize
)

const (
	// NodeSize is the width of one occupancy tree node record in the
	// metadata tail. The bootstrap partition bound is computed against
	// this value.
	NodeSize = 12

	// Node record layout:
	//   0x00  flags (u8): bit 0 available, bit 1 wasGiven
	//   0x04  left child node index (u32, NilNode if absent)
	//   0x08  right child node index (u32, NilNode if absent)
	NodeFlagsOffset = 0
	NodeLeftOffset  = 4
	NodeRightOffset = 8

	NodeFlagAvailable = 1 << 0
	NodeFlagWasGiven  = 1 << 1
)

const (
	// NilNode marks an absent child in a node record. An absent child means
	// the subtree on that side holds no usable pages.
	NilNode = ^uint32(0)

	// NilPage is the "no neighbour" sentinel in freelist link words and
	// marks an empty freelist head.
	NilPage = ^uint64(0)
)
