package buddy

import "errors"

var (
	// ErrNoSpace indicates that no free block of the requested order could
	// be assembled by splitting larger blocks.
	ErrNoSpace = errors.New("buddy: no free block of requested order")

	// ErrOrderTooLarge indicates a request above MaxOrder.
	ErrOrderTooLarge = errors.New("buddy: order exceeds MaxOrder")

	// ErrBadRef indicates a page reference that is out of range or was not
	// handed out by this allocator. Detection is best-effort, not a promise.
	ErrBadRef = errors.New("buddy: bad block reference")

	// ErrRegionSmall indicates a region shorter than two pages.
	ErrRegionSmall = errors.New("buddy: region must cover at least 2 pages")

	// ErrRegionUnaligned indicates a region length that is not a multiple of
	// the page size.
	ErrRegionUnaligned = errors.New("buddy: region length must be a multiple of PageSize")

	// ErrRegionLarge indicates a region whose tree height would exceed
	// MaxOrder.
	ErrRegionLarge = errors.New("buddy: region too large for MaxOrder")
)
