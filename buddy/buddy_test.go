package buddy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vsgol/buddykit/internal/format"
)

func Test_AllocBasic(t *testing.T) {
	a := newTestAllocator(t, 16)

	ref, pages, err := a.Alloc(0)
	require.NoError(t, err)
	require.Len(t, pages, pageSize)

	// The payload is a window into the managed region; writes land there.
	pages[0] = 0x42
	require.Equal(t, byte(0x42), a.mem[int(ref)*pageSize])

	require.NoError(t, a.Free(ref))
}

func Test_AllocOrderTooLarge(t *testing.T) {
	a := newTestAllocator(t, 16)

	_, _, err := a.Alloc(format.MaxOrder + 1)
	require.ErrorIs(t, err, ErrOrderTooLarge)

	// Orders within MaxOrder but above the region's height fail softly.
	_, _, err = a.Alloc(a.TopOrder() + 1)
	require.ErrorIs(t, err, ErrNoSpace)
}

func Test_AllocPayloadIsolation(t *testing.T) {
	a := newTestAllocator(t, 16)

	ref1, data1, err := a.Alloc(0)
	require.NoError(t, err)
	_, data2, err := a.Alloc(0)
	require.NoError(t, err)

	for i := range data1 {
		data1[i] = 0xAA
	}
	for i := range data2 {
		data2[i] = 0xBB
	}
	for i := range data1 {
		require.Equal(t, byte(0xAA), data1[i], "block 1 corrupted at offset %d", i)
	}

	require.NoError(t, a.Free(ref1))
	for i := range data2 {
		require.Equal(t, byte(0xBB), data2[i], "block 2 corrupted at offset %d after free", i)
	}
}

func Test_MapRegion(t *testing.T) {
	_, _, err := MapRegion(1)
	require.ErrorIs(t, err, ErrRegionSmall)

	mem, release, err := MapRegion(16)
	require.NoError(t, err)
	defer release()
	require.Len(t, mem, 16*pageSize)

	a, err := New(mem)
	require.NoError(t, err)

	ref, pages, err := a.Alloc(1)
	require.NoError(t, err)
	pages[0] = 0x5A
	require.NoError(t, a.Free(ref))
}
