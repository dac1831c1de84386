//go:build unix

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapAnonymousUnix(t *testing.T) {
	const size = 8 * 4096
	data, release, err := Map(size)
	require.NoError(t, err)
	require.Len(t, data, size)

	// Fresh anonymous pages are zeroed and writable.
	for _, b := range data[:4096] {
		require.Zero(t, b)
	}
	data[0] = 0xAA
	data[size-1] = 0x55
	require.Equal(t, byte(0xAA), data[0])

	require.NoError(t, release())
	// Second release is tolerated.
	require.NoError(t, release())
}
