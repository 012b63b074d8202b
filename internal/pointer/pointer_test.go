package pointer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewComputesLenAndEnd(t *testing.T) {
	p := New(3, 10, 25)
	require.Equal(t, uint64(3), p.SegmentID)
	require.Equal(t, int64(10), p.Start)
	require.Equal(t, int64(15), p.Len)
	require.Equal(t, int64(25), p.End())
}
