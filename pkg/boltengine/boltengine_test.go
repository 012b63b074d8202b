package boltengine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kvs.bolt")

	e, err := Open(path)
	require.NoError(t, err)
	defer e.Close()

	_, ok, err := e.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, e.Set("k", "v"))

	value, ok, err := e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	require.NoError(t, e.Remove("k"))
	require.ErrorIs(t, e.Remove("k"), ErrKeyNotFound)
}
