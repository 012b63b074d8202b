package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureEngineCreatesFileWhenAbsent(t *testing.T) {
	dir := t.TempDir()

	_, exists, err := Load(dir)
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, EnsureEngine(dir, "kvs"))

	recorded, exists, err := Load(dir)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, "kvs", recorded)
}

func TestEnsureEngineAgreesWithRecordedChoice(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, EnsureEngine(dir, "kvs"))
	require.NoError(t, EnsureEngine(dir, "kvs"))
}

func TestEnsureEngineRejectsMismatch(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, EnsureEngine(dir, "kvs"))

	err := EnsureEngine(dir, "sled")
	require.Error(t, err)

	var invalidErr *InvalidEngineError
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "kvs", invalidErr.Recorded)
	require.Equal(t, "sled", invalidErr.Chosen)
}
