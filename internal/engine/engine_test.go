package engine

import (
	"context"
	"strconv"
	"testing"

	"github.com/LuisBarroso37/kvs/pkg/options"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestEngine(t *testing.T, dir string, opts ...options.OptionFunc) *Engine {
	t.Helper()

	o := options.NewDefaultOptions()
	o.DataDir = dir
	for _, apply := range opts {
		apply(&o)
	}

	e, err := Open(context.Background(), &Config{Options: &o, Logger: zap.NewNop().Sugar()})
	require.NoError(t, err)
	return e
}

func TestSetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("k", "v"))

	value, ok, err := e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	_, ok, err = e.Get("absent")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSetOverwritesPreviousValue(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("k", "1"))
	require.NoError(t, e.Set("k", "2"))
	require.NoError(t, e.Set("k", "3"))

	value, ok, err := e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "3", value)
}

func TestRemoveOfAbsentKeyFails(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	err := e.Remove("missing")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSetThenRemoveThenRemoveAgainFails(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	defer e.Close()

	require.NoError(t, e.Set("k", "v"))
	require.NoError(t, e.Remove("k"))

	_, ok, err := e.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.ErrorIs(t, e.Remove("k"), ErrKeyNotFound)
}

func TestCloseAndReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)

	require.NoError(t, e.Set("k", "v"))
	require.NoError(t, e.Close())

	e2 := openTestEngine(t, dir)
	defer e2.Close()

	value, ok, err := e2.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)
}

func TestCompactionReclaimsSpaceAndPreservesValues(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir, options.WithCompactionThreshold(1024))
	defer e.Close()

	big := make([]byte, 200)
	for i := range big {
		big[i] = 'x'
	}

	for i := 0; i < 50; i++ {
		require.NoError(t, e.Set("k", string(big)+strconv.Itoa(i)))
	}

	require.Equal(t, uint64(0), e.staleBytes)

	value, ok, err := e.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, string(big)+"49", value)

	ids, err := e.segments.Discover()
	require.NoError(t, err)
	for _, id := range ids {
		require.GreaterOrEqual(t, id, e.activeID-1)
	}
}

func TestOperationsFailAfterClose(t *testing.T) {
	dir := t.TempDir()
	e := openTestEngine(t, dir)
	require.NoError(t, e.Close())

	require.ErrorIs(t, e.Close(), ErrEngineClosed)
	_, _, err := e.Get("k")
	require.ErrorIs(t, err, ErrEngineClosed)
	require.ErrorIs(t, e.Set("k", "v"), ErrEngineClosed)
	require.ErrorIs(t, e.Remove("k"), ErrEngineClosed)
}
