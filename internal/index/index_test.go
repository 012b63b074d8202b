package index

import (
	"testing"

	"github.com/LuisBarroso37/kvs/internal/pointer"
	"github.com/stretchr/testify/require"
)

func TestSetGetRemove(t *testing.T) {
	ix := New()

	_, ok := ix.Get("missing")
	require.False(t, ok)

	p1 := pointer.New(1, 0, 10)
	prev, existed := ix.Set("k", p1)
	require.False(t, existed)
	require.Equal(t, pointer.Pointer{}, prev)

	got, ok := ix.Get("k")
	require.True(t, ok)
	require.Equal(t, p1, got)

	p2 := pointer.New(1, 10, 25)
	prev, existed = ix.Set("k", p2)
	require.True(t, existed)
	require.Equal(t, p1, prev)

	removed, existed := ix.Remove("k")
	require.True(t, existed)
	require.Equal(t, p2, removed)

	_, ok = ix.Get("k")
	require.False(t, ok)

	_, existed = ix.Remove("k")
	require.False(t, existed)
}

func TestAscendVisitsKeysInOrder(t *testing.T) {
	ix := New()
	ix.Set("b", pointer.New(1, 0, 1))
	ix.Set("a", pointer.New(1, 1, 2))
	ix.Set("c", pointer.New(1, 2, 3))

	var seen []string
	ix.Ascend(func(key string, p pointer.Pointer) bool {
		seen = append(seen, key)
		return true
	})

	require.Equal(t, []string{"a", "b", "c"}, seen)
	require.Equal(t, 3, ix.Len())
}

func TestUpdateRewritesLiveEntryOnly(t *testing.T) {
	ix := New()
	ix.Update("absent", pointer.New(2, 0, 1))
	_, ok := ix.Get("absent")
	require.False(t, ok)

	ix.Set("present", pointer.New(1, 0, 1))
	ix.Update("present", pointer.New(2, 5, 9))

	got, ok := ix.Get("present")
	require.True(t, ok)
	require.Equal(t, pointer.New(2, 5, 9), got)
}
