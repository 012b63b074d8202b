package posio

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPosTracksBufferedBytes(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "posio-writer")
	require.NoError(t, err)

	w, err := NewWriter(f)
	require.NoError(t, err)
	require.Equal(t, int64(0), w.Pos())

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, int64(5), w.Pos())

	require.NoError(t, w.Flush())
	require.NoError(t, w.Close())

	contents, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Equal(t, "hello", string(contents))
}

func TestReaderPosTracksReadsAndSeeks(t *testing.T) {
	path := t.TempDir() + "/data"
	require.NoError(t, os.WriteFile(path, []byte("abcdef"), 0644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := NewReader(f)
	require.Equal(t, int64(0), r.Pos())

	buf := make([]byte, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "abc", string(buf))
	require.Equal(t, int64(3), r.Pos())

	pos, err := r.Seek(1, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, int64(1), pos)
	require.Equal(t, int64(1), r.Pos())

	n, err = r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "bcd", string(buf))
}
