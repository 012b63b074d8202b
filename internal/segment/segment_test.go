package segment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDirectory(t *testing.T) (*Directory, string) {
	t.Helper()
	dir := t.TempDir()
	return New(dir, zap.NewNop().Sugar()), dir
}

func TestDiscoverOrdersIdsAndIgnoresJunk(t *testing.T) {
	d, path := newTestDirectory(t)
	require.NoError(t, d.Ensure())

	for _, name := range []string{"3.log", "1.log", "20.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(path, name), nil, 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(path, "not-a-segment.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "abc.log"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(path, "5.log"), 0755))

	ids, err := d.Discover()
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3, 20}, ids)
}

func TestCreateWriteAndReadBack(t *testing.T) {
	d, _ := newTestDirectory(t)
	require.NoError(t, d.Ensure())

	writer, reader, err := d.Create(1)
	require.NoError(t, err)

	_, err = writer.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.Flush())

	buf := make([]byte, 5)
	n, err := reader.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(buf))

	require.NoError(t, writer.Close())
	require.NoError(t, reader.Close())
}

func TestDeleteRemovesSegmentFile(t *testing.T) {
	d, path := newTestDirectory(t)
	require.NoError(t, d.Ensure())

	writer, reader, err := d.Create(7)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, reader.Close())

	require.FileExists(t, d.Path(7))
	require.NoError(t, d.Delete(7))
	require.NoFileExists(t, filepath.Join(path, "7.log"))
}
