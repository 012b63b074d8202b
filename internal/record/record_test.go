package record

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, Set("k1", "v1")))
	require.NoError(t, Encode(&buf, Remove("k1")))

	dec := NewDecoder(&buf)

	r1, off1, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, KindSet, r1.Kind)
	require.Equal(t, "k1", r1.Key)
	require.Equal(t, "v1", r1.Value)
	require.Greater(t, off1, int64(0))

	r2, off2, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, KindRemove, r2.Kind)
	require.Equal(t, "k1", r2.Key)
	require.Greater(t, off2, off1)

	_, _, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecodeMalformedInput(t *testing.T) {
	dec := NewDecoder(bytes.NewBufferString("not json"))
	_, _, err := dec.Next()
	require.Error(t, err)

	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
}

func TestOffsetsBoundExactBytesConsumed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Set("a", "1")))
	require.NoError(t, Encode(&buf, Set("bb", "22")))

	encoded := buf.Bytes()
	dec := NewDecoder(bytes.NewReader(encoded))

	_, off1, err := dec.Next()
	require.NoError(t, err)

	// Re-decoding only the bytes up to off1 in isolation must succeed and
	// yield the first record again — proving off1 is a genuine record
	// boundary, not an approximation.
	again := NewDecoder(bytes.NewReader(encoded[:off1]))
	r, _, err := again.Next()
	require.NoError(t, err)
	require.Equal(t, "a", r.Key)
}
