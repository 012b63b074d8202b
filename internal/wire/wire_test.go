package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.EncodeRequest(GetRequest("k")))
	require.NoError(t, enc.EncodeRequest(SetRequest("k", "v")))
	require.NoError(t, enc.EncodeRequest(RemoveRequest("k")))

	dec := NewDecoder(&buf)

	r1, err := dec.DecodeRequest()
	require.NoError(t, err)
	require.Equal(t, GetRequest("k"), r1)

	r2, err := dec.DecodeRequest()
	require.NoError(t, err)
	require.Equal(t, SetRequest("k", "v"), r2)

	r3, err := dec.DecodeRequest()
	require.NoError(t, err)
	require.Equal(t, RemoveRequest("k"), r3)
}

func TestResponseRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.EncodeResponse(ValueResponse("v")))
	require.NoError(t, enc.EncodeResponse(SuccessResponse()))
	require.NoError(t, enc.EncodeResponse(KeyNotFoundResponse()))
	require.NoError(t, enc.EncodeResponse(ErrorResponse("boom")))

	dec := NewDecoder(&buf)

	r1, err := dec.DecodeResponse()
	require.NoError(t, err)
	require.Equal(t, ValueResponse("v"), r1)

	r2, err := dec.DecodeResponse()
	require.NoError(t, err)
	require.Equal(t, SuccessResponse(), r2)

	r3, err := dec.DecodeResponse()
	require.NoError(t, err)
	require.Equal(t, KeyNotFoundResponse(), r3)

	r4, err := dec.DecodeResponse()
	require.NoError(t, err)
	require.Equal(t, ErrorResponse("boom"), r4)
}
