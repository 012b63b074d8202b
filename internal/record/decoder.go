package record

import (
	"encoding/json"
	"errors"
	"io"
)

// ErrUnexpectedCommand signals that a record of the wrong kind was decoded
// where the caller required a specific one — always either log corruption
// or a programming error, never a recoverable condition.
var ErrUnexpectedCommand = errors.New("unexpected command")

// Decoder reads a stream of Records from an io.Reader positioned at a record
// boundary, and reports the cumulative byte offset consumed after each one.
//
// This is the decoder/offset coupling the engine's replay and compaction
// logic depend on: building a Pointer from anything other than the
// decoder's own notion of "how far have I read" risks disagreeing with what
// is actually on disk (e.g. if whitespace or formatting differs between the
// original write and a hypothetical re-encode).
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder wraps r for streaming record decoding.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: json.NewDecoder(r)}
}

// Next decodes the next record and returns it along with the byte offset,
// counted from the start of the decoder's input, of the first byte
// following it. io.EOF is returned (wrapped by
// nothing) when the stream is exhausted at a record boundary.
func (d *Decoder) Next() (Record, int64, error) {
	var r Record
	if err := d.dec.Decode(&r); err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, 0, io.EOF
		}
		return Record{}, 0, &SerializationError{Err: err}
	}
	return r, d.dec.InputOffset(), nil
}
