// Package posio provides buffered file I/O that also tracks the absolute
// byte offset after every read, write, or seek — the primitive the engine
// builds log pointers from: a thin position-tracking shell around the
// standard buffered I/O types.
package posio

import (
	"bufio"
	"io"
	"os"
)

// Reader wraps a buffered *os.File and tracks the absolute read offset.
type Reader struct {
	file *os.File
	buf  *bufio.Reader
	pos  int64
}

// NewReader wraps an already open file for reading; Pos starts at 0, so
// file is expected to be positioned at its start.
func NewReader(file *os.File) *Reader {
	return &Reader{file: file, buf: bufio.NewReader(file)}
}

// Pos returns the current absolute byte offset.
func (r *Reader) Pos() int64 {
	return r.pos
}

// Read implements io.Reader, advancing Pos by the number of bytes read.
func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.buf.Read(p)
	r.pos += int64(n)
	return n, err
}

// Seek implements io.Seeker. Seeking invalidates any buffered look-ahead, so
// the underlying bufio.Reader is reset against the file's new position.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.file.Seek(offset, whence)
	if err != nil {
		return r.pos, err
	}
	r.buf.Reset(r.file)
	r.pos = pos
	return pos, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

var _ io.ReadSeekCloser = (*Reader)(nil)
