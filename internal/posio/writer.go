package posio

import (
	"bufio"
	"os"
)

// Writer wraps a buffered *os.File opened in append mode and tracks the
// absolute write offset. Pos counts bytes accepted into the buffer, so it
// names an offset that exists in the file only after Flush: callers that
// need a pointer derived from Pos must flush first, which is exactly what
// the engine does after every append.
type Writer struct {
	file *os.File
	buf  *bufio.Writer
	pos  int64
}

// NewWriter wraps file, first seeking it to end-of-file so that Pos starts
// at the file's current size.
func NewWriter(file *os.File) (*Writer, error) {
	pos, err := file.Seek(0, os.SEEK_END)
	if err != nil {
		return nil, err
	}
	return &Writer{file: file, buf: bufio.NewWriter(file), pos: pos}, nil
}

// Pos returns the current absolute byte offset, including bytes still
// sitting in the user-space buffer.
func (w *Writer) Pos() int64 {
	return w.pos
}

// Write implements io.Writer, advancing Pos by the number of bytes written
// into the buffer (not yet necessarily durable — call Flush before trusting
// Pos as a durable offset).
func (w *Writer) Write(p []byte) (int, error) {
	n, err := w.buf.Write(p)
	w.pos += int64(n)
	return n, err
}

// Flush pushes any buffered bytes to the underlying file.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
