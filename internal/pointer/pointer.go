// Package pointer defines the compact descriptor used to locate one record
// inside the log: which segment it lives in, where it starts, and how long
// it is.
package pointer

// Pointer names the byte range of one encoded record inside a segment file.
// It is the unit of value stored in the in-memory index (see package index)
// and is what compaction rewrites as it relocates live records.
type Pointer struct {
	SegmentID uint64 // id of the segment file (<id>.log) holding the record.
	Start     int64  // byte offset of the first byte of the record.
	Len       int64  // number of bytes the encoded record occupies.
}

// New builds a Pointer spanning [start, end) within segment id.
func New(id uint64, start, end int64) Pointer {
	return Pointer{SegmentID: id, Start: start, Len: end - start}
}

// End returns the offset one past the last byte of the record.
func (p Pointer) End() int64 {
	return p.Start + p.Len
}
