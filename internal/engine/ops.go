package engine

import (
	"io"

	"github.com/LuisBarroso37/kvs/internal/pointer"
	"github.com/LuisBarroso37/kvs/internal/record"
)

// Get returns the value currently associated with key, and false if the key
// has no live entry in the index.
func (e *Engine) Get(key string) (string, bool, error) {
	if e.closed {
		return "", false, closedEngineError()
	}

	p, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	reader, ok := e.readers[p.SegmentID]
	if !ok {
		return "", false, unknownSegmentError(p.SegmentID)
	}

	if _, err := reader.Seek(p.Start, io.SeekStart); err != nil {
		return "", false, err
	}

	dec := record.NewDecoder(io.LimitReader(reader, p.Len))
	rec, _, err := dec.Next()
	if err != nil {
		return "", false, err
	}
	if rec.Kind != record.KindSet {
		return "", false, unexpectedCommandError(key)
	}

	return rec.Value, true, nil
}

// Set writes a Set(key, value) record to the active segment and updates the
// index, triggering a compaction if the accumulated stale-byte count has
// crossed the configured threshold.
func (e *Engine) Set(key, value string) error {
	if e.closed {
		return closedEngineError()
	}

	pos0 := e.writer.Pos()
	if err := record.Encode(e.writer, record.Set(key, value)); err != nil {
		return err
	}
	if err := e.writer.Flush(); err != nil {
		return err
	}
	pos1 := e.writer.Pos()

	p := pointer.New(e.activeID, pos0, pos1)
	if prev, existed := e.index.Set(key, p); existed {
		e.staleBytes += uint64(prev.Len)
	}

	if e.staleBytes > e.options.CompactionThreshold {
		return e.Compact()
	}
	return nil
}

// Remove deletes key from the index and appends a tombstone record to the
// active segment. It returns ErrKeyNotFound, writing nothing, if the key
// has no live entry.
func (e *Engine) Remove(key string) error {
	if e.closed {
		return closedEngineError()
	}

	prev, existed := e.index.Remove(key)
	if !existed {
		return keyNotFoundError(key)
	}
	e.staleBytes += uint64(prev.Len)

	pos0 := e.writer.Pos()
	if err := record.Encode(e.writer, record.Remove(key)); err != nil {
		return err
	}
	if err := e.writer.Flush(); err != nil {
		return err
	}
	pos1 := e.writer.Pos()
	e.staleBytes += uint64(pos1 - pos0)

	if e.staleBytes > e.options.CompactionThreshold {
		return e.Compact()
	}
	return nil
}
