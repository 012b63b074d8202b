package engine

import (
	"fmt"
	"io"

	"github.com/LuisBarroso37/kvs/internal/pointer"
)

func unknownSegmentError(id uint64) error {
	return fmt.Errorf("index names segment %d with no open reader", id)
}

// Compact rewrites every live record into a fresh segment and deletes every
// segment older than it, reclaiming the space occupied by overwritten
// values and tombstones.
//
// Two fresh segment ids are reserved up front (compact_id, new_active_id)
// so that any append accepted after Compact returns lands in a segment
// strictly newer than the compaction output — the compaction segment stays
// immutable and is never mistaken for the active one on a later recovery.
func (e *Engine) Compact() error {
	compactID := e.activeID + 1
	newActiveID := e.activeID + 2

	compactWriter, compactReader, err := e.segments.Create(compactID)
	if err != nil {
		return err
	}
	e.readers[compactID] = compactReader

	newWriter, newReader, err := e.segments.Create(newActiveID)
	if err != nil {
		return err
	}

	// Snapshot the index before mutating it, so the walk below never
	// inserts or updates entries while the tree is mid-iteration.
	type snapshot struct {
		key string
		ptr pointer.Pointer
	}
	var entries []snapshot
	e.index.Ascend(func(key string, p pointer.Pointer) bool {
		entries = append(entries, snapshot{key: key, ptr: p})
		return true
	})

	var offset int64
	for _, s := range entries {
		reader, ok := e.readers[s.ptr.SegmentID]
		if !ok {
			return unknownSegmentError(s.ptr.SegmentID)
		}
		if _, err := reader.Seek(s.ptr.Start, io.SeekStart); err != nil {
			return err
		}

		n, err := io.CopyN(compactWriter, reader, s.ptr.Len)
		if err != nil {
			return err
		}

		e.index.Update(s.key, pointer.New(compactID, offset, offset+n))
		offset += n
	}

	if err := compactWriter.Flush(); err != nil {
		return err
	}

	oldWriter := e.writer
	if err := oldWriter.Close(); err != nil {
		return err
	}

	for id, reader := range e.readers {
		if id >= compactID {
			continue
		}
		reader.Close()
		delete(e.readers, id)
		if err := e.segments.Delete(id); err != nil {
			return err
		}
	}

	e.readers[newActiveID] = newReader
	e.writer = newWriter
	e.activeID = newActiveID
	e.staleBytes = 0

	e.log.Infow("compaction complete", "compactSegment", compactID, "newActiveSegment", newActiveID, "liveRecords", len(entries))
	return nil
}
