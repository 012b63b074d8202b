// Package engine implements the core of the key-value store: a
// single-writer, append-only, log-structured storage engine with an
// in-memory index and threshold-driven compaction.
//
// Engine owns the index, the segment directory, and compaction as
// collaborators behind one lifecycle-managed type; compaction is a method
// on Engine operating directly on the segment directory and index rather
// than a separate subsystem.
package engine

import (
	"context"
	stdErrors "errors"
	"io"

	"github.com/LuisBarroso37/kvs/internal/index"
	"github.com/LuisBarroso37/kvs/internal/pointer"
	"github.com/LuisBarroso37/kvs/internal/posio"
	"github.com/LuisBarroso37/kvs/internal/record"
	"github.com/LuisBarroso37/kvs/internal/segment"
	kvserrors "github.com/LuisBarroso37/kvs/pkg/errors"
	"github.com/LuisBarroso37/kvs/pkg/options"
	"go.uber.org/zap"
)

var (
	// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

	// ErrKeyNotFound is returned by Remove (and surfaced by Get callers that
	// care to distinguish "absent" from an error) when the key has no live
	// entry in the index.
	ErrKeyNotFound = stdErrors.New("key not found")
)

// closedEngineError wraps ErrEngineClosed in an EngineError so callers that
// inspect error codes see ErrorCodeInternal (a closed engine is a caller
// bug, not a recoverable runtime condition) while errors.Is(err,
// ErrEngineClosed) still succeeds via the wrapped cause.
func closedEngineError() error {
	return kvserrors.NewEngineError(ErrEngineClosed, kvserrors.ErrorCodeInternal, ErrEngineClosed.Error())
}

// keyNotFoundError wraps ErrKeyNotFound in an EngineError carrying the key
// that was looked up, for callers (the server) that want structured context
// rather than just the sentinel identity.
func keyNotFoundError(key string) error {
	return kvserrors.NewEngineError(ErrKeyNotFound, kvserrors.ErrorCodeKeyNotFound, ErrKeyNotFound.Error()).WithKey(key)
}

// unexpectedCommandError wraps record.ErrUnexpectedCommand in an EngineError
// carrying the key whose record decoded to the wrong kind.
func unexpectedCommandError(key string) error {
	return kvserrors.NewEngineError(record.ErrUnexpectedCommand, kvserrors.ErrorCodeUnexpectedCommand, record.ErrUnexpectedCommand.Error()).WithKey(key)
}

// Engine is the log-structured key-value engine. It is single-threaded and
// non-reentrant: callers (the TCP server, tests, the CLI) are responsible
// for serializing access, exactly as spec'd — the engine itself holds no
// internal lock.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger

	segments *segment.Directory
	readers  map[uint64]*posio.Reader
	writer   *posio.Writer

	activeID   uint64
	index      *index.Index
	staleBytes uint64

	closed bool
}

// Config holds the parameters needed to open an Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// Open creates the data directory if necessary, replays every existing
// segment to rebuild the index and stale-byte count, and readies a fresh
// active segment for appends.
func Open(ctx context.Context, config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, kvserrors.NewValidationError(
			nil, kvserrors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	segments := segment.New(config.Options.DataDir, config.Logger)
	if err := segments.Ensure(); err != nil {
		return nil, err
	}

	ids, err := segments.Discover()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		options:  config.Options,
		log:      config.Logger,
		segments: segments,
		readers:  make(map[uint64]*posio.Reader, len(ids)+1),
		index:    index.New(),
	}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		reader, err := segments.OpenReader(id)
		if err != nil {
			return nil, err
		}
		e.readers[id] = reader

		if err := e.replaySegment(id, reader); err != nil {
			return nil, err
		}
	}

	var activeID uint64 = 1
	if len(ids) > 0 {
		activeID = ids[len(ids)-1] + 1
	}

	writer, reader, err := segments.Create(activeID)
	if err != nil {
		return nil, err
	}
	e.writer = writer
	e.readers[activeID] = reader
	e.activeID = activeID

	e.log.Infow("engine opened", "dataDir", config.Options.DataDir, "activeSegment", activeID, "recoveredSegments", len(ids))
	return e, nil
}

// replaySegment decodes every record in segment id from reader (positioned
// at its start) and folds it into the index and stale-byte count.
func (e *Engine) replaySegment(id uint64, reader *posio.Reader) error {
	dec := record.NewDecoder(reader)
	var pos int64

	for {
		rec, nextPos, err := dec.Next()
		if err != nil {
			if stdErrors.Is(err, io.EOF) {
				break
			}
			return err
		}

		p := pointer.New(id, pos, nextPos)
		switch rec.Kind {
		case record.KindSet:
			if prev, existed := e.index.Set(rec.Key, p); existed {
				e.staleBytes += uint64(prev.Len)
			}
		case record.KindRemove:
			if prev, existed := e.index.Remove(rec.Key); existed {
				e.staleBytes += uint64(prev.Len)
			}
			e.staleBytes += uint64(nextPos - pos)
		}

		pos = nextPos
	}

	return nil
}

// Close releases every open file handle; closing the active segment's
// writer flushes whatever its buffer still holds.
func (e *Engine) Close() error {
	if e.closed {
		return closedEngineError()
	}
	e.closed = true

	var firstErr error
	for id, reader := range e.readers {
		if err := reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.readers, id)
	}
	if err := e.writer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	e.log.Infow("engine closed")
	return firstErr
}
