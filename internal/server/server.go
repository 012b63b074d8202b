// Package server implements the TCP front end for a kvengine.Engine: it
// accepts connections, serializes every engine call behind one mutex
// (preserving the engine's single-writer, non-reentrant contract), and
// translates engine results and errors into wire responses.
package server

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/LuisBarroso37/kvs/internal/wire"
	"github.com/LuisBarroso37/kvs/pkg/kvengine"
	"go.uber.org/zap"
)

// Compactor is satisfied by any engine that can be told to compact
// unconditionally, independent of its own stale-byte threshold.
type Compactor interface {
	Compact() error
}

// Server accepts kvs wire connections and serves them against one engine.
type Server struct {
	engine kvengine.Engine
	log    *zap.SugaredLogger

	mu sync.Mutex

	compactInterval time.Duration
}

// New returns a Server fronting engine. compactInterval, when non-zero,
// starts a background goroutine (once Serve is called) that calls Compact
// on that cadence if engine implements Compactor.
func New(engine kvengine.Engine, log *zap.SugaredLogger, compactInterval time.Duration) *Server {
	return &Server{engine: engine, log: log, compactInterval: compactInterval}
}

// Serve accepts connections from listener until ctx is canceled or Accept
// fails. Each connection is handled in its own goroutine; engine access
// across all of them is serialized by s.mu.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s.compactInterval > 0 {
		if compactor, ok := s.engine.(Compactor); ok {
			go s.runCompactionSweep(ctx, compactor)
		} else {
			s.log.Warnw("compact interval configured but engine does not support forced compaction")
		}
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) runCompactionSweep(ctx context.Context, compactor Compactor) {
	ticker := time.NewTicker(s.compactInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			err := compactor.Compact()
			s.mu.Unlock()
			if err != nil {
				s.log.Errorw("scheduled compaction failed", "error", err)
			}
		}
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr().String()
	s.log.Infow("connection opened", "remote", remote)

	dec := wire.NewDecoder(conn)
	enc := wire.NewEncoder(conn)

	for {
		req, err := dec.DecodeRequest()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.log.Errorw("failed to decode request", "remote", remote, "error", err)
			}
			s.log.Infow("connection closed", "remote", remote)
			return
		}

		resp := s.handleRequest(req)
		if err := enc.EncodeResponse(resp); err != nil {
			s.log.Errorw("failed to write response", "remote", remote, "error", err)
			return
		}
	}
}

func (s *Server) handleRequest(req wire.Request) wire.Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Kind {
	case wire.KindGet:
		value, ok, err := s.engine.Get(req.Key)
		if err != nil {
			return wire.ErrorResponse(err.Error())
		}
		if !ok {
			return wire.KeyNotFoundResponse()
		}
		return wire.ValueResponse(value)

	case wire.KindSet:
		if err := s.engine.Set(req.Key, req.Value); err != nil {
			return wire.ErrorResponse(err.Error())
		}
		return wire.SuccessResponse()

	case wire.KindRemove:
		if err := s.engine.Remove(req.Key); err != nil {
			if isKeyNotFound(err) {
				return wire.KeyNotFoundResponse()
			}
			return wire.ErrorResponse(err.Error())
		}
		return wire.SuccessResponse()

	default:
		return wire.ErrorResponse("unknown request kind")
	}
}
