// Package kvs is the public entry point to the log-structured key-value
// store: Open returns an Instance wrapping the internal engine and exposing
// a small Get/Set/Remove/Compact/Close surface.
package kvs

import (
	"context"

	"github.com/LuisBarroso37/kvs/internal/engine"
	"github.com/LuisBarroso37/kvs/pkg/kvengine"
	"github.com/LuisBarroso37/kvs/pkg/options"
	"go.uber.org/zap"
)

// ErrKeyNotFound is returned by Remove when the key has no live entry.
var ErrKeyNotFound = engine.ErrKeyNotFound

// Instance is a handle to one open data directory.
type Instance struct {
	engine  *engine.Engine
	options *options.Options
}

var _ kvengine.Engine = (*Instance)(nil)

// Open opens (creating if necessary) the data directory named by the
// resulting Options.DataDir, replaying its segments and readying it for
// use.
func Open(ctx context.Context, logger *zap.SugaredLogger, opts ...options.OptionFunc) (*Instance, error) {
	o := options.NewDefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}

	eng, err := engine.Open(ctx, &engine.Config{Options: &o, Logger: logger})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &o}, nil
}

// Get returns the value stored under key, if any.
func (i *Instance) Get(key string) (string, bool, error) {
	return i.engine.Get(key)
}

// Set stores value under key.
func (i *Instance) Set(key, value string) error {
	return i.engine.Set(key, value)
}

// Remove deletes key, returning ErrKeyNotFound if it has no live entry.
func (i *Instance) Remove(key string) error {
	return i.engine.Remove(key)
}

// Compact forces an unconditional compaction, regardless of the current
// stale-byte count.
func (i *Instance) Compact() error {
	return i.engine.Compact()
}

// Close releases the instance's file handles.
func (i *Instance) Close() error {
	return i.engine.Close()
}
