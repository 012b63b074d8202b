package server

import (
	stdErrors "errors"

	"github.com/LuisBarroso37/kvs/pkg/boltengine"
	"github.com/LuisBarroso37/kvs/pkg/kvs"
)

// isKeyNotFound reports whether err is the "key not found" sentinel of
// either engine implementation, so the server can translate it into a
// KeyNotFound wire response regardless of which backend is in use.
func isKeyNotFound(err error) bool {
	return stdErrors.Is(err, kvs.ErrKeyNotFound) || stdErrors.Is(err, boltengine.ErrKeyNotFound)
}
