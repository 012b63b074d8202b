// Package kvengine defines the abstract contract every key-value engine
// implementation satisfies: the log-structured engine in pkg/kvs and the
// bolt-backed alternative in pkg/boltengine both implement it, and the TCP
// server (internal/server) is written only against this interface so it
// can serve either one interchangeably.
package kvengine

// Engine is the minimal contract a key-value storage backend must satisfy.
// Remove of an absent key must signal an error every implementation's
// callers can recognize as "not found" — see each implementation's
// documentation for its sentinel.
type Engine interface {
	// Get returns the value for key and true if it is live, or "" and false
	// if the key has no entry.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Implementations must fail if key is absent.
	Remove(key string) error

	// Close releases resources held by the engine.
	Close() error
}
