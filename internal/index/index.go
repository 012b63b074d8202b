// Package index provides the in-memory, ordered key-to-pointer table for
// the kvs engine: hold every key in memory, keep per-entry metadata
// minimal, let the disk hold the values, and back the map with a B-tree so
// compaction can walk live entries in key order without a separate sort
// pass.
package index

import (
	"sync"

	"github.com/LuisBarroso37/kvs/internal/pointer"
	"github.com/google/btree"
)

// Index is the engine's in-memory map from key to the pointer describing
// where that key's live record sits in the log. All methods are safe for
// concurrent use.
type Index struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[entry]
}

// New returns an empty Index.
func New() *Index {
	return &Index{tree: btree.NewG(32, less)}
}

// Get returns the pointer currently associated with key, if any.
func (ix *Index) Get(key string) (pointer.Pointer, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	found, ok := ix.tree.Get(entry{key: key})
	return found.pointer, ok
}

// Set associates key with p, returning the pointer key previously resolved
// to, if any. The engine uses the returned pointer and bool to count the
// displaced record's bytes as stale.
func (ix *Index) Set(key string, p pointer.Pointer) (pointer.Pointer, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	previous, existed := ix.tree.ReplaceOrInsert(entry{key: key, pointer: p})
	return previous.pointer, existed
}

// Remove deletes key from the index, returning the pointer it resolved to,
// if it was present.
func (ix *Index) Remove(key string) (pointer.Pointer, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	removed, existed := ix.tree.Delete(entry{key: key})
	return removed.pointer, existed
}

// Len returns the number of live keys in the index.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	return ix.tree.Len()
}

// Ascend walks every entry in ascending key order, calling fn with each
// key and its pointer. Iteration stops early if fn returns false.
//
// fn runs under the index's read lock, so it must not call Set, Remove or
// Update. Compaction uses Ascend to snapshot every live entry once, then
// rewrites each pointer with Update after the walk.
func (ix *Index) Ascend(fn func(key string, p pointer.Pointer) bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	ix.tree.Ascend(func(e entry) bool {
		return fn(e.key, e.pointer)
	})
}

// Update overwrites the pointer stored for an already-live key, used by
// compaction to redirect a key at its new location without changing
// liveness. It is a no-op if key is not present.
func (ix *Index) Update(key string, p pointer.Pointer) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, existed := ix.tree.Get(entry{key: key}); !existed {
		return
	}
	ix.tree.ReplaceOrInsert(entry{key: key, pointer: p})
}
