// Package index maintains the in-memory, key-ordered map from key to the
// pointer.Pointer describing where that key's live record lives in the log.
// It is the engine's single source of truth for "is this key live, and if
// so where" — every Get, Set, Remove, and compaction pass goes through it.
//
// Compaction needs to walk live entries in a stable order while rewriting
// their pointers in place, which a plain hash map cannot do without an
// extra sort step on every pass — so the ordered structure here is a
// github.com/google/btree BTreeG keyed by string, giving ordered iteration
// for free.
package index

import "github.com/LuisBarroso37/kvs/internal/pointer"

// entry is the element stored in the underlying B-tree: a key paired with
// the pointer it currently resolves to.
type entry struct {
	key     string
	pointer pointer.Pointer
}

func less(a, b entry) bool {
	return a.key < b.key
}
