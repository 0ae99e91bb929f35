package swapchain

// ReadOnlyKVStore is the subset of KVStore needed for queries and
// read-only helpers.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) []byte

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) bool

	// Iterator over a domain of keys in ascending order. End is
	// exclusive. Start must be less than end, or the Iterator is
	// invalid.
	// CONTRACT: no writes may happen within a domain while an
	// iterator exists over it.
	Iterator(start, end []byte) Iterator
}

// KVStore is a simple interface to get/set data.
//
// All backing stores must implement this interface. They may implement
// other methods as well, but at least these are required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte)

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte)
}

// Iterator allows access to a set of items within a range of keys.
//
//	var it Iterator = ...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//	    k, v := it.Key(), it.Value()
//	}
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key.
	// Panics if Valid returns false.
	Next()

	// Key returns the key of the cursor. Panics if Valid is false.
	// CONTRACT: key is read-only.
	Key() []byte

	// Value returns the value of the cursor. Panics if Valid is false.
	// CONTRACT: value is read-only.
	Value() []byte

	// Close releases the Iterator.
	Close()
}

// CacheableKVStore is a KVStore that supports grouping temporary writes
// which may be committed or discarded together, like Postgres
// SAVEPOINT / ROLLBACK TO SAVEPOINT. This is the mechanism that makes
// every state transition atomic: either fully applied or fully
// rejected, with no partial intermediate state observable.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch-pad of uncommitted data visible to all
// queries. At the end, call Write to flush the cached data into the
// parent, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows recursive wrapping.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// CommitID identifies a committed application state: the block height
// it was committed at and the hash reported to the consensus engine.
type CommitID struct {
	Version int64
	Hash    []byte
}

// CommitKVStore is a store that can persist state, load it on start up
// and report the last committed version.
type CommitKVStore interface {
	CacheableKVStore

	// LatestVersion returns the identifier of the last committed
	// block, a zero Version for a fresh database.
	LatestVersion() (CommitID, error)

	// Commit flushes all dirty state to disk as the given version and
	// returns the identifier of the committed state.
	Commit(version int64) (CommitID, error)

	// Close releases the backing resources.
	Close() error
}
