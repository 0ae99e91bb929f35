/*
Package pebble implements the persistent CommitKVStore used by the node
on top of cockroachdb/pebble.

The store keeps the last committed version under a metadata key and
fsyncs on Commit only, so a whole block of writes shares one sync
barrier. The commit hash is derived from the committed version; this
store does not maintain a Merkle commitment, so state proofs are not
supported and queries are served from local state only.
*/
package pebble

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cockroachdb/pebble"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/store"
)

// latestVersionKey is the metadata key holding the last committed
// version. The "_s:" prefix is reserved and never used by buckets.
var latestVersionKey = []byte("_s:latest")

// CommitStore is a swapchain.CommitKVStore backed by a pebble database.
type CommitStore struct {
	db *pebble.DB
}

var _ swapchain.CommitKVStore = (*CommitStore)(nil)

// Open opens or creates a pebble database under the given directory.
func Open(dir string) (*CommitStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "open pebble")
	}
	return &CommitStore{db: db}, nil
}

// Get returns nil iff the key doesn't exist. Panics on nil key or on a
// storage failure, as there is no way to handle a broken disk
// gracefully mid-block.
func (s *CommitStore) Get(key []byte) []byte {
	if key == nil {
		panic("nil key is not allowed")
	}
	val, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil
	}
	if err != nil {
		panic(errors.Wrap(err, "pebble get"))
	}
	out := append([]byte(nil), val...)
	if err := closer.Close(); err != nil {
		panic(errors.Wrap(err, "pebble close"))
	}
	return out
}

// Has checks if a key exists.
func (s *CommitStore) Has(key []byte) bool {
	return s.Get(key) != nil
}

// Set writes the key without syncing. Durability is established by the
// next Commit call.
func (s *CommitStore) Set(key, value []byte) {
	if key == nil {
		panic("nil key is not allowed")
	}
	if err := s.db.Set(key, value, pebble.NoSync); err != nil {
		panic(errors.Wrap(err, "pebble set"))
	}
}

// Delete removes the key without syncing.
func (s *CommitStore) Delete(key []byte) {
	if key == nil {
		panic("nil key is not allowed")
	}
	if err := s.db.Delete(key, pebble.NoSync); err != nil {
		panic(errors.Wrap(err, "pebble delete"))
	}
}

// Iterator returns an ascending iterator over the [start, end) domain.
// The snapshot is materialized so callers may write while holding the
// result.
func (s *CommitStore) Iterator(start, end []byte) swapchain.Iterator {
	it, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		panic(errors.Wrap(err, "pebble iterator"))
	}
	var pairs []store.Model
	for it.First(); it.Valid(); it.Next() {
		pairs = append(pairs, store.Model{
			Key:   append([]byte(nil), it.Key()...),
			Value: append([]byte(nil), it.Value()...),
		})
	}
	if err := it.Close(); err != nil {
		panic(errors.Wrap(err, "pebble iterator close"))
	}
	return store.NewSliceIterator(pairs)
}

// CacheWrap branches off a write buffer that can be flushed into this
// store or discarded.
func (s *CommitStore) CacheWrap() swapchain.KVCacheWrap {
	return store.NewBTreeCacheWrap(s)
}

// LatestVersion returns the identifier of the last committed block, a
// zero version for a fresh database.
func (s *CommitStore) LatestVersion() (swapchain.CommitID, error) {
	raw := s.Get(latestVersionKey)
	if raw == nil {
		return swapchain.CommitID{}, nil
	}
	if len(raw) != 8 {
		return swapchain.CommitID{}, errors.Wrapf(errors.ErrState, "corrupted version record: %X", raw)
	}
	return commitID(int64(binary.LittleEndian.Uint64(raw))), nil
}

// Commit persists the version marker with a sync barrier, making all
// writes since the previous Commit durable, and returns the commit
// identifier.
func (s *CommitStore) Commit(version int64) (swapchain.CommitID, error) {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(version))
	if err := s.db.Set(latestVersionKey, raw[:], pebble.Sync); err != nil {
		return swapchain.CommitID{}, errors.Wrap(err, "commit version")
	}
	return commitID(version), nil
}

// commitID derives the commit identifier for a version. The hash covers
// the version only as the store keeps no Merkle commitment over state.
func commitID(version int64) swapchain.CommitID {
	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(version))
	hash := sha256.Sum256(raw[:])
	return swapchain.CommitID{Version: version, Hash: hash[:]}
}

// Close releases the backing database.
func (s *CommitStore) Close() error {
	return s.db.Close()
}
