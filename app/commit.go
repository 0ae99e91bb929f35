package app

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// CommitStore maintains separate CacheWraps over a persistent store for
// Deliver and Check, and flushes the deliver state on Commit.
type CommitStore struct {
	committed swapchain.CommitKVStore
	deliver   swapchain.KVCacheWrap
	check     swapchain.KVCacheWrap
}

// NewCommitStore sets up the deliver and check caches over the given
// persistent store.
func NewCommitStore(db swapchain.CommitKVStore) *CommitStore {
	return &CommitStore{
		committed: db,
		deliver:   db.CacheWrap(),
		check:     db.CacheWrap(),
	}
}

// CommitInfo returns the identifier of the last committed state.
func (cs *CommitStore) CommitInfo() (swapchain.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes the deliver cache to the underlying store and commits
// it to disk as the given version, then regenerates fresh deliver and
// check caches.
func (cs *CommitStore) Commit(version int64) (swapchain.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return swapchain.CommitID{}, errors.Wrap(err, "flush deliver state")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit(version)
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}

	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
	return id, nil
}

// CheckStore returns the store implementation to be used during the
// checking phase.
func (cs *CommitStore) CheckStore() swapchain.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the store implementation to be used during the
// delivery phase.
func (cs *CommitStore) DeliverStore() swapchain.CacheableKVStore {
	return cs.deliver
}

// QueryStore returns a read-only view of the last committed state,
// excluding any in-flight block writes.
func (cs *CommitStore) QueryStore() swapchain.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// chainIDKey is where the chain id is stored. The "_s:" prefix is
// reserved for internal data and never used by buckets.
const chainIDKey = "_s:chainID"

func loadChainID(kv swapchain.KVStore) string {
	return string(kv.Get([]byte(chainIDKey)))
}

// saveChainID stores a chain id in the kv store. Errors if already set
// or invalid.
func saveChainID(kv swapchain.KVStore, chainID string) error {
	if !swapchain.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	k := []byte(chainIDKey)
	if kv.Has(k) {
		return errors.Wrap(errors.ErrState, "chain id cannot change after genesis")
	}
	kv.Set(k, []byte(chainID))
	return nil
}
