package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitStoreRoundTrip(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	id, err := db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(0), id.Version)

	db.Set([]byte("wallet:alice"), []byte("10"))
	assert.Equal(t, []byte("10"), db.Get([]byte("wallet:alice")))
	assert.Nil(t, db.Get([]byte("wallet:bob")))

	committed, err := db.Commit(1)
	require.NoError(t, err)
	assert.Len(t, committed.Hash, 32)

	id, err = db.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Version)
	assert.Equal(t, committed.Hash, id.Hash)
}

func TestCommitStoreCacheWrap(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))
	assert.Equal(t, []byte("1"), db.Get([]byte("a")))

	require.NoError(t, cache.Write())
	assert.Nil(t, db.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
}

func TestCommitStoreIterator(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	db.Set([]byte("k:1"), []byte("a"))
	db.Set([]byte("k:2"), []byte("b"))
	db.Set([]byte("l:1"), []byte("c"))

	it := db.Iterator([]byte("k:"), []byte("k;"))
	defer it.Close()

	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	assert.Equal(t, []string{"k:1", "k:2"}, keys)
}
