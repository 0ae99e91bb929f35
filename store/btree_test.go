package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreReadWrite(t *testing.T) {
	db := MemStore()

	k, v := []byte("order:abc"), []byte("payload")

	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))

	db.Set(k, v)
	assert.Equal(t, v, db.Get(k))
	assert.True(t, db.Has(k))

	db.Delete(k)
	assert.Nil(t, db.Get(k))
	assert.False(t, db.Has(k))
}

func TestCacheWrapIsolatesWrites(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("b"), []byte("2"))
	cache.Delete([]byte("a"))

	// The cache sees its own writes layered over the parent.
	assert.Nil(t, cache.Get([]byte("a")))
	assert.Equal(t, []byte("2"), cache.Get([]byte("b")))

	// The parent is untouched until Write.
	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Nil(t, db.Get([]byte("b")))

	require.NoError(t, cache.Write())
	assert.Nil(t, db.Get([]byte("a")))
	assert.Equal(t, []byte("2"), db.Get([]byte("b")))
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	db.Set([]byte("a"), []byte("1"))

	cache := db.CacheWrap()
	cache.Set([]byte("a"), []byte("overwritten"))
	cache.Set([]byte("b"), []byte("2"))
	cache.Discard()

	assert.Equal(t, []byte("1"), db.Get([]byte("a")))
	assert.Nil(t, db.Get([]byte("b")))
}

func TestNestedCacheWraps(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	outer.Set([]byte("k"), []byte("outer"))

	inner := outer.CacheWrap()
	inner.Set([]byte("k"), []byte("inner"))
	inner.Discard()
	assert.Equal(t, []byte("outer"), outer.Get([]byte("k")))

	inner = outer.CacheWrap()
	inner.Set([]byte("k"), []byte("inner"))
	require.NoError(t, inner.Write())
	assert.Equal(t, []byte("inner"), outer.Get([]byte("k")))

	// Still nothing in the root store.
	assert.Nil(t, db.Get([]byte("k")))
}

func TestIteratorMergesCacheAndBackingRange(t *testing.T) {
	db := MemStore()
	db.Set([]byte("it:a"), []byte("1"))
	db.Set([]byte("it:c"), []byte("3"))
	db.Set([]byte("other"), []byte("x"))

	cache := db.CacheWrap()
	cache.Set([]byte("it:b"), []byte("2"))
	cache.Delete([]byte("it:c"))

	it := cache.Iterator([]byte("it:"), []byte("it;"))
	defer it.Close()

	var keys, values []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
		values = append(values, string(it.Value()))
	}
	assert.Equal(t, []string{"it:a", "it:b"}, keys)
	assert.Equal(t, []string{"1", "2"}, values)
}

func TestNilKeyPanics(t *testing.T) {
	db := MemStore()
	assert.Panics(t, func() { db.Set(nil, []byte("x")) })
	assert.Panics(t, func() { db.Get(nil) })
	assert.Panics(t, func() { db.Delete(nil) })
}
