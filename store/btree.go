package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/gorswap/swapchain"
)

// item is a single buffered write. A nil value together with the delete
// flag marks a pending deletion of the backing key.
type item struct {
	key    []byte
	value  []byte
	delete bool
}

func (i item) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(item).key) < 0
}

// BTreeCacheable adds a btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	swapchain.KVStore
}

var _ swapchain.CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache that can later be written to this store, or
// rolled back.
func (b BTreeCacheable) CacheWrap() swapchain.KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore)
}

// EmptyKVStore never holds any data and silently ignores all writes.
// It serves as the backing layer of MemStore.
type EmptyKVStore struct{}

var _ swapchain.KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) []byte { return nil }

func (EmptyKVStore) Has(key []byte) bool { return false }

func (EmptyKVStore) Set(key, value []byte) {}

func (EmptyKVStore) Delete(key []byte) {}

func (EmptyKVStore) Iterator(start, end []byte) swapchain.Iterator {
	return NewSliceIterator(nil)
}

// MemStore returns a simple implementation useful for tests. There is
// no persistence here.
func MemStore() swapchain.CacheableKVStore {
	return NewBTreeCacheWrap(EmptyKVStore{})
}

// BTreeCacheWrap places a btree write buffer over a KVStore. Reads
// consult the buffer first and fall back to the backing store. Write
// flushes the buffer into the backing store, Discard drops it.
type BTreeCacheWrap struct {
	bt   *btree.BTree
	back swapchain.KVStore
}

var _ swapchain.KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a btree cache around the given store.
func NewBTreeCacheWrap(back swapchain.KVStore) BTreeCacheWrap {
	return BTreeCacheWrap{
		bt:   btree.New(2),
		back: back,
	}
}

// CacheWrap layers another cache on top of this one.
func (b BTreeCacheWrap) CacheWrap() swapchain.KVCacheWrap {
	return NewBTreeCacheWrap(b)
}

// Write syncs all buffered writes with the underlying store and cleans
// up the buffer.
func (b BTreeCacheWrap) Write() error {
	b.bt.Ascend(func(bi btree.Item) bool {
		it := bi.(item)
		if it.delete {
			b.back.Delete(it.key)
		} else {
			b.back.Set(it.key, it.value)
		}
		return true
	})
	b.Discard()
	return nil
}

// Discard invalidates this CacheWrap and releases all buffered data.
func (b BTreeCacheWrap) Discard() {
	b.bt.Clear(false)
}

// Set buffers the write.
func (b BTreeCacheWrap) Set(key, value []byte) {
	if key == nil {
		panic("nil key is not allowed")
	}
	b.bt.ReplaceOrInsert(item{
		key:   append([]byte(nil), key...),
		value: append([]byte(nil), value...),
	})
}

// Delete buffers the deletion, shadowing any backing value.
func (b BTreeCacheWrap) Delete(key []byte) {
	if key == nil {
		panic("nil key is not allowed")
	}
	b.bt.ReplaceOrInsert(item{
		key:    append([]byte(nil), key...),
		delete: true,
	})
}

// Get reads through the buffer into the backing store.
func (b BTreeCacheWrap) Get(key []byte) []byte {
	if key == nil {
		panic("nil key is not allowed")
	}
	if bi := b.bt.Get(item{key: key}); bi != nil {
		it := bi.(item)
		if it.delete {
			return nil
		}
		return it.value
	}
	return b.back.Get(key)
}

// Has reads through the buffer into the backing store.
func (b BTreeCacheWrap) Has(key []byte) bool {
	if key == nil {
		panic("nil key is not allowed")
	}
	if bi := b.bt.Get(item{key: key}); bi != nil {
		return !bi.(item).delete
	}
	return b.back.Has(key)
}

// Iterator merges the buffered writes with the backing store over the
// requested domain. The merged view is materialized upfront, which
// keeps the semantics simple at the cost of loading the range into
// memory. Ranges in this application are tiny (bucket prefixes).
func (b BTreeCacheWrap) Iterator(start, end []byte) swapchain.Iterator {
	merged := make(map[string][]byte)

	it := b.back.Iterator(start, end)
	for ; it.Valid(); it.Next() {
		merged[string(it.Key())] = append([]byte(nil), it.Value()...)
	}
	it.Close()

	overlay := func(bi btree.Item) bool {
		o := bi.(item)
		if o.delete {
			delete(merged, string(o.key))
		} else {
			merged[string(o.key)] = o.value
		}
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(overlay)
	case start == nil:
		b.bt.AscendLessThan(item{key: end}, overlay)
	case end == nil:
		b.bt.AscendGreaterOrEqual(item{key: start}, overlay)
	default:
		b.bt.AscendRange(item{key: start}, item{key: end}, overlay)
	}

	pairs := make([]Model, 0, len(merged))
	for k, v := range merged {
		pairs = append(pairs, Model{Key: []byte(k), Value: v})
	}
	return NewSliceIterator(pairs)
}
