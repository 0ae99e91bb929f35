/*
Package store provides the in-memory KVStore implementations used by
the framework: a btree-backed cache-wrap that buffers writes until they
are committed or discarded, and MemStore, a stand-alone instance for
tests. The persistent, disk-backed store lives in store/pebble.
*/
package store
