/*
Package orm provides a thin db wrapper that breaks the state space into
prefixed sections called buckets. Each bucket contains only one type of
object, keyed by a caller-provided identity — here always a derived
address, so lookups by any party remain trustless and need no index
service.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a generic holder that stores data under a common prefix.
//
// This is a generic building block that should be embedded in a
// type-safe wrapper to ensure all data is of the same type.
type Bucket struct {
	name   string
	prefix []byte
	proto  Cloneable
}

// NewBucket creates a bucket to store data. The proto is cloned for
// every entity parsed out of the store.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket name: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the bucket name, the prefix under which all data is
// stored.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix. We copy
// into a new array rather than use append, so consecutive calls never
// overwrite the same backing array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns one element, or nil (without error) if it is absent.
func (b Bucket) Get(db swapchain.ReadOnlyKVStore, key []byte) (Object, error) {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data and reconstructs the object this
// bucket would return from Get. Exposed mainly as a test helper.
func (b Bucket) Parse(key, value []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(value); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "parse %s: %v", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes the model. It must be of the same type as
// the bucket proto.
func (b Bucket) Save(db swapchain.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid object")
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal object")
	}
	db.Set(b.DBKey(model.Key()), bz)
	return nil
}

// Delete removes the value at a key. Deleting an absent key is a noop.
func (b Bucket) Delete(db swapchain.KVStore, key []byte) error {
	db.Delete(b.DBKey(key))
	return nil
}

// Has returns true if an object is stored under this key.
func (b Bucket) Has(db swapchain.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}
