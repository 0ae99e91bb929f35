package orm

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/x"
)

// Object is what is stored in a bucket. Key is joined with the bucket
// prefix to form the full db key, Value is the persisted model.
type Object interface {
	Keyed
	Cloneable

	// Validate returns an error if the object is not in a valid state
	// to save to the db (field missing, out of range, ...).
	x.Validater

	Value() swapchain.Persistent
}

// Reader is an interface that allows reading objects from the db.
type Reader interface {
	Get(db swapchain.ReadOnlyKVStore, key []byte) (Object, error)
}

// Keyed is anything that can identify itself.
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// Model is the data piece persisted inside an Object: anything that can
// serialize itself and validate its own content.
type Model interface {
	swapchain.Persistent
	x.Validater
}

// CloneableData is an intelligent Model that can be embedded in a
// SimpleObj to handle most of the boilerplate.
type CloneableData interface {
	Model
	Copy() CloneableData
}
