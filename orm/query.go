package orm

import (
	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// Register exposes this bucket under the query router. You can define a
// name here for queries, which may differ from the bucket name used to
// prefix the data.
func (b Bucket) Register(name string, r swapchain.QueryRouter) {
	if name == "" {
		name = b.name
	}
	r.Register("/"+name, b)
}

// Query handles queries from the QueryRouter. The empty modifier looks
// up one exact key, "prefix" returns all models under a key prefix.
func (b Bucket) Query(db swapchain.ReadOnlyKVStore, mod string, data []byte) ([]swapchain.Model, error) {
	switch mod {
	case swapchain.KeyQueryMod:
		key := b.DBKey(data)
		value := db.Get(key)
		if value == nil {
			return nil, nil
		}
		return []swapchain.Model{{Key: key, Value: value}}, nil
	case swapchain.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data)), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query modifier: %q", mod)
	}
}

var _ swapchain.QueryHandler = Bucket{}

// queryPrefix returns all models whose key starts with the prefix.
func queryPrefix(db swapchain.ReadOnlyKVStore, prefix []byte) []swapchain.Model {
	itr := db.Iterator(prefix, prefixEnd(prefix))
	return ConsumeIterator(itr)
}

// prefixEnd returns the lowest key above every key starting with the
// prefix, or nil (unbounded) if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// ConsumeIterator reads all remaining data into a slice and closes the
// iterator.
func ConsumeIterator(itr swapchain.Iterator) []swapchain.Model {
	defer itr.Close()

	var res []swapchain.Model
	for ; itr.Valid(); itr.Next() {
		res = append(res, swapchain.Model{
			Key:   append([]byte(nil), itr.Key()...),
			Value: append([]byte(nil), itr.Value()...),
		})
	}
	return res
}
