package app

import (
	"encoding/binary"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

// ResultSet carries 0 to N byte slices through an abci query response.
// Keys and values of matched models travel as two parallel ResultSets
// of the same size.
type ResultSet struct {
	Results [][]byte
}

var _ swapchain.Persistent = (*ResultSet)(nil)

// Marshal encodes every result as a 4-byte big-endian length followed
// by the raw bytes.
func (r *ResultSet) Marshal() ([]byte, error) {
	size := 0
	for _, res := range r.Results {
		size += 4 + len(res)
	}
	out := make([]byte, 0, size)
	var length [4]byte
	for _, res := range r.Results {
		binary.BigEndian.PutUint32(length[:], uint32(len(res)))
		out = append(out, length[:]...)
		out = append(out, res...)
	}
	return out, nil
}

// Unmarshal parses the length-prefixed encoding produced by Marshal.
func (r *ResultSet) Unmarshal(bz []byte) error {
	var results [][]byte
	for len(bz) > 0 {
		if len(bz) < 4 {
			return errors.Wrap(errors.ErrInput, "truncated result set")
		}
		length := int(binary.BigEndian.Uint32(bz[:4]))
		bz = bz[4:]
		if len(bz) < length {
			return errors.Wrap(errors.ErrInput, "truncated result set")
		}
		results = append(results, append([]byte(nil), bz[:length]...))
		bz = bz[length:]
	}
	r.Results = results
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys given a set of
// models.
func ResultsFromKeys(models []swapchain.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of
// models.
func ResultsFromValues(models []swapchain.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes
// them a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]swapchain.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "mismatched result set sizes: %d != %d", len(kref), len(vref))
	}
	mods := make([]swapchain.Model, len(kref))
	for i := range mods {
		mods[i] = swapchain.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult parses a ResultSet and, if it is not empty,
// unmarshals the first result into obj. A noop on an empty set.
func UnmarshalOneResult(bz []byte, obj swapchain.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return obj.Unmarshal(res.Results[0])
}
