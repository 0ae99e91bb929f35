package store

import (
	"sort"

	"github.com/gorswap/swapchain"
)

// Model groups a key-value pair, the unit returned by iterators.
type Model = swapchain.Model

// sliceIterator wraps an in-memory, pre-sorted slice of models.
type sliceIterator struct {
	data []Model
	idx  int
}

var _ swapchain.Iterator = (*sliceIterator)(nil)

// NewSliceIterator creates a new Iterator over the given pairs. The
// input is sorted by key before use, so any order may be passed in.
func NewSliceIterator(data []Model) swapchain.Iterator {
	sort.Slice(data, func(i, j int) bool {
		return string(data[i].Key) < string(data[j].Key)
	})
	return &sliceIterator{data: data}
}

func (s *sliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

func (s *sliceIterator) Next() {
	if !s.Valid() {
		panic("next called on an invalid iterator")
	}
	s.idx++
}

func (s *sliceIterator) Key() []byte {
	if !s.Valid() {
		panic("key called on an invalid iterator")
	}
	return s.data[s.idx].Key
}

func (s *sliceIterator) Value() []byte {
	if !s.Valid() {
		panic("value called on an invalid iterator")
	}
	return s.data[s.idx].Value
}

func (s *sliceIterator) Close() {
	s.data = nil
	s.idx = 0
}
