package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/store"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    swapchain.Decorator // decorator at savepoint
		handler swapchain.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		written [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: &writeHandler{key: nk, value: nv, err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one written": {
			save:    NewSavepoint().OnCheck(),
			handler: &writeHandler{key: nk, value: nv, err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one written": {
			save:    NewSavepoint().OnDeliver(),
			handler: &writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double-activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint on check doesn't affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &writeHandler{key: nk, value: nv, err: derr},
			isError: true,
			written: [][]byte{ok, nk},
		},
		"don't rollback when success returned": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &writeHandler{key: nk, value: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			kv.Set(ok, ov)

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}

			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				assert.True(t, kv.Has(k), "%x", k)
			}
			for _, k := range tc.missing {
				assert.False(t, kv.Has(k), "%x", k)
			}
		})
	}
}

// writeHandler writes the key, value pair and returns the error (may be
// nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ swapchain.Handler = (*writeHandler)(nil)

func (h *writeHandler) Check(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.CheckResult, error) {
	store.Set(h.key, h.value)
	return &swapchain.CheckResult{}, h.err
}

func (h *writeHandler) Deliver(ctx swapchain.Context, store swapchain.KVStore, tx swapchain.Tx) (*swapchain.DeliverResult, error) {
	store.Set(h.key, h.value)
	return &swapchain.DeliverResult{}, h.err
}
