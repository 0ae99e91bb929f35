package app

import (
	"bytes"
	"testing"

	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/store"
	"github.com/gorswap/swapchain/store/pebble"
)

func TestCommitStoreIsolation(t *testing.T) {
	db, err := pebble.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %+v", err)
	}
	defer db.Close()

	cs := NewCommitStore(db)

	// Deliver writes stay invisible to check and query until commit.
	cs.DeliverStore().Set([]byte("k"), []byte("v"))
	if cs.CheckStore().Has([]byte("k")) {
		t.Fatal("deliver write leaked into check state")
	}
	if cs.QueryStore().Get([]byte("k")) != nil {
		t.Fatal("deliver write leaked into query state")
	}

	// Check writes are scratch state and never hit disk.
	cs.CheckStore().Set([]byte("scratch"), []byte("x"))

	id, err := cs.Commit(1)
	if err != nil {
		t.Fatalf("commit: %+v", err)
	}
	if id.Version != 1 {
		t.Fatalf("want version 1, got %d", id.Version)
	}
	if len(id.Hash) == 0 {
		t.Fatal("commit id must carry a hash")
	}

	if got := cs.QueryStore().Get([]byte("k")); !bytes.Equal(got, []byte("v")) {
		t.Fatalf("committed value not visible: %q", got)
	}
	if !cs.CheckStore().Has([]byte("k")) {
		t.Fatal("fresh check state must see committed data")
	}
	if cs.CheckStore().Has([]byte("scratch")) {
		t.Fatal("check scratch state must be discarded on commit")
	}

	info, err := cs.CommitInfo()
	if err != nil {
		t.Fatalf("commit info: %+v", err)
	}
	if info.Version != id.Version || !bytes.Equal(info.Hash, id.Hash) {
		t.Fatalf("commit info %v does not match commit id %v", info, id)
	}
}

func TestChainID(t *testing.T) {
	kv := store.MemStore()

	if got := loadChainID(kv); got != "" {
		t.Fatalf("fresh store must have no chain id, got %q", got)
	}

	if err := saveChainID(kv, "a"); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error for invalid chain id, got %+v", err)
	}
	if err := saveChainID(kv, "test-chain-QmLpz"); err != nil {
		t.Fatalf("save: %+v", err)
	}
	if got := loadChainID(kv); got != "test-chain-QmLpz" {
		t.Fatalf("unexpected chain id: %q", got)
	}

	if err := saveChainID(kv, "other-chain"); !errors.ErrState.Is(err) {
		t.Fatalf("chain id must be write-once, got %+v", err)
	}
}
