package orm

import (
	"bytes"
	"testing"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
	"github.com/gorswap/swapchain/store"
)

func TestBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := newMemoBucket()

	save := func(key, text string) {
		t.Helper()
		if err := b.Save(db, NewSimpleObj([]byte(key), &memo{Text: text})); err != nil {
			t.Fatalf("save %q: %+v", key, err)
		}
	}
	save("alice", "hi")
	save("alicia", "hola")
	save("bob", "yo")

	// Exact key lookup returns one model with the full db key.
	models, err := b.Query(db, swapchain.KeyQueryMod, []byte("alice"))
	if err != nil {
		t.Fatalf("key query: %+v", err)
	}
	if len(models) != 1 {
		t.Fatalf("want 1 model, got %d", len(models))
	}
	if !bytes.Equal(models[0].Key, []byte("memo:alice")) {
		t.Fatalf("unexpected key: %q", models[0].Key)
	}
	if !bytes.Equal(models[0].Value, []byte("hi")) {
		t.Fatalf("unexpected value: %q", models[0].Value)
	}

	// A miss is empty, not an error.
	models, err = b.Query(db, swapchain.KeyQueryMod, []byte("carl"))
	if err != nil {
		t.Fatalf("key query: %+v", err)
	}
	if len(models) != 0 {
		t.Fatalf("want no models, got %d", len(models))
	}

	// Prefix queries return all matches in key order.
	models, err = b.Query(db, swapchain.PrefixQueryMod, []byte("ali"))
	if err != nil {
		t.Fatalf("prefix query: %+v", err)
	}
	if len(models) != 2 {
		t.Fatalf("want 2 models, got %d", len(models))
	}
	if !bytes.Equal(models[0].Key, []byte("memo:alice")) {
		t.Fatalf("unexpected first key: %q", models[0].Key)
	}

	// An empty prefix walks the whole bucket but not its neighbors.
	db.Set([]byte("nemo:intruder"), []byte("x"))
	models, err = b.Query(db, swapchain.PrefixQueryMod, nil)
	if err != nil {
		t.Fatalf("prefix query: %+v", err)
	}
	if len(models) != 3 {
		t.Fatalf("want 3 models, got %d", len(models))
	}

	if _, err := b.Query(db, "range", []byte("alice")); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple increment":  {prefix: []byte{1, 2, 3}, want: []byte{1, 2, 4}},
		"rollover":          {prefix: []byte{1, 0xff}, want: []byte{2}},
		"all maxed":         {prefix: []byte{0xff, 0xff}, want: nil},
		"unbounded for nil": {prefix: nil, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := prefixEnd(tc.prefix); !bytes.Equal(got, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}
