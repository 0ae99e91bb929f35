package app

import (
	"bytes"
	"testing"

	"github.com/gorswap/swapchain"
	"github.com/gorswap/swapchain/errors"
)

func TestResultSetRoundTrip(t *testing.T) {
	cases := map[string]struct {
		results [][]byte
	}{
		"empty set":     {results: nil},
		"single result": {results: [][]byte{[]byte("foo")}},
		"empty entry":   {results: [][]byte{[]byte("foo"), {}, []byte("bar")}},
		"binary data":   {results: [][]byte{{0, 1, 2, 0xff}, {0}}},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			in := ResultSet{Results: tc.results}
			bz, err := in.Marshal()
			if err != nil {
				t.Fatalf("marshal: %+v", err)
			}
			var out ResultSet
			if err := out.Unmarshal(bz); err != nil {
				t.Fatalf("unmarshal: %+v", err)
			}
			if len(out.Results) != len(tc.results) {
				t.Fatalf("want %d results, got %d", len(tc.results), len(out.Results))
			}
			for i := range tc.results {
				if !bytes.Equal(out.Results[i], tc.results[i]) {
					t.Fatalf("result %d: want %X, got %X", i, tc.results[i], out.Results[i])
				}
			}
		})
	}
}

func TestResultSetUnmarshalTruncated(t *testing.T) {
	cases := map[string][]byte{
		"cut length prefix": {0, 0, 1},
		"cut payload":       {0, 0, 0, 5, 'a', 'b'},
	}
	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			var rs ResultSet
			if err := rs.Unmarshal(raw); !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}

func TestJoinResults(t *testing.T) {
	models := []swapchain.Model{
		{Key: []byte("k1"), Value: []byte("v1")},
		{Key: []byte("k2"), Value: []byte("v2")},
	}
	keys := ResultsFromKeys(models)
	values := ResultsFromValues(models)

	joined, err := JoinResults(keys, values)
	if err != nil {
		t.Fatalf("join: %+v", err)
	}
	if len(joined) != len(models) {
		t.Fatalf("want %d models, got %d", len(models), len(joined))
	}
	for i := range models {
		if !bytes.Equal(joined[i].Key, models[i].Key) || !bytes.Equal(joined[i].Value, models[i].Value) {
			t.Fatalf("model %d does not match: %v", i, joined[i])
		}
	}

	if _, err := JoinResults(keys, &ResultSet{}); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error on size mismatch, got %+v", err)
	}
}

func TestUnmarshalOneResult(t *testing.T) {
	// ResultSet doubles as the Persistent target here, so the first
	// entry must itself be a valid encoding.
	inner, err := (&ResultSet{Results: [][]byte{[]byte("payload")}}).Marshal()
	if err != nil {
		t.Fatalf("marshal inner: %+v", err)
	}
	outer, err := (&ResultSet{Results: [][]byte{inner}}).Marshal()
	if err != nil {
		t.Fatalf("marshal outer: %+v", err)
	}
	var one ResultSet
	if err := UnmarshalOneResult(outer, &one); err != nil {
		t.Fatalf("unmarshal one: %+v", err)
	}
	if len(one.Results) != 1 || !bytes.Equal(one.Results[0], []byte("payload")) {
		t.Fatalf("unexpected result: %v", one.Results)
	}

	// An empty set leaves the target untouched.
	prev := one
	if err := UnmarshalOneResult(nil, &one); err != nil {
		t.Fatalf("unmarshal empty: %+v", err)
	}
	if len(one.Results) != len(prev.Results) {
		t.Fatal("empty set must be a noop")
	}
}
