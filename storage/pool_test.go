// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/facetmarket/facetd/storage"
)

// main pool test
func TestPoolPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	elements := makeElements([]stringElement{
		{"key-one", "data-one"},
		{"key-two", "data-two"},
		{"key-three", "data-three"},
	})
	commitElements(t, storage.Pool.TestData, elements)

	for _, e := range elements {
		value := storage.Pool.TestData.Get(e.Key)
		if !bytes.Equal(value, e.Value) {
			t.Errorf("get %q: actual: %q  expected: %q", e.Key, value, e.Value)
		}
		if !storage.Pool.TestData.Has(e.Key) {
			t.Errorf("has %q: missing", e.Key)
		}
	}

	if storage.Pool.TestData.Get([]byte("/nonexistent")) != nil {
		t.Errorf("nonexistent key returned data")
	}

	// delete one key
	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	storage.Pool.TestData.Delete([]byte("key-two"))
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}

	if storage.Pool.TestData.Get([]byte("key-two")) != nil {
		t.Errorf("deleted key returned data")
	}
	if storage.Pool.TestData.Has([]byte("key-two")) {
		t.Errorf("deleted key still present")
	}
}

func TestPoolGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	storage.Pool.TestData.PutN([]byte("counter"), 42)
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}

	n, found := storage.Pool.TestData.GetN([]byte("counter"))
	if !found {
		t.Fatalf("counter record missing")
	}
	if n != 42 {
		t.Errorf("counter: actual: %d  expected: 42", n)
	}

	_, found = storage.Pool.TestData.GetN([]byte("missing"))
	if found {
		t.Errorf("missing counter returned a value")
	}
}

func TestPoolCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	elements := makeElements([]stringElement{
		{"key-1", "data-1"},
		{"key-2", "data-2"},
		{"key-3", "data-3"},
		{"key-4", "data-4"},
		{"key-5", "data-5"},
	})
	commitElements(t, storage.Pool.TestData, elements)

	cursor := storage.Pool.TestData.NewFetchCursor()

	first, err := cursor.Fetch(2)
	if err != nil {
		t.Fatalf("fetch error: %s", err)
	}
	if len(first) != 2 {
		t.Fatalf("fetch count: actual: %d  expected: 2", len(first))
	}

	rest, err := cursor.Fetch(10)
	if err != nil {
		t.Fatalf("fetch error: %s", err)
	}
	if len(rest) != 3 {
		t.Fatalf("fetch count: actual: %d  expected: 3", len(rest))
	}

	all := append(first, rest...)
	for i, e := range elements {
		if !bytes.Equal(all[i].Key, e.Key) {
			t.Errorf("%d: key: actual: %q  expected: %q", i, all[i].Key, e.Key)
		}
		if !bytes.Equal(all[i].Value, e.Value) {
			t.Errorf("%d: value: actual: %q  expected: %q", i, all[i].Value, e.Value)
		}
	}

	// cursor must not stray into another pool
	other := makeElements([]stringElement{
		{"key-9", "other-data"},
	})
	commitElements(t, storage.Pool.Balances, other)

	cursor = storage.Pool.TestData.NewFetchCursor()
	all, err = cursor.Fetch(100)
	if err != nil {
		t.Fatalf("fetch error: %s", err)
	}
	if len(all) != len(elements) {
		t.Errorf("fetch across pools: actual: %d  expected: %d", len(all), len(elements))
	}
}

func TestPoolLastElement(t *testing.T) {
	setup(t)
	defer teardown(t)

	elements := makeElements([]stringElement{
		{"key-a", "data-a"},
		{"key-b", "data-b"},
		{"key-c", "data-c"},
	})
	commitElements(t, storage.Pool.TestData, elements)

	last, found := storage.Pool.TestData.LastElement()
	if !found {
		t.Fatalf("no last element")
	}
	if !bytes.Equal(last.Key, []byte("key-c")) {
		t.Errorf("last key: actual: %q  expected: %q", last.Key, "key-c")
	}

	_, found = storage.Pool.Balances.LastElement()
	if found {
		t.Errorf("empty pool returned a last element")
	}
}
