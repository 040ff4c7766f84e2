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

// the same tag must derive the same prefix on every call
func TestNamespaceDeterminism(t *testing.T) {
	a := storage.NamespacePrefix("market.listing")
	b := storage.NamespacePrefix("market.listing")
	if !bytes.Equal(a, b) {
		t.Fatalf("prefix not deterministic: %x != %x", a, b)
	}
	if len(a) != storage.NamespaceSize {
		t.Fatalf("prefix length: actual: %d  expected: %d", len(a), storage.NamespaceSize)
	}
}

// distinct tags must never produce the same prefix
func TestNamespaceDisjoint(t *testing.T) {
	tags := []string{
		"diamond.owner",
		"diamond.selector",
		"diamond.module",
		"diamond.modulelist",
		"market.listing",
		"market.index",
		"market.seller",
		"market.stats",
		"market.config",
		"ledger.balance",
		"ledger.token.owner",
		"ledger.token.approval",
		"testing.data",
	}

	seen := make(map[string]string)
	for _, tag := range tags {
		prefix := string(storage.NamespacePrefix(tag))
		if previous, ok := seen[prefix]; ok {
			t.Errorf("prefix collision between %q and %q", previous, tag)
		}
		seen[prefix] = tag
	}
}

// keys from different pools must stay in their own region
func TestNamespaceIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	storage.Pool.TestData.Put(key, []byte("test-data-value"))
	storage.Pool.Balances.Put(key, []byte("balance-value"))
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}

	td := storage.Pool.TestData.Get(key)
	bal := storage.Pool.Balances.Get(key)

	if !bytes.Equal(td, []byte("test-data-value")) {
		t.Errorf("test data pool: actual: %q", td)
	}
	if !bytes.Equal(bal, []byte("balance-value")) {
		t.Errorf("balance pool: actual: %q", bal)
	}
}
