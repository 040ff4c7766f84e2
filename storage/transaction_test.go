// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"bytes"
	"testing"

	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/storage"
)

// a transaction must observe its own uncommitted writes
func TestTransactionReadsOwnWrites(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}

	storage.Pool.TestData.Put([]byte("pending"), []byte("pending-data"))

	value := storage.Pool.TestData.Get([]byte("pending"))
	if !bytes.Equal(value, []byte("pending-data")) {
		t.Errorf("uncommitted read: actual: %q", value)
	}

	storage.Pool.TestData.Delete([]byte("pending"))
	if storage.Pool.TestData.Has([]byte("pending")) {
		t.Errorf("uncommitted delete still visible")
	}

	trx.Abort()
}

// abort must discard every pending write
func TestTransactionAbort(t *testing.T) {
	setup(t)
	defer teardown(t)

	committed := makeElements([]stringElement{
		{"kept", "kept-data"},
	})
	commitElements(t, storage.Pool.TestData, committed)

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	storage.Pool.TestData.Put([]byte("discarded"), []byte("discarded-data"))
	storage.Pool.TestData.Delete([]byte("kept"))
	trx.Abort()

	if storage.Pool.TestData.Get([]byte("discarded")) != nil {
		t.Errorf("aborted write survived")
	}

	value := storage.Pool.TestData.Get([]byte("kept"))
	if !bytes.Equal(value, []byte("kept-data")) {
		t.Errorf("aborted delete removed data: actual: %q", value)
	}
}

// only one transaction can be active
func TestTransactionExclusive(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}

	_, err = storage.NewDBTransaction()
	if fault.DoubleTransactionAttempt != err {
		t.Errorf("second begin: actual: %v  expected: %v", err, fault.DoubleTransactionAttempt)
	}

	trx.Abort()

	// released after abort
	trx, err = storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("begin after abort error: %s", err)
	}
	trx.Abort()
}

// commit must persist writes in both databases
func TestTransactionSpansDatabases(t *testing.T) {
	setup(t)
	defer teardown(t)

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	storage.Pool.TestData.Put([]byte("state-key"), []byte("state-data"))     // state database
	storage.Pool.SellerIndex.Put([]byte("index-key"), []byte("index-data")) // index database
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}

	if !storage.Pool.TestData.Has([]byte("state-key")) {
		t.Errorf("state database write lost")
	}
	if !storage.Pool.SellerIndex.Has([]byte("index-key")) {
		t.Errorf("index database write lost")
	}
}
