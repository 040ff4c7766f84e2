// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// Transaction - lifecycle of one atomic batch over all databases
//
// pool reads and writes between Begin and Commit belong to the
// transaction; Abort discards them all
type Transaction interface {
	Begin() error
	Commit() error
	Abort()
	InUse() bool
}

// TransactionImpl - transaction over the state and index databases
type TransactionImpl struct {
	sync.Mutex
	dataAccess []Access
}

func newTransaction(access []Access) Transaction {
	return &TransactionImpl{
		dataAccess: access,
	}
}

// Begin - take ownership of every database batch
func (t *TransactionImpl) Begin() error {
	t.Lock()
	defer t.Unlock()

	for i, access := range t.dataAccess {
		if err := access.Begin(); err != nil {
			for _, begun := range t.dataAccess[:i] {
				begun.Abort()
			}
			return err
		}
	}
	return nil
}

// Commit - write every batch; partial failure leaves the databases
// requiring manual recovery, so it is logged as critical upstream
func (t *TransactionImpl) Commit() error {
	t.Lock()
	defer t.Unlock()

	var result error
	for _, access := range t.dataAccess {
		if err := access.Commit(); err != nil && result == nil {
			result = err
		}
	}
	return result
}

// Abort - discard every pending write
func (t *TransactionImpl) Abort() {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		access.Abort()
	}
}

// InUse - true while any database batch is owned
func (t *TransactionImpl) InUse() bool {
	t.Lock()
	defer t.Unlock()

	for _, access := range t.dataAccess {
		if access.InUse() {
			return true
		}
	}
	return false
}
