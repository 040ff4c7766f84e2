// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - in-process settlement backend
//
// implements the payment and asset collaborator interfaces of the
// marketplace on top of the shared storage pools, so a purchase and
// its payments commit or abort together with the dispatch transaction
//
// this backend serves the local and testing chains; a live deployment
// is expected to substitute external settlement implementations
package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/storage"
)

// Handles - the pools in use
type Handles struct {
	Balances  storage.Handle
	Owners    storage.Handle
	Approvals storage.Handle
}

// globals
type ledgerData struct {
	sync.RWMutex

	log *logger.L

	handles Handles

	// set once during initialise
	initialised bool
}

var globalData ledgerData

// Initialise - attach pools
func Initialise(handles Handles) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.handles = handles
	globalData.initialised = true

	return nil
}

// Finalise - shutdown the ledger
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.initialised = false

	return nil
}

// balance records are keyed asset ‖ holder
func balanceKey(asset address.Address, holder address.Address) []byte {
	key := make([]byte, 2*address.Size)
	copy(key, asset.Bytes())
	copy(key[address.Size:], holder.Bytes())
	return key
}

// token records are keyed collection ‖ assetId
func tokenKey(collection address.Address, assetId uint64) []byte {
	key := make([]byte, address.Size+8)
	copy(key, collection.Bytes())
	binary.BigEndian.PutUint64(key[address.Size:], assetId)
	return key
}

// approval records are keyed collection ‖ owner ‖ operator
func approvalKey(collection address.Address, owner address.Address, operator address.Address) []byte {
	key := make([]byte, 3*address.Size)
	copy(key, collection.Bytes())
	copy(key[address.Size:], owner.Bytes())
	copy(key[2*address.Size:], operator.Bytes())
	return key
}

// Payments - the fungible balance ledger
type Payments struct{}

// TransferFrom - move an amount between two holders of an asset
func (Payments) TransferFrom(asset address.Address, from address.Address, to address.Address, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	fromBalance, _ := globalData.handles.Balances.GetN(balanceKey(asset, from))
	if fromBalance < amount {
		return fault.InsufficientBalance
	}
	toBalance, _ := globalData.handles.Balances.GetN(balanceKey(asset, to))

	globalData.handles.Balances.PutN(balanceKey(asset, from), fromBalance-amount)
	globalData.handles.Balances.PutN(balanceKey(asset, to), toBalance+amount)

	return nil
}

// Deposit - credit a holder, for the local and testing chains
func Deposit(asset address.Address, holder address.Address, amount uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	balance, _ := globalData.handles.Balances.GetN(balanceKey(asset, holder))
	globalData.handles.Balances.PutN(balanceKey(asset, holder), balance+amount)
	return nil
}

// Balance - current balance of a holder
func Balance(asset address.Address, holder address.Address) uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}

	balance, _ := globalData.handles.Balances.GetN(balanceKey(asset, holder))
	return balance
}

// Assets - the token ownership registry
type Assets struct{}

// OwnerOf - current owner of a token
func (Assets) OwnerOf(collection address.Address, assetId uint64) (address.Address, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return address.Zeroed, fault.NotInitialised
	}

	record := globalData.handles.Owners.Get(tokenKey(collection, assetId))
	if len(record) != address.Size {
		return address.Zeroed, fault.TokenNotFound
	}
	var owner address.Address
	copy(owner[:], record)
	return owner, nil
}

// IsApprovedFor - check an operator approval
func (Assets) IsApprovedFor(collection address.Address, owner address.Address, operator address.Address) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return false
	}
	return globalData.handles.Approvals.Has(approvalKey(collection, owner, operator))
}

// TransferFrom - move a token to a new owner
//
// the operator must be the current owner or hold an approval still on
// record at transfer time, so a revoked approval refuses the move
func (Assets) TransferFrom(collection address.Address, operator address.Address, from address.Address, to address.Address, assetId uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	record := globalData.handles.Owners.Get(tokenKey(collection, assetId))
	if len(record) != address.Size {
		return fault.TokenNotFound
	}
	var owner address.Address
	copy(owner[:], record)
	if owner != from {
		return fault.NotOwner
	}
	if operator != owner && !globalData.handles.Approvals.Has(approvalKey(collection, owner, operator)) {
		return fault.NotApproved
	}

	globalData.handles.Owners.Put(tokenKey(collection, assetId), to.Bytes())
	return nil
}

// Mint - create a token, for the local and testing chains
func Mint(collection address.Address, assetId uint64, owner address.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	key := tokenKey(collection, assetId)
	if globalData.handles.Owners.Get(key) != nil {
		return fault.TokenAlreadyExists
	}
	globalData.handles.Owners.Put(key, owner.Bytes())
	return nil
}

// SetApproval - grant or revoke an operator approval
func SetApproval(collection address.Address, owner address.Address, operator address.Address, approved bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	key := approvalKey(collection, owner, operator)
	if approved {
		globalData.handles.Approvals.Put(key, []byte{1})
	} else {
		globalData.handles.Approvals.Delete(key)
	}
	return nil
}
