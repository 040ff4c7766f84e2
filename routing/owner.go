// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
)

// Owner - the control owner address
//
// the null address only before Genesis has run
func Owner() address.Address {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := globalData.pool.Owner.Get(ownerKey)
	if buffer == nil {
		return address.Zeroed
	}
	owner, err := address.FromBytes(buffer)
	if err != nil {
		return address.Zeroed
	}
	return owner
}

// TransferOwnership - replace the control owner
//
// only the current owner may do this
func TransferOwnership(ctx *facet.Context, newOwner address.Address) error {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := globalData.pool.Owner.Get(ownerKey)
	if buffer == nil {
		return fault.NotInitialised
	}
	current, err := address.FromBytes(buffer)
	if err != nil || ctx.Caller != current {
		return fault.NotAuthorized
	}
	if newOwner.IsZero() {
		return fault.InvalidAddress
	}

	globalData.pool.Owner.Put(ownerKey, newOwner[:])
	ctx.Emit(TopicOwnership, OwnershipTransferredEvent{
		PreviousOwner: current,
		NewOwner:      newOwner,
	})
	return nil
}

// Genesis - one time construction of the diamond
//
// sets the control owner and installs the initial routing entries;
// refused once an owner exists.  Must run inside a storage
// transaction like every other mutation.
func Genesis(owner address.Address, entries []Entry) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if owner.IsZero() {
		return fault.InvalidAddress
	}
	if globalData.pool.Owner.Has(ownerKey) {
		return fault.AlreadyInitialised
	}

	globalData.pool.Owner.Put(ownerKey, owner[:])

	for _, entry := range entries {
		if entry.Action != Add {
			return fault.MissingParameters
		}
		if err := applyEntry(entry); err != nil {
			return err
		}
	}
	return nil
}
