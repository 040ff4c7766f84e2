// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// event topics
const (
	TopicRouting   = "routing.changed"
	TopicOwnership = "ownership.transferred"
)

// ChangedEvent - emitted after a successful cut
type ChangedEvent struct {
	Caller       address.Address   `json:"caller"`
	Entries      []Entry           `json:"entries"`
	InitTarget   address.Address   `json:"initTarget,omitempty"`
	InitSelector selector.Selector `json:"initSelector,omitempty"`
}

// OwnershipTransferredEvent - emitted when the control owner changes
type OwnershipTransferredEvent struct {
	PreviousOwner address.Address `json:"previousOwner"`
	NewOwner      address.Address `json:"newOwner"`
}

// Cut - apply a batched routing mutation
//
// the whole batch is all-or-nothing: any failure returns an error and
// the enclosing storage transaction is aborted by the dispatcher, so
// no partial mutation is ever observable.  After the batch an
// optional one-shot initialisation call runs against a deployed
// facet; its failure likewise unwinds the whole cut.
func Cut(ctx *facet.Context, entries []Entry, initTarget address.Address, initSelector selector.Selector, initArgs []byte) error {
	globalData.RLock()
	defer globalData.RUnlock()

	// only the control owner mutates the routing table
	buffer := globalData.pool.Owner.Get(ownerKey)
	if buffer == nil {
		return fault.NotInitialised
	}
	owner, err := address.FromBytes(buffer)
	if err != nil || ctx.Caller != owner {
		return fault.NotAuthorized
	}

	if len(entries) == 0 {
		return fault.EmptyArrays
	}

	for _, entry := range entries {
		if err := applyEntry(entry); err != nil {
			return err
		}
	}

	ctx.Emit(TopicRouting, ChangedEvent{
		Caller:       ctx.Caller,
		Entries:      entries,
		InitTarget:   initTarget,
		InitSelector: initSelector,
	})

	// optional one-shot initialisation call
	if initTarget.IsZero() {
		return nil
	}
	handler, ok := facet.HandlerFor(initTarget, initSelector)
	if !ok {
		return fault.NoCodeAtTarget
	}
	if _, err := handler(ctx, initArgs); err != nil {
		globalData.log.Errorf("cut: initialisation failed: %s", err)
		return fault.InitializationFailed
	}
	return nil
}

// apply one cut entry
func applyEntry(entry Entry) error {

	if len(entry.Selectors) == 0 {
		return fault.EmptyArrays
	}

	switch entry.Action {

	case Add:
		if err := checkDeployed(entry.Module, entry.Selectors); err != nil {
			return err
		}
		for _, sel := range entry.Selectors {
			if err := addFunction(entry.Module, sel); err != nil {
				return err
			}
		}

	case Replace:
		if err := checkDeployed(entry.Module, entry.Selectors); err != nil {
			return err
		}
		for _, sel := range entry.Selectors {
			if err := replaceFunction(entry.Module, sel); err != nil {
				return err
			}
		}

	case Remove:
		// the existing mapping determines the module
		if !entry.Module.IsZero() {
			return fault.RemoveTargetMustBeEmpty
		}
		for _, sel := range entry.Selectors {
			if _, err := removeFunction(sel); err != nil {
				return err
			}
		}

	default:
		return fault.MissingParameters
	}

	return nil
}

// a routed module must be a deployed facet exposing every selector
// being routed to it
func checkDeployed(module address.Address, selectors []selector.Selector) error {
	if module.IsZero() {
		return fault.InvalidAddress
	}
	if !facet.IsDeployed(module) {
		return fault.NoCodeAtTarget
	}
	for _, sel := range selectors {
		if _, ok := facet.HandlerFor(module, sel); !ok {
			return fault.NoCodeAtTarget
		}
	}
	return nil
}
