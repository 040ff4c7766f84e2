// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"encoding/json"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// FacetName - registry name of the diamond facet
const FacetName = "diamond"

// canonical signatures of the diamond facet
const (
	SigCut               = "cut(entries,initTarget,initSelector,initArgs)"
	SigFacetAddresses    = "facetAddresses()"
	SigFacetSelectors    = "facetFunctionSelectors(module)"
	SigFacetAddress      = "facetAddress(selector)"
	SigOwner             = "owner()"
	SigTransferOwnership = "transferOwnership(newOwner)"
)

// CutParams - arguments of the cut operation
type CutParams struct {
	Entries      []Entry           `json:"entries"`
	InitTarget   address.Address   `json:"initTarget"`
	InitSelector selector.Selector `json:"initSelector"`
	InitArgs     []byte            `json:"initArgs"`
}

// FacetSelectorsParams - arguments of the selector introspection
type FacetSelectorsParams struct {
	Module address.Address `json:"module"`
}

// FacetAddressParams - arguments of the address lookup
type FacetAddressParams struct {
	Selector selector.Selector `json:"selector"`
}

// TransferOwnershipParams - arguments of the ownership transfer
type TransferOwnershipParams struct {
	NewOwner address.Address `json:"newOwner"`
}

// FacetAddressesReply - all routed facet addresses
type FacetAddressesReply struct {
	Addresses []address.Address `json:"addresses"`
}

// FacetSelectorsReply - selectors routed to one facet
type FacetSelectorsReply struct {
	Selectors []selector.Selector `json:"selectors"`
}

// FacetAddressReply - module for one selector, null when unrouted
type FacetAddressReply struct {
	Module address.Address `json:"module"`
}

// OwnerReply - the current control owner
type OwnerReply struct {
	Owner address.Address `json:"owner"`
}

// DiamondFacet - the facet exposing the cut protocol and the loupe
// style introspection operations
type DiamondFacet struct {
	handlers map[selector.Selector]facet.Handler
}

// NewFacet - build the diamond facet
func NewFacet() *DiamondFacet {
	f := &DiamondFacet{}
	f.handlers = map[selector.Selector]facet.Handler{
		selector.FromSignature(SigCut):               f.cut,
		selector.FromSignature(SigFacetAddresses):    f.facetAddresses,
		selector.FromSignature(SigFacetSelectors):    f.facetSelectors,
		selector.FromSignature(SigFacetAddress):      f.facetAddress,
		selector.FromSignature(SigOwner):             f.owner,
		selector.FromSignature(SigTransferOwnership): f.transferOwnership,
	}
	return f
}

// Handlers - the operation table
func (f *DiamondFacet) Handlers() map[selector.Selector]facet.Handler {
	return f.handlers
}

func (f *DiamondFacet) cut(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments CutParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	err := Cut(ctx, arguments.Entries, arguments.InitTarget, arguments.InitSelector, arguments.InitArgs)
	if err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *DiamondFacet) facetAddresses(ctx *facet.Context, params []byte) ([]byte, error) {
	return json.Marshal(FacetAddressesReply{Addresses: FacetAddresses()})
}

func (f *DiamondFacet) facetSelectors(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments FacetSelectorsParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(FacetSelectorsReply{Selectors: FacetSelectors(arguments.Module)})
}

func (f *DiamondFacet) facetAddress(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments FacetAddressParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(FacetAddressReply{Module: ModuleForSelector(arguments.Selector)})
}

func (f *DiamondFacet) owner(ctx *facet.Context, params []byte) ([]byte, error) {
	return json.Marshal(OwnerReply{Owner: Owner()})
}

func (f *DiamondFacet) transferOwnership(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments TransferOwnershipParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := TransferOwnership(ctx, arguments.NewOwner); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}
