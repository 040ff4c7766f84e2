// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// registry name of the development ledger facet
const FacetName = "ledger-dev"

// canonical signatures of the development ledger facet
//
// setApproval grants on behalf of the calling owner, so a caller can
// only ever change its own approvals
const (
	SigMint        = "mint(collection,assetId,owner)"
	SigDeposit     = "deposit(asset,holder,amount)"
	SigSetApproval = "setApproval(collection,operator,approved)"
	SigBalance     = "balance(asset,holder)"
	SigOwnerOf     = "ownerOf(collection,assetId)"
)

// MintParams - arguments of mint
type MintParams struct {
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Owner      address.Address `json:"owner"`
}

// DepositParams - arguments of deposit
type DepositParams struct {
	Asset  address.Address `json:"asset"`
	Holder address.Address `json:"holder"`
	Amount uint64          `json:"amount"`
}

// SetApprovalParams - arguments of setApproval
type SetApprovalParams struct {
	Collection address.Address `json:"collection"`
	Operator   address.Address `json:"operator"`
	Approved   bool            `json:"approved"`
}

// BalanceParams - arguments of balance
type BalanceParams struct {
	Asset  address.Address `json:"asset"`
	Holder address.Address `json:"holder"`
}

// OwnerOfParams - arguments of ownerOf
type OwnerOfParams struct {
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
}

// BalanceReply - current balance of a holder
type BalanceReply struct {
	Balance uint64 `json:"balance"`
}

// OwnerOfReply - current owner of a token
type OwnerOfReply struct {
	Owner address.Address `json:"owner"`
}

// DevFacet - the facet seeding the in-process ledger
//
// only registered on the local and testing chains; a live deployment
// has no in-process ledger to seed
type DevFacet struct {
	handlers map[selector.Selector]facet.Handler
}

// NewDevFacet - build the development ledger facet
func NewDevFacet() *DevFacet {
	f := &DevFacet{}
	f.handlers = map[selector.Selector]facet.Handler{
		selector.FromSignature(SigMint):        f.mint,
		selector.FromSignature(SigDeposit):     f.deposit,
		selector.FromSignature(SigSetApproval): f.setApproval,
		selector.FromSignature(SigBalance):     f.balance,
		selector.FromSignature(SigOwnerOf):     f.ownerOf,
	}
	return f
}

// Handlers - the operation table
func (f *DevFacet) Handlers() map[selector.Selector]facet.Handler {
	return f.handlers
}

func (f *DevFacet) mint(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments MintParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := Mint(arguments.Collection, arguments.AssetId, arguments.Owner); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *DevFacet) deposit(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments DepositParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := Deposit(arguments.Asset, arguments.Holder, arguments.Amount); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *DevFacet) setApproval(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments SetApprovalParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := SetApproval(arguments.Collection, ctx.Caller, arguments.Operator, arguments.Approved); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *DevFacet) balance(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments BalanceParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(BalanceReply{Balance: Balance(arguments.Asset, arguments.Holder)})
}

func (f *DevFacet) ownerOf(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments OwnerOfParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	owner, err := Assets{}.OwnerOf(arguments.Collection, arguments.AssetId)
	if err != nil {
		return nil, err
	}
	return json.Marshal(OwnerOfReply{Owner: owner})
}
