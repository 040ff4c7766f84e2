// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dev

import (
	"encoding/json"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/ledger"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/rpc/ratelimit"
	"github.com/facetmarket/facetd/selector"
)

const (
	rateLimitDev = 200
	rateBurstDev = 100
)

// Dev - type for RPC calls
//
// seeds the in-process ledger; only registered on the local and
// testing chains
type Dev struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	Dispatcher   dispatcher.Dispatcher
	IsNormalMode func(mode.Mode) bool
}

// New - create the development ledger service
func New(log *logger.L, d dispatcher.Dispatcher, isNormalMode func(mode.Mode) bool) *Dev {
	return &Dev{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitDev, rateBurstDev),
		Dispatcher:   d,
		IsNormalMode: isNormalMode,
	}
}

// OKReply - result of a state-changing operation
type OKReply struct {
	OK bool `json:"ok"`
}

// one gate for every state-changing operation
func (v *Dev) mutationAllowed() error {
	if err := ratelimit.Limit(v.Limiter); err != nil {
		return err
	}
	if !v.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStart
	}
	return nil
}

// dispatch one ledger operation by signature
func (v *Dev) dispatch(caller address.Address, signature string, params interface{}, reply interface{}) error {
	packed, err := json.Marshal(params)
	if err != nil {
		return err
	}
	result, err := v.Dispatcher.Dispatch(caller, selector.FromSignature(signature), packed)
	if err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	return json.Unmarshal(result, reply)
}

// MintArguments - create a token
type MintArguments struct {
	Caller     address.Address `json:"caller"`
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Owner      address.Address `json:"owner"`
}

// Mint - create a token in the in-process registry
func (v *Dev) Mint(arguments *MintArguments, reply *OKReply) error {
	if err := v.mutationAllowed(); err != nil {
		return err
	}
	err := v.dispatch(arguments.Caller, ledger.SigMint, ledger.MintParams{
		Collection: arguments.Collection,
		AssetId:    arguments.AssetId,
		Owner:      arguments.Owner,
	}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// DepositArguments - credit a holder
type DepositArguments struct {
	Caller address.Address `json:"caller"`
	Asset  address.Address `json:"asset"`
	Holder address.Address `json:"holder"`
	Amount uint64          `json:"amount"`
}

// Deposit - credit a holder of a fungible asset
func (v *Dev) Deposit(arguments *DepositArguments, reply *OKReply) error {
	if err := v.mutationAllowed(); err != nil {
		return err
	}
	err := v.dispatch(arguments.Caller, ledger.SigDeposit, ledger.DepositParams{
		Asset:  arguments.Asset,
		Holder: arguments.Holder,
		Amount: arguments.Amount,
	}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// SetApprovalArguments - grant or revoke an operator approval
type SetApprovalArguments struct {
	Caller     address.Address `json:"caller"`
	Collection address.Address `json:"collection"`
	Operator   address.Address `json:"operator"`
	Approved   bool            `json:"approved"`
}

// SetApproval - change an operator approval of the calling owner
func (v *Dev) SetApproval(arguments *SetApprovalArguments, reply *OKReply) error {
	if err := v.mutationAllowed(); err != nil {
		return err
	}
	err := v.dispatch(arguments.Caller, ledger.SigSetApproval, ledger.SetApprovalParams{
		Collection: arguments.Collection,
		Operator:   arguments.Operator,
		Approved:   arguments.Approved,
	}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// BalanceArguments - fetch a holder balance
type BalanceArguments struct {
	Asset  address.Address `json:"asset"`
	Holder address.Address `json:"holder"`
}

// Balance - current balance of a holder
func (v *Dev) Balance(arguments *BalanceArguments, reply *ledger.BalanceReply) error {
	if err := ratelimit.Limit(v.Limiter); err != nil {
		return err
	}
	return v.dispatch(address.Zeroed, ledger.SigBalance, ledger.BalanceParams{
		Asset:  arguments.Asset,
		Holder: arguments.Holder,
	}, reply)
}

// OwnerOfArguments - fetch a token owner
type OwnerOfArguments struct {
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
}

// OwnerOf - current owner of a token
func (v *Dev) OwnerOf(arguments *OwnerOfArguments, reply *ledger.OwnerOfReply) error {
	if err := ratelimit.Limit(v.Limiter); err != nil {
		return err
	}
	return v.dispatch(address.Zeroed, ledger.SigOwnerOf, ledger.OwnerOfParams{
		Collection: arguments.Collection,
		AssetId:    arguments.AssetId,
	}, reply)
}
