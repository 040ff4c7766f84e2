// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/ledger"
	"github.com/facetmarket/facetd/rpc/dev"
)

// development ledger calls, served on the local and testing chains only

// Mint - create a token in the in-process registry
func (c *Client) Mint(caller address.Address, collection address.Address, assetId uint64, owner address.Address) (*dev.OKReply, error) {

	arguments := dev.MintArguments{
		Caller:     caller,
		Collection: collection,
		AssetId:    assetId,
		Owner:      owner,
	}
	if err := c.printJson("mint request", arguments); err != nil {
		return nil, err
	}

	var reply dev.OKReply
	if err := c.client.Call("Dev.Mint", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Deposit - credit a holder of a fungible asset
func (c *Client) Deposit(caller address.Address, asset address.Address, holder address.Address, amount uint64) (*dev.OKReply, error) {
	arguments := dev.DepositArguments{
		Caller: caller,
		Asset:  asset,
		Holder: holder,
		Amount: amount,
	}
	var reply dev.OKReply
	if err := c.client.Call("Dev.Deposit", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// SetApproval - change an operator approval of the calling owner
func (c *Client) SetApproval(caller address.Address, collection address.Address, operator address.Address, approved bool) (*dev.OKReply, error) {
	arguments := dev.SetApprovalArguments{
		Caller:     caller,
		Collection: collection,
		Operator:   operator,
		Approved:   approved,
	}
	var reply dev.OKReply
	if err := c.client.Call("Dev.SetApproval", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetBalance - current balance of a holder
func (c *Client) GetBalance(asset address.Address, holder address.Address) (*ledger.BalanceReply, error) {
	arguments := dev.BalanceArguments{Asset: asset, Holder: holder}
	var reply ledger.BalanceReply
	if err := c.client.Call("Dev.Balance", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetTokenOwner - current owner of a token
func (c *Client) GetTokenOwner(collection address.Address, assetId uint64) (*ledger.OwnerOfReply, error) {
	arguments := dev.OwnerOfArguments{Collection: collection, AssetId: assetId}
	var reply ledger.OwnerOfReply
	if err := c.client.Call("Dev.OwnerOf", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
