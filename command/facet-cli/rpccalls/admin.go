// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/admin"
)

// SetPaymentAsset - change the asset purchases settle in
func (c *Client) SetPaymentAsset(caller address.Address, asset address.Address) (*admin.OKReply, error) {
	arguments := admin.SetPaymentAssetArguments{Caller: caller, Asset: asset}
	var reply admin.OKReply
	if err := c.client.Call("Admin.SetPaymentAsset", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// SetFee - change the fee taken from each sale
func (c *Client) SetFee(caller address.Address, feeBasisPoints uint64) (*admin.OKReply, error) {
	arguments := admin.SetFeeArguments{Caller: caller, FeeBasisPoints: feeBasisPoints}
	var reply admin.OKReply
	if err := c.client.Call("Admin.SetFee", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// SetFeeRecipient - change where fees are paid
func (c *Client) SetFeeRecipient(caller address.Address, recipient address.Address) (*admin.OKReply, error) {
	arguments := admin.SetFeeRecipientArguments{Caller: caller, Recipient: recipient}
	var reply admin.OKReply
	if err := c.client.Call("Admin.SetFeeRecipient", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetConfig - the current fee configuration
func (c *Client) GetConfig() (*marketplace.Config, error) {
	var reply marketplace.Config
	if err := c.client.Call("Admin.Config", admin.ConfigArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// TransferOwnership - hand diamond control to a new owner
func (c *Client) TransferOwnership(caller address.Address, newOwner address.Address) (*admin.OKReply, error) {
	arguments := admin.TransferOwnershipArguments{Caller: caller, NewOwner: newOwner}
	var reply admin.OKReply
	if err := c.client.Call("Admin.TransferOwnership", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetOwner - the current control owner
func (c *Client) GetOwner() (*routing.OwnerReply, error) {
	var reply routing.OwnerReply
	if err := c.client.Call("Admin.Owner", admin.OwnerArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
