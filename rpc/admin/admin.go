// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package admin

import (
	"encoding/json"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/ratelimit"
	"github.com/facetmarket/facetd/selector"
)

const (
	rateLimitAdmin = 100
	rateBurstAdmin = 50
)

// Admin - type for RPC calls
type Admin struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	Dispatcher   dispatcher.Dispatcher
	IsNormalMode func(mode.Mode) bool
}

// New - create the admin service
func New(log *logger.L, d dispatcher.Dispatcher, isNormalMode func(mode.Mode) bool) *Admin {
	return &Admin{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitAdmin, rateBurstAdmin),
		Dispatcher:   d,
		IsNormalMode: isNormalMode,
	}
}

// OKReply - result of a state-changing operation
type OKReply struct {
	OK bool `json:"ok"`
}

func (a *Admin) mutate(caller address.Address, signature string, params interface{}) error {
	if err := ratelimit.Limit(a.Limiter); err != nil {
		return err
	}
	if !a.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStart
	}

	packed, err := json.Marshal(params)
	if err != nil {
		return err
	}
	_, err = a.Dispatcher.Dispatch(caller, selector.FromSignature(signature), packed)
	return err
}

// SetPaymentAssetArguments - change the settlement asset
type SetPaymentAssetArguments struct {
	Caller address.Address `json:"caller"`
	Asset  address.Address `json:"asset"`
}

// SetPaymentAsset - change the asset purchases settle in
func (a *Admin) SetPaymentAsset(arguments *SetPaymentAssetArguments, reply *OKReply) error {
	err := a.mutate(arguments.Caller, marketplace.SigSetPaymentAsset, marketplace.AssetParams{Asset: arguments.Asset})
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// SetFeeArguments - change the sale fee
type SetFeeArguments struct {
	Caller         address.Address `json:"caller"`
	FeeBasisPoints uint64          `json:"feeBasisPoints"`
}

// SetFee - change the fee taken from each sale
func (a *Admin) SetFee(arguments *SetFeeArguments, reply *OKReply) error {
	err := a.mutate(arguments.Caller, marketplace.SigSetFee, marketplace.FeeParams{FeeBasisPoints: arguments.FeeBasisPoints})
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// SetFeeRecipientArguments - change the fee destination
type SetFeeRecipientArguments struct {
	Caller    address.Address `json:"caller"`
	Recipient address.Address `json:"recipient"`
}

// SetFeeRecipient - change where fees are paid
func (a *Admin) SetFeeRecipient(arguments *SetFeeRecipientArguments, reply *OKReply) error {
	err := a.mutate(arguments.Caller, marketplace.SigSetFeeRecipient, marketplace.RecipientParams{Recipient: arguments.Recipient})
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// ConfigArguments - empty arguments for the configuration read
type ConfigArguments struct{}

// Config - the current fee configuration
func (a *Admin) Config(arguments *ConfigArguments, reply *marketplace.Config) error {
	if err := ratelimit.Limit(a.Limiter); err != nil {
		return err
	}

	result, err := a.Dispatcher.Dispatch(address.Zeroed, selector.FromSignature(marketplace.SigConfig), nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, reply)
}

// TransferOwnershipArguments - hand over diamond control
type TransferOwnershipArguments struct {
	Caller   address.Address `json:"caller"`
	NewOwner address.Address `json:"newOwner"`
}

// TransferOwnership - hand diamond control to a new owner
func (a *Admin) TransferOwnership(arguments *TransferOwnershipArguments, reply *OKReply) error {
	err := a.mutate(arguments.Caller, routing.SigTransferOwnership, routing.TransferOwnershipParams{NewOwner: arguments.NewOwner})
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// OwnerArguments - empty arguments for the owner read
type OwnerArguments struct{}

// Owner - the current control owner
func (a *Admin) Owner(arguments *OwnerArguments, reply *routing.OwnerReply) error {
	if err := ratelimit.Limit(a.Limiter); err != nil {
		return err
	}

	result, err := a.Dispatcher.Dispatch(address.Zeroed, selector.FromSignature(routing.SigOwner), nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, reply)
}
