// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/routing"
)

// ConfigUpdatedEvent - one configuration field changed
type ConfigUpdatedEvent struct {
	Field  string `json:"field"`
	Config Config `json:"config"`
}

// read the stored configuration, lock already held
func getConfig() Config {
	config := Config{}
	if record := globalData.handles.Config.Get(configPaymentKey); len(record) == address.Size {
		copy(config.PaymentAsset[:], record)
	}
	config.FeeBasisPoints, _ = globalData.handles.Config.GetN(configFeeKey)
	if record := globalData.handles.Config.Get(configRecipientKey); len(record) == address.Size {
		copy(config.FeeRecipient[:], record)
	}
	return config
}

// only the control owner may change configuration
func checkConfigCaller(ctx *facet.Context) error {
	if ctx.Caller != routing.Owner() {
		return fault.NotAuthorized
	}
	return nil
}

func emitConfig(ctx *facet.Context, field string) {
	ctx.Emit(TopicConfig, ConfigUpdatedEvent{
		Field:  field,
		Config: getConfig(),
	})
}

// GetConfig - the current fee configuration
func GetConfig() Config {
	globalData.RLock()
	defer globalData.RUnlock()
	return getConfig()
}

// SetPaymentAsset - change the asset purchases settle in
func SetPaymentAsset(ctx *facet.Context, asset address.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if err := checkConfigCaller(ctx); err != nil {
		return err
	}
	if asset.IsZero() {
		return fault.InvalidAddress
	}

	globalData.handles.Config.Put(configPaymentKey, asset.Bytes())
	emitConfig(ctx, "paymentAsset")
	return nil
}

// SetFee - change the fee taken from each sale
func SetFee(ctx *facet.Context, feeBasisPoints uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if err := checkConfigCaller(ctx); err != nil {
		return err
	}
	if feeBasisPoints > MaximumFeeBasisPoints {
		return fault.FeeExceedsMaximum
	}
	if feeBasisPoints > 0 && getConfig().FeeRecipient.IsZero() {
		return fault.FeeRecipientNotSet
	}

	globalData.handles.Config.PutN(configFeeKey, feeBasisPoints)
	emitConfig(ctx, "feeBasisPoints")
	return nil
}

// SetFeeRecipient - change where fees are paid
func SetFeeRecipient(ctx *facet.Context, recipient address.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if err := checkConfigCaller(ctx); err != nil {
		return err
	}
	if recipient.IsZero() {
		return fault.InvalidAddress
	}

	globalData.handles.Config.Put(configRecipientKey, recipient.Bytes())
	emitConfig(ctx, "feeRecipient")
	return nil
}
