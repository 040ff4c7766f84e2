// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package admin_test

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/admin"
	"github.com/facetmarket/facetd/rpc/fixtures"
	"github.com/facetmarket/facetd/rpc/mocks"
	"github.com/facetmarket/facetd/selector"
)

var (
	ownerAddress = address.OfName("test.owner")
	assetAddress = address.OfName("asset.cash")
)

func allowAll(mode.Mode) bool { return true }
func denyAll(mode.Mode) bool  { return false }

func TestAdminSetFee(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	params, _ := json.Marshal(marketplace.FeeParams{FeeBasisPoints: 250})
	result, _ := json.Marshal(true)

	dispatch.EXPECT().
		Dispatch(ownerAddress, selector.FromSignature(marketplace.SigSetFee), params).
		Return(result, nil).
		Times(1)

	var reply admin.OKReply
	err := a.SetFee(&admin.SetFeeArguments{
		Caller:         ownerAddress,
		FeeBasisPoints: 250,
	}, &reply)
	assert.NoError(t, err, "set fee error")
	assert.True(t, reply.OK, "not acknowledged")
}

func TestAdminMutationModeGate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), dispatch, denyAll)

	var reply admin.OKReply
	err := a.SetPaymentAsset(&admin.SetPaymentAssetArguments{
		Caller: ownerAddress,
		Asset:  assetAddress,
	}, &reply)
	assert.Equal(t, fault.NotAvailableDuringStart, err, "expected mode gate error")
}

func TestAdminErrorPassthrough(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	dispatch.EXPECT().
		Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fault.NotAuthorized).
		Times(1)

	var reply admin.OKReply
	err := a.SetFee(&admin.SetFeeArguments{
		Caller:         assetAddress,
		FeeBasisPoints: 250,
	}, &reply)
	assert.Equal(t, fault.NotAuthorized, err, "dispatcher error not passed through")
}

func TestAdminConfig(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	config := marketplace.Config{
		PaymentAsset:   assetAddress,
		FeeBasisPoints: 250,
		FeeRecipient:   ownerAddress,
	}
	result, _ := json.Marshal(config)

	dispatch.EXPECT().
		Dispatch(address.Zeroed, selector.FromSignature(marketplace.SigConfig), nil).
		Return(result, nil).
		Times(1)

	var reply marketplace.Config
	err := a.Config(&admin.ConfigArguments{}, &reply)
	assert.NoError(t, err, "config error")
	assert.Equal(t, config, reply, "wrong configuration")
}

func TestAdminOwner(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	a := admin.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	result, _ := json.Marshal(routing.OwnerReply{Owner: ownerAddress})

	dispatch.EXPECT().
		Dispatch(address.Zeroed, selector.FromSignature(routing.SigOwner), nil).
		Return(result, nil).
		Times(1)

	var reply routing.OwnerReply
	err := a.Owner(&admin.OwnerArguments{}, &reply)
	assert.NoError(t, err, "owner error")
	assert.Equal(t, ownerAddress, reply.Owner, "wrong owner")
}
