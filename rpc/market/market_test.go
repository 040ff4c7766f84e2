// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

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
	"github.com/facetmarket/facetd/rpc/fixtures"
	"github.com/facetmarket/facetd/rpc/market"
	"github.com/facetmarket/facetd/rpc/mocks"
	"github.com/facetmarket/facetd/selector"
)

var (
	sellerAddress = address.OfName("account.seller")
	buyerAddress  = address.OfName("account.buyer")
	collection    = address.OfName("collection.kittens")
)

func allowAll(mode.Mode) bool { return true }
func denyAll(mode.Mode) bool  { return false }

func TestMarketList(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	m := market.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	id := marketplace.NewListingId(collection, 7)
	params, _ := json.Marshal(marketplace.ListParams{
		Collection: collection,
		AssetId:    7,
		Price:      500,
	})
	result, _ := json.Marshal(marketplace.ListReply{Id: id})

	dispatch.EXPECT().
		Dispatch(sellerAddress, selector.FromSignature(marketplace.SigList), params).
		Return(result, nil).
		Times(1)

	var reply marketplace.ListReply
	err := m.List(&market.ListArguments{
		Caller:     sellerAddress,
		Collection: collection,
		AssetId:    7,
		Price:      500,
	}, &reply)
	assert.NoError(t, err, "list error")
	assert.Equal(t, id, reply.Id, "wrong listing id")
}

func TestMarketMutationModeGate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	m := market.New(logger.New(fixtures.LogCategory), dispatch, denyAll)

	var reply market.OKReply
	err := m.Purchase(&market.IdArguments{Caller: buyerAddress}, &reply)
	assert.Equal(t, fault.NotAvailableDuringStart, err, "expected mode gate error")
}

func TestMarketPurchaseErrorPassthrough(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	m := market.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	dispatch.EXPECT().
		Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fault.ListingNotActive).
		Times(1)

	var reply market.OKReply
	err := m.Purchase(&market.IdArguments{
		Caller: buyerAddress,
		Id:     marketplace.NewListingId(collection, 7),
	}, &reply)
	assert.Equal(t, fault.ListingNotActive, err, "dispatcher error not passed through")
	assert.False(t, reply.OK, "unexpected acknowledgement")
}

func TestMarketPaginated(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	m := market.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	listings := []marketplace.Listing{{
		Id:     marketplace.NewListingId(collection, 7),
		Seller: sellerAddress,
		Price:  500,
		Active: true,
	}}
	params, _ := json.Marshal(marketplace.PageParams{Offset: 0, Limit: 10})
	result, _ := json.Marshal(marketplace.ListingsReply{Listings: listings})

	dispatch.EXPECT().
		Dispatch(address.Zeroed, selector.FromSignature(marketplace.SigPaginated), params).
		Return(result, nil).
		Times(1)

	var reply marketplace.ListingsReply
	err := m.Paginated(&market.PaginatedArguments{Offset: 0, Limit: 10}, &reply)
	assert.NoError(t, err, "paginated error")
	assert.Len(t, reply.Listings, 1, "wrong listing count")
	assert.Equal(t, sellerAddress, reply.Listings[0].Seller, "wrong seller")
}

func TestMarketUserStats(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	dispatch := mocks.NewMockDispatcher(ctl)
	m := market.New(logger.New(fixtures.LogCategory), dispatch, allowAll)

	params, _ := json.Marshal(marketplace.AccountParams{Account: sellerAddress})
	result, _ := json.Marshal(marketplace.Stats{TotalSales: 700, TotalPurchases: 300})

	dispatch.EXPECT().
		Dispatch(address.Zeroed, selector.FromSignature(marketplace.SigUserStats), params).
		Return(result, nil).
		Times(1)

	var reply marketplace.Stats
	err := m.UserStats(&market.UserStatsArguments{Account: sellerAddress}, &reply)
	assert.NoError(t, err, "user stats error")
	assert.Equal(t, uint64(700), reply.TotalSales, "wrong sales")
}
