// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/marketplace"
)

func TestPagination(t *testing.T) {
	setup(t)
	defer teardown(t)

	for assetId := uint64(1); assetId <= 15; assetId += 1 {
		listToken(t, seller, assetId, 100*assetId)
	}

	// limit zero selects the default page size
	page := marketplace.ListingsPaginated(0, 0)
	assert.Len(t, page, marketplace.DefaultPageSize, "wrong default page size")
	assert.Equal(t, uint64(1), page[0].AssetId, "wrong first entry")

	page = marketplace.ListingsPaginated(10, 10)
	assert.Len(t, page, 5, "wrong final page size")
	assert.Equal(t, uint64(11), page[0].AssetId, "wrong page start")

	// out of range reads are empty, not errors
	assert.Empty(t, marketplace.ListingsPaginated(15, 10), "expected empty page")
	assert.Empty(t, marketplace.ListingsPaginated(1000, 0), "expected empty page")
}

func TestSellerListings(t *testing.T) {
	setup(t)
	defer teardown(t)

	listToken(t, seller, 1, 100)
	listToken(t, seller, 2, 200)
	listToken(t, stranger, 3, 300)

	listings := marketplace.SellerListings(seller)
	assert.Len(t, listings, 2, "wrong listing count")
	for _, listing := range listings {
		assert.Equal(t, seller, listing.Seller, "foreign listing in result")
	}

	assert.Empty(t, marketplace.SellerListings(buyer), "expected no listings")
}

func TestConfigOperations(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := runOp(t, stranger, func(ctx *facet.Context) error {
		return marketplace.SetFee(ctx, 100)
	})
	assert.Equal(t, fault.NotAuthorized, err, "expected authorization error")

	_, err = runOp(t, ownerAddress, func(ctx *facet.Context) error {
		return marketplace.SetFee(ctx, marketplace.MaximumFeeBasisPoints+1)
	})
	assert.Equal(t, fault.FeeExceedsMaximum, err, "expected fee limit error")

	_, err = runOp(t, ownerAddress, func(ctx *facet.Context) error {
		return marketplace.SetPaymentAsset(ctx, address.Zeroed)
	})
	assert.Equal(t, fault.InvalidAddress, err, "expected address error")

	_, err = runOp(t, ownerAddress, func(ctx *facet.Context) error {
		return marketplace.SetFeeRecipient(ctx, address.Zeroed)
	})
	assert.Equal(t, fault.InvalidAddress, err, "expected address error")

	_, err = runOp(t, ownerAddress, func(ctx *facet.Context) error {
		return marketplace.SetFee(ctx, 100)
	})
	assert.Equal(t, fault.FeeRecipientNotSet, err, "expected recipient error")

	configure(t, 250)

	config := marketplace.GetConfig()
	assert.Equal(t, cashAsset, config.PaymentAsset, "wrong payment asset")
	assert.Equal(t, uint64(250), config.FeeBasisPoints, "wrong fee")
	assert.Equal(t, recipient, config.FeeRecipient, "wrong recipient")
}
