// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/rpc/market"
)

// List - open a listing for an owned asset
func (c *Client) List(caller address.Address, collection address.Address, assetId uint64, price uint64) (*marketplace.ListReply, error) {

	arguments := market.ListArguments{
		Caller:     caller,
		Collection: collection,
		AssetId:    assetId,
		Price:      price,
	}
	if err := c.printJson("list request", arguments); err != nil {
		return nil, err
	}

	var reply marketplace.ListReply
	if err := c.client.Call("Market.List", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// UpdatePrice - change the asking price of an active listing
func (c *Client) UpdatePrice(caller address.Address, id marketplace.ListingId, newPrice uint64) (*market.OKReply, error) {
	arguments := market.UpdatePriceArguments{
		Caller:   caller,
		Id:       id,
		NewPrice: newPrice,
	}
	var reply market.OKReply
	if err := c.client.Call("Market.UpdatePrice", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Purchase - buy an active listing at its asking price
func (c *Client) Purchase(caller address.Address, id marketplace.ListingId) (*market.OKReply, error) {
	arguments := market.IdArguments{Caller: caller, Id: id}
	var reply market.OKReply
	if err := c.client.Call("Market.Purchase", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Remove - deactivate one listing
func (c *Client) Remove(caller address.Address, id marketplace.ListingId) (*market.OKReply, error) {
	arguments := market.IdArguments{Caller: caller, Id: id}
	var reply market.OKReply
	if err := c.client.Call("Market.Remove", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// BulkRemove - deactivate a batch of listings
func (c *Client) BulkRemove(caller address.Address, collections []address.Address, assetIds []uint64) (*marketplace.BulkRemoveReply, error) {

	arguments := market.BulkRemoveArguments{
		Caller:      caller,
		Collections: collections,
		AssetIds:    assetIds,
	}
	if err := c.printJson("bulk remove request", arguments); err != nil {
		return nil, err
	}

	var reply marketplace.BulkRemoveReply
	if err := c.client.Call("Market.BulkRemove", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetListing - fetch one listing slot
func (c *Client) GetListing(id marketplace.ListingId) (*marketplace.ListingReply, error) {
	arguments := market.ListingArguments{Id: id}
	var reply marketplace.ListingReply
	if err := c.client.Call("Market.Listing", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetListings - a page of the global listing index
func (c *Client) GetListings(offset uint64, limit uint64) (*marketplace.ListingsReply, error) {
	arguments := market.PaginatedArguments{Offset: offset, Limit: limit}
	var reply marketplace.ListingsReply
	if err := c.client.Call("Market.Paginated", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetSellerListings - every listing slot a seller has opened
func (c *Client) GetSellerListings(seller address.Address) (*marketplace.ListingsReply, error) {
	arguments := market.SellerListingsArguments{Seller: seller}
	var reply marketplace.ListingsReply
	if err := c.client.Call("Market.SellerListings", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetUserStats - lifetime trade volume of an address
func (c *Client) GetUserStats(account address.Address) (*marketplace.Stats, error) {
	arguments := market.UserStatsArguments{Account: account}
	var reply marketplace.Stats
	if err := c.client.Call("Market.UserStats", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
