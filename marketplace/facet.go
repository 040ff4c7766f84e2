// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"encoding/json"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// registry names of the marketplace facets
const (
	FacetName      = "market"
	AdminFacetName = "market-admin"
)

// canonical signatures of the market facet
const (
	SigList           = "list(collection,assetId,price)"
	SigUpdatePrice    = "updatePrice(id,newPrice)"
	SigPurchase       = "purchase(id)"
	SigRemove         = "remove(id)"
	SigBulkRemove     = "bulkRemove(collections,assetIds)"
	SigListing        = "listing(id)"
	SigPaginated      = "listingsPaginated(offset,limit)"
	SigSellerListings = "sellerListings(seller)"
	SigUserStats      = "userStats(account)"
)

// canonical signatures of the admin facet
const (
	SigSetPaymentAsset = "setPaymentAsset(asset)"
	SigSetFee          = "setFee(feeBasisPoints)"
	SigSetFeeRecipient = "setFeeRecipient(recipient)"
	SigConfig          = "config()"
)

// ListParams - arguments of list
type ListParams struct {
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Price      uint64          `json:"price"`
}

// UpdatePriceParams - arguments of updatePrice
type UpdatePriceParams struct {
	Id       ListingId `json:"id"`
	NewPrice uint64    `json:"newPrice"`
}

// IdParams - arguments of the single-listing operations
type IdParams struct {
	Id ListingId `json:"id"`
}

// BulkRemoveParams - arguments of bulkRemove
type BulkRemoveParams struct {
	Collections []address.Address `json:"collections"`
	AssetIds    []uint64          `json:"assetIds"`
}

// PageParams - arguments of listingsPaginated
type PageParams struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// SellerParams - arguments of sellerListings
type SellerParams struct {
	Seller address.Address `json:"seller"`
}

// AccountParams - arguments of userStats
type AccountParams struct {
	Account address.Address `json:"account"`
}

// AssetParams - arguments of setPaymentAsset
type AssetParams struct {
	Asset address.Address `json:"asset"`
}

// FeeParams - arguments of setFee
type FeeParams struct {
	FeeBasisPoints uint64 `json:"feeBasisPoints"`
}

// RecipientParams - arguments of setFeeRecipient
type RecipientParams struct {
	Recipient address.Address `json:"recipient"`
}

// ListReply - identifier of the created listing
type ListReply struct {
	Id ListingId `json:"id"`
}

// ListingReply - one listing, found is false for an unused slot
type ListingReply struct {
	Listing Listing `json:"listing"`
	Found   bool    `json:"found"`
}

// ListingsReply - a set of listings
type ListingsReply struct {
	Listings []Listing `json:"listings"`
}

// BulkRemoveReply - how many of the batch were removed
type BulkRemoveReply struct {
	Attempted int `json:"attempted"`
	Removed   int `json:"removed"`
}

// MarketFacet - the facet exposing the trading operations
type MarketFacet struct {
	handlers map[selector.Selector]facet.Handler
}

// NewFacet - build the market facet
func NewFacet() *MarketFacet {
	f := &MarketFacet{}
	f.handlers = map[selector.Selector]facet.Handler{
		selector.FromSignature(SigList):           f.list,
		selector.FromSignature(SigUpdatePrice):    f.updatePrice,
		selector.FromSignature(SigPurchase):       f.purchase,
		selector.FromSignature(SigRemove):         f.remove,
		selector.FromSignature(SigBulkRemove):     f.bulkRemove,
		selector.FromSignature(SigListing):        f.listing,
		selector.FromSignature(SigPaginated):      f.paginated,
		selector.FromSignature(SigSellerListings): f.sellerListings,
		selector.FromSignature(SigUserStats):      f.userStats,
	}
	return f
}

// Handlers - the operation table
func (f *MarketFacet) Handlers() map[selector.Selector]facet.Handler {
	return f.handlers
}

func (f *MarketFacet) list(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments ListParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	id, err := List(ctx, arguments.Collection, arguments.AssetId, arguments.Price)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ListReply{Id: id})
}

func (f *MarketFacet) updatePrice(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments UpdatePriceParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := UpdatePrice(ctx, arguments.Id, arguments.NewPrice); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *MarketFacet) purchase(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments IdParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := Purchase(ctx, arguments.Id); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *MarketFacet) remove(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments IdParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := Remove(ctx, arguments.Id); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *MarketFacet) bulkRemove(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments BulkRemoveParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	removed, err := BulkRemove(ctx, arguments.Collections, arguments.AssetIds)
	if err != nil {
		return nil, err
	}
	return json.Marshal(BulkRemoveReply{
		Attempted: len(arguments.Collections),
		Removed:   removed,
	})
}

func (f *MarketFacet) listing(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments IdParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	listing, found := GetListing(arguments.Id)
	return json.Marshal(ListingReply{Listing: listing, Found: found})
}

func (f *MarketFacet) paginated(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments PageParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(ListingsReply{Listings: ListingsPaginated(arguments.Offset, arguments.Limit)})
}

func (f *MarketFacet) sellerListings(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments SellerParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(ListingsReply{Listings: SellerListings(arguments.Seller)})
}

func (f *MarketFacet) userStats(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments AccountParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	return json.Marshal(UserStats(arguments.Account))
}

// AdminFacet - the facet exposing the fee configuration operations
type AdminFacet struct {
	handlers map[selector.Selector]facet.Handler
}

// NewAdminFacet - build the admin facet
func NewAdminFacet() *AdminFacet {
	f := &AdminFacet{}
	f.handlers = map[selector.Selector]facet.Handler{
		selector.FromSignature(SigSetPaymentAsset): f.setPaymentAsset,
		selector.FromSignature(SigSetFee):          f.setFee,
		selector.FromSignature(SigSetFeeRecipient): f.setFeeRecipient,
		selector.FromSignature(SigConfig):          f.config,
	}
	return f
}

// Handlers - the operation table
func (f *AdminFacet) Handlers() map[selector.Selector]facet.Handler {
	return f.handlers
}

func (f *AdminFacet) setPaymentAsset(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments AssetParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := SetPaymentAsset(ctx, arguments.Asset); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *AdminFacet) setFee(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments FeeParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := SetFee(ctx, arguments.FeeBasisPoints); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *AdminFacet) setFeeRecipient(ctx *facet.Context, params []byte) ([]byte, error) {
	var arguments RecipientParams
	if err := json.Unmarshal(params, &arguments); err != nil {
		return nil, fault.MissingParameters
	}
	if err := SetFeeRecipient(ctx, arguments.Recipient); err != nil {
		return nil, err
	}
	return json.Marshal(true)
}

func (f *AdminFacet) config(ctx *facet.Context, params []byte) ([]byte, error) {
	return json.Marshal(GetConfig())
}
