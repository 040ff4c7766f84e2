// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import (
	"encoding/json"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/rpc/ratelimit"
	"github.com/facetmarket/facetd/selector"
)

const (
	rateLimitMarket = 200
	rateBurstMarket = 100
)

// Market - type for RPC calls
type Market struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	Dispatcher   dispatcher.Dispatcher
	IsNormalMode func(mode.Mode) bool
}

// New - create the market service
func New(log *logger.L, d dispatcher.Dispatcher, isNormalMode func(mode.Mode) bool) *Market {
	return &Market{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitMarket, rateBurstMarket),
		Dispatcher:   d,
		IsNormalMode: isNormalMode,
	}
}

// OKReply - result of a state-changing operation
type OKReply struct {
	OK bool `json:"ok"`
}

// one gate for every state-changing operation
func (m *Market) mutationAllowed() error {
	if err := ratelimit.Limit(m.Limiter); err != nil {
		return err
	}
	if !m.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStart
	}
	return nil
}

// dispatch one market operation by signature
func (m *Market) dispatch(caller address.Address, signature string, params interface{}, reply interface{}) error {
	packed, err := json.Marshal(params)
	if err != nil {
		return err
	}
	result, err := m.Dispatcher.Dispatch(caller, selector.FromSignature(signature), packed)
	if err != nil {
		return err
	}
	if reply == nil {
		return nil
	}
	return json.Unmarshal(result, reply)
}

// ListArguments - open a listing
type ListArguments struct {
	Caller     address.Address `json:"caller"`
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Price      uint64          `json:"price"`
}

// List - open a listing for an owned asset
func (m *Market) List(arguments *ListArguments, reply *marketplace.ListReply) error {
	if err := m.mutationAllowed(); err != nil {
		return err
	}
	return m.dispatch(arguments.Caller, marketplace.SigList, marketplace.ListParams{
		Collection: arguments.Collection,
		AssetId:    arguments.AssetId,
		Price:      arguments.Price,
	}, reply)
}

// UpdatePriceArguments - change an asking price
type UpdatePriceArguments struct {
	Caller   address.Address       `json:"caller"`
	Id       marketplace.ListingId `json:"id"`
	NewPrice uint64                `json:"newPrice"`
}

// UpdatePrice - change the asking price of an active listing
func (m *Market) UpdatePrice(arguments *UpdatePriceArguments, reply *OKReply) error {
	if err := m.mutationAllowed(); err != nil {
		return err
	}
	err := m.dispatch(arguments.Caller, marketplace.SigUpdatePrice, marketplace.UpdatePriceParams{
		Id:       arguments.Id,
		NewPrice: arguments.NewPrice,
	}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// IdArguments - operations addressing one listing
type IdArguments struct {
	Caller address.Address       `json:"caller"`
	Id     marketplace.ListingId `json:"id"`
}

// Purchase - buy an active listing at its asking price
func (m *Market) Purchase(arguments *IdArguments, reply *OKReply) error {
	if err := m.mutationAllowed(); err != nil {
		return err
	}
	err := m.dispatch(arguments.Caller, marketplace.SigPurchase, marketplace.IdParams{Id: arguments.Id}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// Remove - deactivate an active listing
func (m *Market) Remove(arguments *IdArguments, reply *OKReply) error {
	if err := m.mutationAllowed(); err != nil {
		return err
	}
	err := m.dispatch(arguments.Caller, marketplace.SigRemove, marketplace.IdParams{Id: arguments.Id}, nil)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// BulkRemoveArguments - deactivate a batch of listings
type BulkRemoveArguments struct {
	Caller      address.Address   `json:"caller"`
	Collections []address.Address `json:"collections"`
	AssetIds    []uint64          `json:"assetIds"`
}

// BulkRemove - deactivate a batch of listings
func (m *Market) BulkRemove(arguments *BulkRemoveArguments, reply *marketplace.BulkRemoveReply) error {
	if err := m.mutationAllowed(); err != nil {
		return err
	}
	return m.dispatch(arguments.Caller, marketplace.SigBulkRemove, marketplace.BulkRemoveParams{
		Collections: arguments.Collections,
		AssetIds:    arguments.AssetIds,
	}, reply)
}

// ListingArguments - fetch one listing
type ListingArguments struct {
	Id marketplace.ListingId `json:"id"`
}

// Listing - fetch one listing slot
func (m *Market) Listing(arguments *ListingArguments, reply *marketplace.ListingReply) error {
	if err := ratelimit.Limit(m.Limiter); err != nil {
		return err
	}
	return m.dispatch(address.Zeroed, marketplace.SigListing, marketplace.IdParams{Id: arguments.Id}, reply)
}

// PaginatedArguments - fetch a page of the global index
type PaginatedArguments struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Paginated - a page of the global listing index
func (m *Market) Paginated(arguments *PaginatedArguments, reply *marketplace.ListingsReply) error {
	if err := ratelimit.Limit(m.Limiter); err != nil {
		return err
	}
	return m.dispatch(address.Zeroed, marketplace.SigPaginated, marketplace.PageParams{
		Offset: arguments.Offset,
		Limit:  arguments.Limit,
	}, reply)
}

// SellerListingsArguments - fetch the history of one seller
type SellerListingsArguments struct {
	Seller address.Address `json:"seller"`
}

// SellerListings - every listing slot a seller has opened
func (m *Market) SellerListings(arguments *SellerListingsArguments, reply *marketplace.ListingsReply) error {
	if err := ratelimit.Limit(m.Limiter); err != nil {
		return err
	}
	return m.dispatch(address.Zeroed, marketplace.SigSellerListings, marketplace.SellerParams{Seller: arguments.Seller}, reply)
}

// UserStatsArguments - fetch the trade volume of an address
type UserStatsArguments struct {
	Account address.Address `json:"account"`
}

// UserStats - lifetime trade volume of an address
func (m *Market) UserStats(arguments *UserStatsArguments, reply *marketplace.Stats) error {
	if err := ratelimit.Limit(m.Limiter); err != nil {
		return err
	}
	return m.dispatch(address.Zeroed, marketplace.SigUserStats, marketplace.AccountParams{Account: arguments.Account}, reply)
}
