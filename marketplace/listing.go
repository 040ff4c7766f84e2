// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"time"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
)

// event topics
const (
	TopicListed       = "market.listed"
	TopicPriceUpdated = "market.price-updated"
	TopicPurchased    = "market.purchased"
	TopicRemoved      = "market.listing-removed"
	TopicBulkRemoved  = "market.bulk-removed"
	TopicConfig       = "market.config-updated"
)

// ListedEvent - a listing became active
type ListedEvent struct {
	Listing Listing `json:"listing"`
}

// PriceUpdatedEvent - an active listing changed price
type PriceUpdatedEvent struct {
	Id       ListingId `json:"id"`
	OldPrice uint64    `json:"oldPrice"`
	NewPrice uint64    `json:"newPrice"`
}

// ListingRemovedEvent - a listing was deactivated by its seller
type ListingRemovedEvent struct {
	Id     ListingId       `json:"id"`
	Seller address.Address `json:"seller"`
}

// BulkRemovedEvent - outcome of a bulk removal
type BulkRemovedEvent struct {
	Seller    address.Address `json:"seller"`
	Attempted int             `json:"attempted"`
	Removed   int             `json:"removed"`
}

// List - activate the listing slot of an asset
//
// the caller must own the asset and have approved the marketplace
// operator for transfers; a slot left by an earlier sale or removal is
// reused, keeping its place in the global index
func List(ctx *facet.Context, collection address.Address, assetId uint64, price uint64) (ListingId, error) {
	globalData.Lock()
	defer globalData.Unlock()

	var id ListingId

	if !globalData.initialised {
		return id, fault.NotInitialised
	}
	if price == 0 {
		return id, fault.ZeroPrice
	}

	seller := ctx.Caller

	owner, err := globalData.assets.OwnerOf(collection, assetId)
	if err != nil || owner != seller {
		return id, fault.NotOwner
	}
	if !globalData.assets.IsApprovedFor(collection, seller, globalData.self) {
		return id, fault.NotApproved
	}

	id = NewListingId(collection, assetId)

	listing, found := getListing(id)
	if found && listing.Active {
		return id, fault.ListingAlreadyActive
	}

	if !found {
		// a fresh slot goes at the end of the global index
		position, _ := globalData.handles.Listings.GetN(globalCountKey)
		globalData.handles.GlobalIndex.Put(globalIndexKey(position), id.Bytes())
		globalData.handles.Listings.PutN(globalCountKey, position+1)
		listing.globalPos = position
	}

	listing.Id = id
	listing.Seller = seller
	listing.Collection = collection
	listing.AssetId = assetId
	listing.Price = price
	listing.CreatedAt = uint64(time.Now().Unix())
	listing.Active = true
	putListing(&listing)

	// append to the seller history and store the reverse entry for
	// O(1) deactivation
	sellerPosition, _ := globalData.handles.SellerIndex.GetN(sellerCountKey(seller))
	globalData.handles.SellerIndex.Put(sellerIndexKey(seller, sellerPosition), id.Bytes())
	globalData.handles.SellerIndex.PutN(id.Bytes(), sellerPosition)
	globalData.handles.SellerIndex.PutN(sellerCountKey(seller), sellerPosition+1)

	ctx.Emit(TopicListed, ListedEvent{Listing: listing})

	globalData.log.Debugf("list: %s asset %d price %d by %s", collection, assetId, price, seller)

	return id, nil
}

// UpdatePrice - change the price of an active listing
func UpdatePrice(ctx *facet.Context, id ListingId, newPrice uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if newPrice == 0 {
		return fault.ZeroPrice
	}

	listing, found := getListing(id)
	if !found || !listing.Active {
		return fault.ListingNotActive
	}
	if listing.Seller != ctx.Caller {
		return fault.NotSeller
	}

	oldPrice := listing.Price
	listing.Price = newPrice
	putListing(&listing)

	ctx.Emit(TopicPriceUpdated, PriceUpdatedEvent{
		Id:       id,
		OldPrice: oldPrice,
		NewPrice: newPrice,
	})

	return nil
}

// Remove - deactivate an active listing
func Remove(ctx *facet.Context, id ListingId) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	return removeListing(ctx, id)
}

// BulkRemove - deactivate up to MaximumBulkCount listings in one call
//
// individual failures are logged and skipped so one stale id cannot
// block the rest of the batch
func BulkRemove(ctx *facet.Context, collections []address.Address, assetIds []uint64) (int, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return 0, fault.NotInitialised
	}
	if len(collections) != len(assetIds) {
		return 0, fault.ArrayLengthMismatch
	}
	if len(collections) == 0 {
		return 0, fault.EmptyArrays
	}
	if len(collections) > MaximumBulkCount {
		return 0, fault.MaxBulkLimitExceeded
	}

	removed := 0
	for i, collection := range collections {
		id := NewListingId(collection, assetIds[i])
		err := removeListing(ctx, id)
		if err != nil {
			globalData.log.Warnf("bulk remove: %s asset %d skipped: %s", collection, assetIds[i], err)
			continue
		}
		removed += 1
	}

	ctx.Emit(TopicBulkRemoved, BulkRemovedEvent{
		Seller:    ctx.Caller,
		Attempted: len(collections),
		Removed:   removed,
	})

	return removed, nil
}

// deactivate one listing, lock already held
func removeListing(ctx *facet.Context, id ListingId) error {
	listing, found := getListing(id)
	if !found || !listing.Active {
		return fault.ListingNotActive
	}
	if listing.Seller != ctx.Caller {
		return fault.NotListingSeller
	}

	deactivate(&listing)

	ctx.Emit(TopicRemoved, ListingRemovedEvent{
		Id:     id,
		Seller: listing.Seller,
	})

	return nil
}

// mark a listing inactive and drop its reverse index entry
func deactivate(listing *Listing) {
	listing.Active = false
	putListing(listing)
	globalData.handles.SellerIndex.Delete(listing.Id.Bytes())
}
