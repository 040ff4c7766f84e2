// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"github.com/facetmarket/facetd/address"
)

// GetListing - fetch one listing slot
func GetListing(id ListingId) (Listing, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Listing{}, false
	}
	return getListing(id)
}

// ListingCount - number of listing slots ever created
func ListingCount() uint64 {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return 0
	}
	count, _ := globalData.handles.Listings.GetN(globalCountKey)
	return count
}

// ListingsPaginated - a page of the global listing index
//
// limit zero selects the default page size; an offset past the end
// returns an empty page, never an error
func ListingsPaginated(offset uint64, limit uint64) []Listing {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}
	if limit == 0 {
		limit = DefaultPageSize
	}

	count, _ := globalData.handles.Listings.GetN(globalCountKey)
	if offset >= count {
		return []Listing{}
	}
	end := offset + limit
	if end > count || end < offset { // clamp, also on add overflow
		end = count
	}

	page := make([]Listing, 0, end-offset)
	for position := offset; position < end; position += 1 {
		record := globalData.handles.GlobalIndex.Get(globalIndexKey(position))
		if len(record) != ListingIdSize {
			continue
		}
		var id ListingId
		copy(id[:], record)
		if listing, ok := getListing(id); ok {
			page = append(page, listing)
		}
	}
	return page
}

// SellerListings - every listing slot a seller has ever opened
func SellerListings(seller address.Address) []Listing {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return nil
	}

	count, _ := globalData.handles.SellerIndex.GetN(sellerCountKey(seller))
	listings := make([]Listing, 0, count)
	for position := uint64(0); position < count; position += 1 {
		record := globalData.handles.SellerIndex.Get(sellerIndexKey(seller, position))
		if len(record) != ListingIdSize {
			continue
		}
		var id ListingId
		copy(id[:], record)
		if listing, ok := getListing(id); ok {
			listings = append(listings, listing)
		}
	}
	return listings
}

// UserStats - lifetime trade volume of an address
func UserStats(account address.Address) Stats {
	globalData.RLock()
	defer globalData.RUnlock()

	if !globalData.initialised {
		return Stats{}
	}
	return getStats(account)
}
