// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"encoding/binary"
	"math/bits"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
)

// PurchasedEvent - a listing was sold
type PurchasedEvent struct {
	Id     ListingId       `json:"id"`
	Buyer  address.Address `json:"buyer"`
	Seller address.Address `json:"seller"`
	Price  uint64          `json:"price"`
	Fee    uint64          `json:"fee"`
}

// Purchase - buy an active listing at its asking price
//
// settlement order is seller payment, fee payment, asset transfer; a
// failure at any step returns its typed error and the surrounding
// storage transaction aborts, so the partial payments are discarded
func Purchase(ctx *facet.Context, id ListingId) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	err := ctx.EnterGuard()
	if err != nil {
		return err
	}
	defer ctx.ExitGuard()

	listing, found := getListing(id)
	if !found || !listing.Active {
		return fault.ListingNotActive
	}

	buyer := ctx.Caller
	seller := listing.Seller
	if buyer == seller {
		return fault.CannotBuyOwnListing
	}

	config := getConfig()

	fee := feeFor(listing.Price, config.FeeBasisPoints)
	sellerAmount := listing.Price - fee

	err = globalData.payment.TransferFrom(config.PaymentAsset, buyer, seller, sellerAmount)
	if err != nil {
		globalData.log.Debugf("purchase %s: seller payment: %s", id, err)
		return fault.PaymentToSellerFailed
	}

	if fee > 0 {
		err = globalData.payment.TransferFrom(config.PaymentAsset, buyer, config.FeeRecipient, fee)
		if err != nil {
			globalData.log.Debugf("purchase %s: fee payment: %s", id, err)
			return fault.FeePaymentFailed
		}
	}

	err = globalData.assets.TransferFrom(listing.Collection, globalData.self, seller, buyer, listing.AssetId)
	if err != nil {
		globalData.log.Debugf("purchase %s: asset transfer: %s", id, err)
		return fault.NFTTransferFailed
	}

	deactivate(&listing)
	addSale(seller, listing.Price)
	addPurchase(buyer, listing.Price)

	ctx.Emit(TopicPurchased, PurchasedEvent{
		Id:     id,
		Buyer:  buyer,
		Seller: seller,
		Price:  listing.Price,
		Fee:    fee,
	})

	globalData.log.Infof("purchase: %s for %d by %s", id, listing.Price, buyer)

	return nil
}

// feeFor - floor(price * feeBasisPoints / FeeDivisor)
//
// 128 bit intermediate so the product cannot overflow at any uint64
// price
func feeFor(price uint64, feeBasisPoints uint64) uint64 {
	if feeBasisPoints == 0 {
		return 0
	}
	hi, lo := bits.Mul64(price, feeBasisPoints)
	fee, _ := bits.Div64(hi, lo, FeeDivisor)
	return fee
}

// stats records: totalSales ‖ totalPurchases, 16 bytes
const statsRecordSize = 16

func getStats(account address.Address) Stats {
	record := globalData.handles.UserStats.Get(account.Bytes())
	if len(record) != statsRecordSize {
		return Stats{}
	}
	return Stats{
		TotalSales:     binary.BigEndian.Uint64(record[:8]),
		TotalPurchases: binary.BigEndian.Uint64(record[8:]),
	}
}

func putStats(account address.Address, stats Stats) {
	record := make([]byte, statsRecordSize)
	binary.BigEndian.PutUint64(record[:8], stats.TotalSales)
	binary.BigEndian.PutUint64(record[8:], stats.TotalPurchases)
	globalData.handles.UserStats.Put(account.Bytes(), record)
}

func addSale(account address.Address, amount uint64) {
	stats := getStats(account)
	stats.TotalSales += amount
	putStats(account, stats)
}

func addPurchase(account address.Address, amount uint64) {
	stats := getStats(account)
	stats.TotalPurchases += amount
	putStats(account, stats)
}
