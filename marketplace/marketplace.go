// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"encoding/binary"
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/storage"
)

// limits
const (
	// maximum listings per bulk removal
	MaximumBulkCount = 20

	// default page size for paginated queries
	DefaultPageSize = 10

	// fees are in basis points of the sale price
	FeeDivisor = 10000

	// highest settable fee, 10%
	MaximumFeeBasisPoints = 1000
)

// ListingIdSize - size of a listing identifier
const ListingIdSize = 32

// ListingId - derived from collection address and asset number, so one
// asset has exactly one listing slot
type ListingId [ListingIdSize]byte

// NewListingId - derive the identifier of an asset's listing slot
func NewListingId(collection address.Address, assetId uint64) ListingId {
	buffer := make([]byte, address.Size+8)
	copy(buffer, collection.Bytes())
	binary.BigEndian.PutUint64(buffer[address.Size:], assetId)
	return ListingId(sha3.Sum256(buffer))
}

// Bytes - byte slice form of a listing id
func (id ListingId) Bytes() []byte {
	return id[:]
}

// String - hex form of a listing id
func (id ListingId) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - hex encode for JSON
func (id ListingId) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(id)))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - decode hex form
func (id *ListingId) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != ListingIdSize {
		return fault.InvalidListingId
	}
	buffer := make([]byte, ListingIdSize)
	_, err := hex.Decode(buffer, s)
	if err != nil {
		return err
	}
	copy(id[:], buffer)
	return nil
}

// Listing - one listing slot
type Listing struct {
	Id         ListingId       `json:"id"`
	Seller     address.Address `json:"seller"`
	Collection address.Address `json:"collection"`
	AssetId    uint64          `json:"assetId"`
	Price      uint64          `json:"price"`
	CreatedAt  uint64          `json:"createdAt"`
	Active     bool            `json:"active"`

	globalPos uint64
}

// Config - the marketplace fee configuration
type Config struct {
	PaymentAsset   address.Address `json:"paymentAsset"`
	FeeBasisPoints uint64          `json:"feeBasisPoints"`
	FeeRecipient   address.Address `json:"feeRecipient"`
}

// Stats - lifetime trade volume of one address
type Stats struct {
	TotalSales     uint64 `json:"totalSales"`
	TotalPurchases uint64 `json:"totalPurchases"`
}

// PaymentAsset - fungible balance ledger used to settle purchases
type PaymentAsset interface {
	TransferFrom(asset address.Address, from address.Address, to address.Address, amount uint64) error
}

// AssetRegistry - ownership registry of the traded assets
type AssetRegistry interface {
	OwnerOf(collection address.Address, assetId uint64) (address.Address, error)
	IsApprovedFor(collection address.Address, owner address.Address, operator address.Address) bool
	TransferFrom(collection address.Address, operator address.Address, from address.Address, to address.Address, assetId uint64) error
}

// Handles - the pools in use
type Handles struct {
	Listings    storage.Handle
	GlobalIndex storage.Handle
	SellerIndex storage.Handle
	UserStats   storage.Handle
	Config      storage.Handle
}

// record layout constants
const (
	listingRecordSize = 2*address.Size + 3*8 + 8 + 1

	sellerOffset     = 0
	collectionOffset = sellerOffset + address.Size
	assetIdOffset    = collectionOffset + address.Size
	priceOffset      = assetIdOffset + 8
	createdAtOffset  = priceOffset + 8
	globalPosOffset  = createdAtOffset + 8
	activeOffset     = globalPosOffset + 8
)

// special keys, lengths disjoint from data keys in the same pool
var (
	globalCountKey = []byte("N") // in Listings pool (data keys are 32 bytes)
	sellerCountTag = byte('N')   // appended to seller address (data keys are 28 bytes)

	configPaymentKey   = []byte("P")
	configFeeKey       = []byte("F")
	configRecipientKey = []byte("R")
)

// globals
type marketData struct {
	sync.RWMutex

	log *logger.L

	handles Handles
	payment PaymentAsset
	assets  AssetRegistry

	// the operator address listings must approve for transfers
	self address.Address

	// set once during initialise
	initialised bool
}

var globalData marketData

// Initialise - attach pools and collaborators
func Initialise(handles Handles, payment PaymentAsset, assets AssetRegistry, self address.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("marketplace")
	globalData.log.Info("starting…")

	globalData.handles = handles
	globalData.payment = payment
	globalData.assets = assets
	globalData.self = self

	globalData.initialised = true

	return nil
}

// Finalise - shutdown the marketplace
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.initialised = false

	return nil
}

// Self - the operator address used for approval checks
func Self() address.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.self
}

// pack a listing into its pool record
func packListing(listing *Listing) []byte {
	record := make([]byte, listingRecordSize)
	copy(record[sellerOffset:], listing.Seller.Bytes())
	copy(record[collectionOffset:], listing.Collection.Bytes())
	binary.BigEndian.PutUint64(record[assetIdOffset:], listing.AssetId)
	binary.BigEndian.PutUint64(record[priceOffset:], listing.Price)
	binary.BigEndian.PutUint64(record[createdAtOffset:], listing.CreatedAt)
	binary.BigEndian.PutUint64(record[globalPosOffset:], listing.globalPos)
	if listing.Active {
		record[activeOffset] = 1
	}
	return record
}

// unpack a pool record, returns false on a missing or short record
func unpackListing(id ListingId, record []byte) (Listing, bool) {
	if len(record) != listingRecordSize {
		return Listing{}, false
	}
	listing := Listing{
		Id:        id,
		AssetId:   binary.BigEndian.Uint64(record[assetIdOffset:]),
		Price:     binary.BigEndian.Uint64(record[priceOffset:]),
		CreatedAt: binary.BigEndian.Uint64(record[createdAtOffset:]),
		Active:    record[activeOffset] != 0,
	}
	copy(listing.Seller[:], record[sellerOffset:collectionOffset])
	copy(listing.Collection[:], record[collectionOffset:assetIdOffset])
	listing.globalPos = binary.BigEndian.Uint64(record[globalPosOffset:])
	return listing, true
}

// fetch a listing by id
func getListing(id ListingId) (Listing, bool) {
	record := globalData.handles.Listings.Get(id.Bytes())
	if record == nil {
		return Listing{}, false
	}
	return unpackListing(id, record)
}

// store a listing record
func putListing(listing *Listing) {
	globalData.handles.Listings.Put(listing.Id.Bytes(), packListing(listing))
}

// key of the position entry in the global index
func globalIndexKey(position uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, position)
	return key
}

// key of one seller index entry
func sellerIndexKey(seller address.Address, position uint64) []byte {
	key := make([]byte, address.Size+8)
	copy(key, seller.Bytes())
	binary.BigEndian.PutUint64(key[address.Size:], position)
	return key
}

// key of the per-seller listing count
func sellerCountKey(seller address.Address) []byte {
	key := make([]byte, address.Size+1)
	copy(key, seller.Bytes())
	key[address.Size] = sellerCountTag
	return key
}
