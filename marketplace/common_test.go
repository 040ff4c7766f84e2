// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/ledger"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/storage"
)

// common test setup routines

const (
	testingDirectory = "testing"
	databaseFileName = testingDirectory + "/test"
)

var (
	ownerAddress = address.OfName("test.owner")
	selfAddress  = address.OfName("diamond")

	cashAsset  = address.OfName("asset.cash")
	collection = address.OfName("collection.kittens")

	seller    = address.OfName("account.seller")
	buyer     = address.OfName("account.buyer")
	stranger  = address.OfName("account.stranger")
	recipient = address.OfName("account.fees")
)

func setup(t *testing.T) {
	os.RemoveAll(testingDirectory)
	_ = os.Mkdir(testingDirectory, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	err := storage.Initialise(databaseFileName)
	if err != nil {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = routing.Initialise(routing.Handles{
		Owner:      storage.Pool.Owner,
		Selectors:  storage.Pool.Selectors,
		Modules:    storage.Pool.Modules,
		ModuleList: storage.Pool.ModuleList,
	})
	if err != nil {
		t.Fatalf("routing initialise error: %s", err)
	}

	err = ledger.Initialise(ledger.Handles{
		Balances:  storage.Pool.Balances,
		Owners:    storage.Pool.TokenOwners,
		Approvals: storage.Pool.TokenApprovals,
	})
	if err != nil {
		t.Fatalf("ledger initialise error: %s", err)
	}

	err = marketplace.Initialise(marketplace.Handles{
		Listings:    storage.Pool.Listings,
		GlobalIndex: storage.Pool.ListingIndex,
		SellerIndex: storage.Pool.SellerIndex,
		UserStats:   storage.Pool.UserStats,
		Config:      storage.Pool.Config,
	}, ledger.Payments{}, ledger.Assets{}, selfAddress)
	if err != nil {
		t.Fatalf("marketplace initialise error: %s", err)
	}

	// control owner for the config operations
	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	err = routing.Genesis(ownerAddress, nil)
	if err != nil {
		t.Fatalf("genesis error: %s", err)
	}
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}
}

func teardown(t *testing.T) {
	_ = marketplace.Finalise()
	_ = ledger.Finalise()
	_ = routing.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(testingDirectory)
}

// run one marketplace operation like the dispatcher would: inside its
// own transaction, aborted on error
func runOp(t *testing.T, caller address.Address, op func(ctx *facet.Context) error) (*facet.Context, error) {
	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	ctx := facet.NewContext(caller)
	err = op(ctx)
	if err != nil {
		trx.Abort()
		return ctx, err
	}
	commitErr := trx.Commit()
	if commitErr != nil {
		t.Fatalf("transaction commit error: %s", commitErr)
	}
	return ctx, nil
}

// seed one owned and approved token
func mintApproved(t *testing.T, owner address.Address, assetId uint64) {
	_, err := runOp(t, owner, func(ctx *facet.Context) error {
		err := ledger.Mint(collection, assetId, owner)
		if err != nil {
			return err
		}
		return ledger.SetApproval(collection, owner, selfAddress, true)
	})
	if err != nil {
		t.Fatalf("mint error: %s", err)
	}
}

// credit a buyer with spending money
func fund(t *testing.T, account address.Address, amount uint64) {
	_, err := runOp(t, account, func(ctx *facet.Context) error {
		return ledger.Deposit(cashAsset, account, amount)
	})
	if err != nil {
		t.Fatalf("deposit error: %s", err)
	}
}

// set the standard fee configuration
func configure(t *testing.T, feeBasisPoints uint64) {
	_, err := runOp(t, ownerAddress, func(ctx *facet.Context) error {
		err := marketplace.SetPaymentAsset(ctx, cashAsset)
		if err != nil {
			return err
		}
		err = marketplace.SetFeeRecipient(ctx, recipient)
		if err != nil {
			return err
		}
		return marketplace.SetFee(ctx, feeBasisPoints)
	})
	if err != nil {
		t.Fatalf("configure error: %s", err)
	}
}

// list one freshly minted token
func listToken(t *testing.T, owner address.Address, assetId uint64, price uint64) marketplace.ListingId {
	mintApproved(t, owner, assetId)
	var id marketplace.ListingId
	_, err := runOp(t, owner, func(ctx *facet.Context) error {
		var err error
		id, err = marketplace.List(ctx, collection, assetId, price)
		return err
	})
	if err != nil {
		t.Fatalf("list error: %s", err)
	}
	return id
}
