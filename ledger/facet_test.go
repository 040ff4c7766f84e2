// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/ledger"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

// run one facet handler like the dispatcher would
func callHandler(t *testing.T, f facet.Facet, caller address.Address, signature string, params interface{}) ([]byte, error) {
	handler, ok := f.Handlers()[selector.FromSignature(signature)]
	if !ok {
		t.Fatalf("no handler for %q", signature)
	}
	packed, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal error: %s", err)
	}

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	result, err := handler(facet.NewContext(caller), packed)
	if err != nil {
		trx.Abort()
		return nil, err
	}
	if commitErr := trx.Commit(); commitErr != nil {
		t.Fatalf("transaction commit error: %s", commitErr)
	}
	return result, nil
}

func TestDevFacetSeeding(t *testing.T) {
	setup(t)
	defer teardown(t)

	f := ledger.NewDevFacet()

	_, err := callHandler(t, f, alice, ledger.SigMint, ledger.MintParams{
		Collection: collection,
		AssetId:    7,
		Owner:      alice,
	})
	assert.NoError(t, err, "mint error")

	_, err = callHandler(t, f, alice, ledger.SigDeposit, ledger.DepositParams{
		Asset:  assetAddress,
		Holder: bob,
		Amount: 1000,
	})
	assert.NoError(t, err, "deposit error")
	assert.Equal(t, uint64(1000), ledger.Balance(assetAddress, bob), "wrong balance")

	// the approval is granted by the caller, not a params field
	_, err = callHandler(t, f, alice, ledger.SigSetApproval, ledger.SetApprovalParams{
		Collection: collection,
		Operator:   operator,
		Approved:   true,
	})
	assert.NoError(t, err, "set approval error")
	assert.True(t, ledger.Assets{}.IsApprovedFor(collection, alice, operator), "approval not stored")
	assert.False(t, ledger.Assets{}.IsApprovedFor(collection, bob, operator), "approval on wrong owner")

	result, err := callHandler(t, f, bob, ledger.SigOwnerOf, ledger.OwnerOfParams{
		Collection: collection,
		AssetId:    7,
	})
	assert.NoError(t, err, "owner lookup error")
	var ownerReply ledger.OwnerOfReply
	assert.NoError(t, json.Unmarshal(result, &ownerReply), "unmarshal error")
	assert.Equal(t, alice, ownerReply.Owner, "wrong owner")

	result, err = callHandler(t, f, bob, ledger.SigBalance, ledger.BalanceParams{
		Asset:  assetAddress,
		Holder: bob,
	})
	assert.NoError(t, err, "balance error")
	var balanceReply ledger.BalanceReply
	assert.NoError(t, json.Unmarshal(result, &balanceReply), "unmarshal error")
	assert.Equal(t, uint64(1000), balanceReply.Balance, "wrong balance")
}

func TestDevFacetBadParameters(t *testing.T) {
	setup(t)
	defer teardown(t)

	f := ledger.NewDevFacet()

	handler := f.Handlers()[selector.FromSignature(ledger.SigMint)]
	_, err := handler(facet.NewContext(alice), []byte("not json"))
	assert.Equal(t, fault.MissingParameters, err, "expected parameter error")
}
