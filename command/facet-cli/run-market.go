// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/command/facet-cli/rpccalls"
	"github.com/facetmarket/facetd/marketplace"
)

func parseListingId(s string) (marketplace.ListingId, error) {
	var id marketplace.ListingId
	if s == "" {
		return id, fmt.Errorf("id is required")
	}
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return id, fmt.Errorf("id: %q error: %s", s, err)
	}
	return id, nil
}

func runList(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	collection, err := parseAddress(c.String("collection"), "collection")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.List(caller, collection, c.Uint64("asset"), c.Uint64("price"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runUpdatePrice(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	id, err := parseListingId(c.String("id"))
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.UpdatePrice(caller, id, c.Uint64("price"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runPurchase(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	id, err := parseListingId(c.String("id"))
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Purchase(caller, id)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	id, err := parseListingId(c.String("id"))
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Remove(caller, id)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runBulkRemove(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}

	collectionTexts := c.StringSlice("collection")
	assetTexts := c.StringSlice("asset")

	collections := make([]address.Address, len(collectionTexts))
	for i, s := range collectionTexts {
		collections[i], err = parseAddress(s, "collection")
		if err != nil {
			return err
		}
	}
	assetIds := make([]uint64, len(assetTexts))
	for i, s := range assetTexts {
		assetIds[i], err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("asset: %q error: %s", s, err)
		}
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.BulkRemove(caller, collections, assetIds)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runListing(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := parseListingId(c.String("id"))
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetListing(id)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runListings(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetListings(c.Uint64("offset"), c.Uint64("limit"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runSellerListings(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	seller, err := parseAddress(c.String("seller"), "seller")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetSellerListings(seller)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runUserStats(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	account, err := parseAddress(c.String("account"), "account")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetUserStats(account)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
