// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/facetmarket/facetd/command/facet-cli/rpccalls"
)

// commands driving the development ledger on a local or testing chain

func runMint(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	collection, err := parseAddress(c.String("collection"), "collection")
	if err != nil {
		return err
	}
	owner, err := parseAddress(c.String("owner"), "owner")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Mint(caller, collection, c.Uint64("asset"), owner)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runDeposit(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	asset, err := parseAddress(c.String("asset"), "asset")
	if err != nil {
		return err
	}
	holder, err := parseAddress(c.String("holder"), "holder")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Deposit(caller, asset, holder, c.Uint64("amount"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runSetApproval(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	collection, err := parseAddress(c.String("collection"), "collection")
	if err != nil {
		return err
	}
	operator, err := parseAddress(c.String("operator"), "operator")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.SetApproval(caller, collection, operator, !c.Bool("revoke"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	asset, err := parseAddress(c.String("asset"), "asset")
	if err != nil {
		return err
	}
	holder, err := parseAddress(c.String("holder"), "holder")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetBalance(asset, holder)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runTokenOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	collection, err := parseAddress(c.String("collection"), "collection")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetTokenOwner(collection, c.Uint64("asset"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
