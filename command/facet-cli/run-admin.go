// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/facetmarket/facetd/command/facet-cli/rpccalls"
)

func runSetPaymentAsset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	asset, err := parseAddress(c.String("asset"), "asset")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.SetPaymentAsset(caller, asset)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runSetFee(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.SetFee(caller, c.Uint64("fee"))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runSetFeeRecipient(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	recipient, err := parseAddress(c.String("recipient"), "recipient")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.SetFeeRecipient(caller, recipient)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runTransferOwnership(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}
	newOwner, err := parseAddress(c.String("new-owner"), "new-owner")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.TransferOwnership(caller, newOwner)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runConfig(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetConfig()
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runOwner(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.GetOwner()
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
