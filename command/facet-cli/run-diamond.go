// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/urfave/cli"

	"github.com/facetmarket/facetd/command/facet-cli/rpccalls"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/diamond"
	"github.com/facetmarket/facetd/selector"
)

// the cut file carries the entries plus an optional
// initialisation call, without the caller
type cutFile struct {
	Entries      []routing.Entry `json:"entries"`
	InitTarget   string          `json:"initTarget"`
	InitSelector string          `json:"initSelector"`
	InitArgs     json.RawMessage `json:"initArgs"`
}

func runCut(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	caller, err := m.callerAddress()
	if err != nil {
		return err
	}

	fileName := c.String("file")
	if fileName == "" {
		return fmt.Errorf("file is required")
	}
	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		return err
	}

	var file cutFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("cut file: %q error: %s", fileName, err)
	}

	arguments := diamond.CutArguments{
		Caller:  caller,
		Entries: file.Entries,
	}
	if file.InitTarget != "" {
		arguments.InitTarget, err = parseAddress(file.InitTarget, "initTarget")
		if err != nil {
			return err
		}
		arguments.InitSelector = selector.FromSignature(file.InitSelector)
		arguments.InitArgs = []byte(file.InitArgs)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Cut(&arguments)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runFacets(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.Facets()
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runFacetSelectors(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	module, err := parseAddress(c.String("module"), "module")
	if err != nil {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.FacetSelectors(module)
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}

func runFacetAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	signature := c.String("signature")
	if signature == "" {
		return fmt.Errorf("signature is required")
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if err != nil {
		return err
	}
	defer client.Close()

	response, err := client.FacetAddress(selector.FromSignature(signature))
	if err != nil {
		return err
	}

	return printJson(m.w, response)
}
