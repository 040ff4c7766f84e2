// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/diamond"
	"github.com/facetmarket/facetd/selector"
)

// Cut - apply a batch of routing changes
func (c *Client) Cut(arguments *diamond.CutArguments) (*diamond.CutReply, error) {

	if err := c.printJson("cut request", arguments); err != nil {
		return nil, err
	}

	var reply diamond.CutReply
	if err := c.client.Call("Diamond.Cut", arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Facets - all routed facet addresses
func (c *Client) Facets() (*routing.FacetAddressesReply, error) {
	var reply routing.FacetAddressesReply
	if err := c.client.Call("Diamond.Facets", diamond.FacetsArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// FacetSelectors - selectors routed to one facet
func (c *Client) FacetSelectors(module address.Address) (*routing.FacetSelectorsReply, error) {
	arguments := diamond.FacetSelectorsArguments{Module: module}
	var reply routing.FacetSelectorsReply
	if err := c.client.Call("Diamond.FacetSelectors", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// FacetAddress - module routed for one selector
func (c *Client) FacetAddress(sel selector.Selector) (*routing.FacetAddressReply, error) {
	arguments := diamond.FacetAddressArguments{Selector: sel}
	var reply routing.FacetAddressReply
	if err := c.client.Call("Diamond.FacetAddress", &arguments, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
