// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package diamond

import (
	"encoding/json"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/ratelimit"
	"github.com/facetmarket/facetd/selector"
)

const (
	rateLimitDiamond = 200
	rateBurstDiamond = 100
)

// Diamond - type for RPC calls
type Diamond struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	Dispatcher   dispatcher.Dispatcher
	IsNormalMode func(mode.Mode) bool
}

// New - create the diamond service
func New(log *logger.L, d dispatcher.Dispatcher, isNormalMode func(mode.Mode) bool) *Diamond {
	return &Diamond{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitDiamond, rateBurstDiamond),
		Dispatcher:   d,
		IsNormalMode: isNormalMode,
	}
}

// CutArguments - a routing change request
type CutArguments struct {
	Caller       address.Address   `json:"caller"`
	Entries      []routing.Entry   `json:"entries"`
	InitTarget   address.Address   `json:"initTarget"`
	InitSelector selector.Selector `json:"initSelector"`
	InitArgs     []byte            `json:"initArgs"`
}

// CutReply - result of a routing change
type CutReply struct {
	OK bool `json:"ok"`
}

// Cut - apply a batch of routing changes
func (d *Diamond) Cut(arguments *CutArguments, reply *CutReply) error {
	if err := ratelimit.Limit(d.Limiter); err != nil {
		return err
	}
	if !d.IsNormalMode(mode.Normal) {
		return fault.NotAvailableDuringStart
	}

	params, err := json.Marshal(routing.CutParams{
		Entries:      arguments.Entries,
		InitTarget:   arguments.InitTarget,
		InitSelector: arguments.InitSelector,
		InitArgs:     arguments.InitArgs,
	})
	if err != nil {
		return err
	}

	_, err = d.Dispatcher.Dispatch(arguments.Caller, selector.FromSignature(routing.SigCut), params)
	if err != nil {
		return err
	}
	reply.OK = true
	return nil
}

// FacetsArguments - empty arguments for the facet list
type FacetsArguments struct{}

// Facets - all routed facet addresses
func (d *Diamond) Facets(arguments *FacetsArguments, reply *routing.FacetAddressesReply) error {
	if err := ratelimit.Limit(d.Limiter); err != nil {
		return err
	}

	result, err := d.Dispatcher.Dispatch(address.Zeroed, selector.FromSignature(routing.SigFacetAddresses), nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, reply)
}

// FacetSelectorsArguments - facet to inspect
type FacetSelectorsArguments struct {
	Module address.Address `json:"module"`
}

// FacetSelectors - selectors routed to one facet
func (d *Diamond) FacetSelectors(arguments *FacetSelectorsArguments, reply *routing.FacetSelectorsReply) error {
	if err := ratelimit.Limit(d.Limiter); err != nil {
		return err
	}

	params, err := json.Marshal(routing.FacetSelectorsParams{Module: arguments.Module})
	if err != nil {
		return err
	}
	result, err := d.Dispatcher.Dispatch(address.Zeroed, selector.FromSignature(routing.SigFacetSelectors), params)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, reply)
}

// FacetAddressArguments - selector to resolve
type FacetAddressArguments struct {
	Selector selector.Selector `json:"selector"`
}

// FacetAddress - module routed for one selector, zero when unrouted
func (d *Diamond) FacetAddress(arguments *FacetAddressArguments, reply *routing.FacetAddressReply) error {
	if err := ratelimit.Limit(d.Limiter); err != nil {
		return err
	}

	params, err := json.Marshal(routing.FacetAddressParams{Selector: arguments.Selector})
	if err != nil {
		return err
	}
	result, err := d.Dispatcher.Dispatch(address.Zeroed, selector.FromSignature(routing.SigFacetAddress), params)
	if err != nil {
		return err
	}
	return json.Unmarshal(result, reply)
}
