// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/selector"
)

// ModuleForSelector - the facet currently routed for a selector
//
// the null address when the selector is not routed
func ModuleForSelector(sel selector.Selector) address.Address {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := globalData.pool.Selectors.Get(sel.Bytes())
	if buffer == nil {
		return address.Zeroed
	}
	module, _, ok := unpackSelectorRecord(buffer)
	if !ok {
		logger.Panicf("routing: corrupt selector record for: %s", sel)
	}
	return module
}

// FacetAddresses - every facet address with at least one routed
// selector, in list order
func FacetAddresses() []address.Address {
	globalData.RLock()
	defer globalData.RUnlock()

	count, _ := globalData.pool.Modules.GetN(moduleCountKey)
	addresses := make([]address.Address, 0, count)
	for i := uint64(0); i < count; i += 1 {
		buffer := globalData.pool.ModuleList.Get(listPositionKey(i))
		if buffer == nil {
			logger.Panicf("routing: missing module list entry: %d", i)
		}
		module, err := address.FromBytes(buffer)
		if err != nil {
			logger.Panicf("routing: corrupt module list entry: %d", i)
		}
		addresses = append(addresses, module)
	}
	return addresses
}

// FacetSelectors - the selectors routed to one facet address
//
// empty when the address has no routed selectors
func FacetSelectors(module address.Address) []selector.Selector {
	globalData.RLock()
	defer globalData.RUnlock()

	buffer := globalData.pool.Modules.Get(module[:])
	if buffer == nil {
		return nil
	}
	_, selectors, ok := unpackModuleRecord(buffer)
	if !ok {
		logger.Panicf("routing: corrupt module record for: %s", module)
	}
	return selectors
}
