// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing

import (
	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// these run inside the dispatcher's storage transaction; any error
// returned here aborts the whole transaction so no partial routing
// state can ever be observed

// route a currently unrouted selector to a module
func addFunction(module address.Address, sel selector.Selector) error {

	if globalData.pool.Selectors.Has(sel.Bytes()) {
		return fault.DuplicateSelector
	}

	listPosition, selectors, exists := getModuleRecord(module)
	if !exists {
		// first selector for this module: append the address to the
		// global module list
		count, _ := globalData.pool.Modules.GetN(moduleCountKey)
		listPosition = count
		globalData.pool.ModuleList.Put(listPositionKey(listPosition), module[:])
		globalData.pool.Modules.PutN(moduleCountKey, count+1)
		selectors = nil
	}

	position := uint64(len(selectors))
	selectors = append(selectors, sel)

	globalData.pool.Selectors.Put(sel.Bytes(), packSelectorRecord(module, position))
	globalData.pool.Modules.Put(module[:], packModuleRecord(listPosition, selectors))
	return nil
}

// unroute a selector; the module is determined by the existing
// mapping, never by the caller
func removeFunction(sel selector.Selector) (address.Address, error) {

	buffer := globalData.pool.Selectors.Get(sel.Bytes())
	if buffer == nil {
		return address.Zeroed, fault.SelectorNotFound
	}
	module, position, ok := unpackSelectorRecord(buffer)
	if !ok {
		logger.Panicf("routing: corrupt selector record for: %s", sel)
	}

	listPosition, selectors, exists := getModuleRecord(module)
	if !exists || position >= uint64(len(selectors)) {
		logger.Panicf("routing: selector %s points outside module %s", sel, module)
	}

	// swap with the last selector and pop, fixing the position of the
	// selector that moved
	last := uint64(len(selectors) - 1)
	if position != last {
		moved := selectors[last]
		selectors[position] = moved
		globalData.pool.Selectors.Put(moved.Bytes(), packSelectorRecord(module, position))
	}
	selectors = selectors[:last]

	globalData.pool.Selectors.Delete(sel.Bytes())

	if len(selectors) == 0 {
		// module keeps no selectors: drop it from the global module
		// list with the same swap and pop
		removeModule(module, listPosition)
		return module, nil
	}

	globalData.pool.Modules.Put(module[:], packModuleRecord(listPosition, selectors))
	return module, nil
}

// re-route an already routed selector to a different module
func replaceFunction(module address.Address, sel selector.Selector) error {

	buffer := globalData.pool.Selectors.Get(sel.Bytes())
	if buffer == nil {
		return fault.SelectorNotFound
	}
	current, _, ok := unpackSelectorRecord(buffer)
	if !ok {
		logger.Panicf("routing: corrupt selector record for: %s", sel)
	}
	if current == module {
		return fault.RedundantReplace
	}

	// old mapping is removed first so the selector is never routed
	// twice, not even transiently
	_, err := removeFunction(sel)
	if err != nil {
		return err
	}
	return addFunction(module, sel)
}

// drop a module with no remaining selectors from the module list
func removeModule(module address.Address, listPosition uint64) {

	count, _ := globalData.pool.Modules.GetN(moduleCountKey)
	if count == 0 {
		logger.Panicf("routing: removing module %s from empty list", module)
	}

	last := count - 1
	if listPosition != last {
		buffer := globalData.pool.ModuleList.Get(listPositionKey(last))
		if buffer == nil {
			logger.Panicf("routing: missing module list entry: %d", last)
		}
		moved, err := address.FromBytes(buffer)
		if err != nil {
			logger.Panicf("routing: corrupt module list entry: %d", last)
		}

		globalData.pool.ModuleList.Put(listPositionKey(listPosition), moved[:])

		movedListPosition, movedSelectors, exists := getModuleRecord(moved)
		if !exists || movedListPosition != last {
			logger.Panicf("routing: inconsistent list position for module: %s", moved)
		}
		globalData.pool.Modules.Put(moved[:], packModuleRecord(listPosition, movedSelectors))
	}

	globalData.pool.ModuleList.Delete(listPositionKey(last))
	globalData.pool.Modules.PutN(moduleCountKey, last)
	globalData.pool.Modules.Delete(module[:])
}

// fetch and unpack one module record
func getModuleRecord(module address.Address) (uint64, []selector.Selector, bool) {
	buffer := globalData.pool.Modules.Get(module[:])
	if buffer == nil {
		return 0, nil, false
	}
	listPosition, selectors, ok := unpackModuleRecord(buffer)
	if !ok {
		logger.Panicf("routing: corrupt module record for: %s", module)
	}
	return listPosition, selectors, true
}
