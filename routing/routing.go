// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package routing - the selector routing table
//
// The table is a bidirectional mapping between function selectors and
// the facet address implementing them, together with an ordered list
// of all routed facet addresses for introspection.  The cut protocol
// (cut.go) is the only writer; the dispatcher reads it on every call.
//
// Storage layout
//
//	diamond.selector    selector -> module address ++ position
//	diamond.module      address  -> list position ++ selectors
//	                    "N"      -> number of routed modules
//	diamond.modulelist  position -> module address
//	diamond.owner       "O"      -> control owner address
//
// "position" is the selector's index inside its module's selector
// list; it is kept exact so removal is a swap with the last entry and
// a pop, never a scan.
package routing

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

// Action - what a cut entry does to its selectors
type Action uint8

// all possible cut actions
const (
	Add Action = iota
	Replace
	Remove
)

// String - action represented as a string
func (a Action) String() string {
	switch a {
	case Add:
		return "add"
	case Replace:
		return "replace"
	case Remove:
		return "remove"
	default:
		return "*unknown*"
	}
}

// Entry - one element of a cut batch
type Entry struct {
	Action    Action              `json:"action"`
	Module    address.Address     `json:"module"`
	Selectors []selector.Selector `json:"selectors"`
}

// Handles - the pools the routing table lives in
type Handles struct {
	Owner      storage.Handle
	Selectors  storage.Handle
	Modules    storage.Handle
	ModuleList storage.Handle
}

var globalData struct {
	sync.RWMutex
	log  *logger.L
	pool Handles

	// set once during initialise
	initialised bool
}

// Initialise - attach the routing table to its pools
func Initialise(pool Handles) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("routing")
	globalData.log.Info("starting…")

	globalData.pool = pool
	globalData.initialised = true

	return nil
}

// Finalise - detach from the pools
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.pool = Handles{}
	globalData.initialised = false

	return nil
}

// key for the control owner record
var ownerKey = []byte("O")

// key for the module count record
var moduleCountKey = []byte("N")

// selector record: module address ++ big endian position
func packSelectorRecord(module address.Address, position uint64) []byte {
	buffer := make([]byte, 0, address.Size+8)
	buffer = append(buffer, module[:]...)
	p := make([]byte, 8)
	binary.BigEndian.PutUint64(p, position)
	return append(buffer, p...)
}

func unpackSelectorRecord(buffer []byte) (address.Address, uint64, bool) {
	if len(buffer) != address.Size+8 {
		return address.Zeroed, 0, false
	}
	module, _ := address.FromBytes(buffer[:address.Size])
	position := binary.BigEndian.Uint64(buffer[address.Size:])
	return module, position, true
}

// module record: big endian list position ++ selectors
func packModuleRecord(listPosition uint64, selectors []selector.Selector) []byte {
	buffer := make([]byte, 8, 8+selector.Size*len(selectors))
	binary.BigEndian.PutUint64(buffer, listPosition)
	for _, s := range selectors {
		buffer = append(buffer, s[:]...)
	}
	return buffer
}

func unpackModuleRecord(buffer []byte) (uint64, []selector.Selector, bool) {
	if len(buffer) < 8 || (len(buffer)-8)%selector.Size != 0 {
		return 0, nil, false
	}
	listPosition := binary.BigEndian.Uint64(buffer[:8])
	n := (len(buffer) - 8) / selector.Size
	selectors := make([]selector.Selector, n)
	for i := 0; i < n; i += 1 {
		copy(selectors[i][:], buffer[8+i*selector.Size:])
	}
	return listPosition, selectors, true
}

// big endian key for a module list position
func listPositionKey(position uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, position)
	return key
}
