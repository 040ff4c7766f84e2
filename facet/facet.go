// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package facet - registry of deployed logic modules
//
// A facet is an independently written unit of logic addressed by a
// deterministic address.  The registry is the Go rendition of "code
// deployed at an address": the cut protocol refuses to route a
// selector to an address that is not registered here, and the
// dispatcher resolves addresses back to handler functions.
package facet

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/selector"
)

// Handler - one operation exposed by a facet
//
// the handler runs inside the dispatcher's storage transaction and
// with the original caller's identity: a delegated execution, not a
// remote call
type Handler func(ctx *Context, params []byte) ([]byte, error)

// Facet - a deployed unit of logic
type Facet interface {
	Handlers() map[selector.Selector]Handler
}

var globalData struct {
	sync.RWMutex
	log      *logger.L
	deployed map[address.Address]Facet

	// set once during initialise
	initialised bool
}

// Initialise - set up the registry
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("facet")
	globalData.log.Info("starting…")

	globalData.deployed = make(map[address.Address]Facet)
	globalData.initialised = true

	return nil
}

// Finalise - drop the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.deployed = nil
	globalData.initialised = false

	return nil
}

// Register - deploy a facet at an address
func Register(addr address.Address, f Facet) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}
	if addr.IsZero() {
		return fault.InvalidAddress
	}

	globalData.log.Infof("register: %s", addr)
	globalData.deployed[addr] = f
	return nil
}

// IsDeployed - check an address holds a registered facet
func IsDeployed(addr address.Address) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	_, ok := globalData.deployed[addr]
	return ok
}

// HandlerFor - resolve one operation of a deployed facet
//
// second result is false when either the address holds no facet or
// the facet does not expose the selector
func HandlerFor(addr address.Address, sel selector.Selector) (Handler, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	f, ok := globalData.deployed[addr]
	if !ok {
		return nil, false
	}
	h, ok := f.Handlers()[sel]
	return h, ok
}
