// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/counter"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/messagebus"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

// Dispatcher - the call entry point, defined as an interface to allow
// mocking in RPC tests
type Dispatcher interface {
	Dispatch(caller address.Address, sel selector.Selector, params []byte) ([]byte, error)
}

// globals for background process
type dispatcherData struct {
	sync.Mutex // to serialise dispatches

	log *logger.L

	// call statistics
	dispatched counter.Counter
	failed     counter.Counter

	// set once during initialise
	initialised bool
}

// global data
var globalData dispatcherData

// Initialise - setup the dispatcher
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	globalData.log = logger.New("dispatcher")
	globalData.log.Info("starting…")

	globalData.initialised = true

	return nil
}

// Finalise - shutdown the dispatcher
func Finalise() error {
	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.initialised = false

	return nil
}

// Dispatch - route one call through the selector table and run it
// inside a single storage transaction
//
// any handler error aborts the transaction so no partial state can
// survive, and the events collected by the call context are only
// published after a successful commit
func Dispatch(caller address.Address, sel selector.Selector, params []byte) ([]byte, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return nil, fault.NotInitialised
	}

	log := globalData.log

	module := routing.ModuleForSelector(sel)
	if module.IsZero() {
		globalData.failed.Increment()
		return nil, fault.UnknownFunction
	}

	handler, ok := facet.HandlerFor(module, sel)
	if !ok {
		globalData.failed.Increment()
		return nil, fault.UnknownFunction
	}

	trx, err := storage.NewDBTransaction()
	if err != nil {
		globalData.failed.Increment()
		return nil, err
	}

	ctx := facet.NewContext(caller)

	result, err := handler(ctx, params)
	if err != nil {
		trx.Abort()
		globalData.failed.Increment()
		log.Debugf("dispatch %s on %s error: %s", sel, module, err)
		return nil, err
	}

	err = trx.Commit()
	if err != nil {
		globalData.failed.Increment()
		log.Errorf("dispatch %s on %s commit error: %s", sel, module, err)
		return nil, err
	}

	for _, event := range ctx.Events() {
		messagebus.Send(event.Topic, event.Item)
	}

	globalData.dispatched.Increment()
	return result, nil
}

// Counters - dispatch statistics
//
// returns: successful calls, failed calls
func Counters() (uint64, uint64) {
	return globalData.dispatched.Uint64(), globalData.failed.Uint64()
}

// Shared - the production Dispatcher backed by the package globals
type Shared struct{}

// Dispatch - run one call
func (Shared) Dispatch(caller address.Address, sel selector.Selector, params []byte) ([]byte, error) {
	return Dispatch(caller, sel, params)
}
