// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dispatcher_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/fault"
	"github.com/facetmarket/facetd/messagebus"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

const (
	testingDirectory = "testing"
	databaseFileName = testingDirectory + "/test"
)

var (
	ownerAddress  = address.OfName("test.owner")
	callerAddress = address.OfName("test.caller")

	selEcho   = selector.FromSignature("echo(bytes)")
	selStore  = selector.FromSignature("store(bytes)")
	selBroken = selector.FromSignature("broken()")
	selNone   = selector.FromSignature("none()")

	storeKey = []byte("k")
)

// a facet that echoes, stores and fails on demand
type testFacet struct{}

func (testFacet) Handlers() map[selector.Selector]facet.Handler {
	return map[selector.Selector]facet.Handler{
		selEcho: func(ctx *facet.Context, params []byte) ([]byte, error) {
			ctx.Emit("test.echo", string(params))
			return params, nil
		},
		selStore: func(ctx *facet.Context, params []byte) ([]byte, error) {
			storage.Pool.TestData.Put(storeKey, params)
			return nil, nil
		},
		selBroken: func(ctx *facet.Context, params []byte) ([]byte, error) {
			storage.Pool.TestData.Put(storeKey, []byte("partial"))
			return nil, fault.InvalidCount
		},
	}
}

func setup(t *testing.T) {
	os.RemoveAll(testingDirectory)
	_ = os.Mkdir(testingDirectory, 0700)

	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirectory,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})

	err := storage.Initialise(databaseFileName)
	if err != nil {
		t.Fatalf("storage initialise error: %s", err)
	}

	err = facet.Initialise()
	if err != nil {
		t.Fatalf("facet initialise error: %s", err)
	}

	err = routing.Initialise(routing.Handles{
		Owner:      storage.Pool.Owner,
		Selectors:  storage.Pool.Selectors,
		Modules:    storage.Pool.Modules,
		ModuleList: storage.Pool.ModuleList,
	})
	if err != nil {
		t.Fatalf("routing initialise error: %s", err)
	}

	module := address.OfName("module.test")
	err = facet.Register(module, testFacet{})
	if err != nil {
		t.Fatalf("register error: %s", err)
	}

	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	err = routing.Genesis(ownerAddress, []routing.Entry{{
		Action:    routing.Add,
		Module:    module,
		Selectors: []selector.Selector{selEcho, selStore, selBroken},
	}})
	if err != nil {
		t.Fatalf("genesis error: %s", err)
	}
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}

	err = dispatcher.Initialise()
	if err != nil {
		t.Fatalf("dispatcher initialise error: %s", err)
	}

	drainMessagebus()
}

// the bus queue is process global, so flush residue between tests
func drainMessagebus() {
	for {
		select {
		case <-messagebus.Chan():
		default:
			return
		}
	}
}

func teardown(t *testing.T) {
	_ = dispatcher.Finalise()
	_ = routing.Finalise()
	_ = facet.Finalise()
	storage.Finalise()
	logger.Finalise()
	os.RemoveAll(testingDirectory)
}

func TestDispatchRoutesToHandler(t *testing.T) {
	setup(t)
	defer teardown(t)

	result, err := dispatcher.Dispatch(callerAddress, selEcho, []byte("hello"))
	assert.NoError(t, err, "dispatch error")
	assert.Equal(t, []byte("hello"), result, "wrong result")
}

func TestDispatchUnknownSelector(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := dispatcher.Dispatch(callerAddress, selNone, nil)
	assert.Equal(t, fault.UnknownFunction, err, "expected unknown function error")
}

func TestDispatchCommitsOnSuccess(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := dispatcher.Dispatch(callerAddress, selStore, []byte("saved"))
	assert.NoError(t, err, "dispatch error")
	assert.Equal(t, []byte("saved"), storage.Pool.TestData.Get(storeKey), "value not committed")
}

func TestDispatchAbortsOnHandlerError(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := dispatcher.Dispatch(callerAddress, selBroken, nil)
	assert.Equal(t, fault.InvalidCount, err, "expected handler error")
	assert.Nil(t, storage.Pool.TestData.Get(storeKey), "partial write survived abort")
}

func TestDispatchPublishesEventsAfterCommit(t *testing.T) {
	setup(t)
	defer teardown(t)

	_, err := dispatcher.Dispatch(callerAddress, selEcho, []byte("ping"))
	assert.NoError(t, err, "dispatch error")

	select {
	case message := <-messagebus.Chan():
		assert.Equal(t, "test.echo", message.Topic, "wrong topic")
		assert.Equal(t, "ping", message.Item, "wrong item")
	default:
		t.Fatal("no event published")
	}
}

func TestDispatchCounters(t *testing.T) {
	setup(t)
	defer teardown(t)

	okBefore, failBefore := dispatcher.Counters()

	_, _ = dispatcher.Dispatch(callerAddress, selEcho, nil)
	_, _ = dispatcher.Dispatch(callerAddress, selNone, nil)

	okAfter, failAfter := dispatcher.Counters()
	assert.Equal(t, okBefore+1, okAfter, "wrong success count")
	assert.Equal(t, failBefore+1, failAfter, "wrong failure count")
}
