// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package routing_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

// common test setup routines

const (
	testingDirectory = "testing"
	databaseFileName = testingDirectory + "/test"
)

var ownerAddress = address.OfName("test.owner")
var strangerAddress = address.OfName("test.stranger")

func removeFiles() {
	os.RemoveAll(testingDirectory)
}

func setup(t *testing.T) {
	removeFiles()
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
}

func teardown(t *testing.T) {
	_ = routing.Finalise()
	_ = facet.Finalise()
	storage.Finalise()
	logger.Finalise()
	removeFiles()
}

// a facet stub exposing an arbitrary selector set
type stubFacet struct {
	handlers map[selector.Selector]facet.Handler
}

func newStubFacet(selectors ...selector.Selector) *stubFacet {
	f := &stubFacet{
		handlers: make(map[selector.Selector]facet.Handler),
	}
	for _, sel := range selectors {
		f.handlers[sel] = func(ctx *facet.Context, params []byte) ([]byte, error) {
			return params, nil
		}
	}
	return f
}

func (f *stubFacet) Handlers() map[selector.Selector]facet.Handler {
	return f.handlers
}

// deploy a stub facet for some selectors
func deploy(t *testing.T, name string, selectors ...selector.Selector) address.Address {
	addr := address.OfName(name)
	err := facet.Register(addr, newStubFacet(selectors...))
	if err != nil {
		t.Fatalf("register error: %s", err)
	}
	return addr
}

// run the construction cut
func genesis(t *testing.T, entries ...routing.Entry) {
	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	err = routing.Genesis(ownerAddress, entries)
	if err != nil {
		trx.Abort()
		t.Fatalf("genesis error: %s", err)
	}
	err = trx.Commit()
	if err != nil {
		t.Fatalf("transaction commit error: %s", err)
	}
}

// run a cut as a caller, committing on success and aborting on error
func runCut(t *testing.T, caller address.Address, entries []routing.Entry) error {
	return runCutInit(t, caller, entries, address.Zeroed, selector.Zeroed, nil)
}

func runCutInit(t *testing.T, caller address.Address, entries []routing.Entry, initTarget address.Address, initSelector selector.Selector, initArgs []byte) error {
	trx, err := storage.NewDBTransaction()
	if err != nil {
		t.Fatalf("transaction begin error: %s", err)
	}
	ctx := facet.NewContext(caller)
	err = routing.Cut(ctx, entries, initTarget, initSelector, initArgs)
	if err != nil {
		trx.Abort()
		return err
	}
	commitErr := trx.Commit()
	if commitErr != nil {
		t.Fatalf("transaction commit error: %s", commitErr)
	}
	return nil
}

// a full routing table snapshot built from the public interface
type snapshot struct {
	owner     address.Address
	modules   []address.Address
	selectors map[selector.Selector]address.Address
	perModule map[address.Address][]selector.Selector
}

func takeSnapshot(known []selector.Selector) snapshot {
	s := snapshot{
		owner:     routing.Owner(),
		modules:   routing.FacetAddresses(),
		selectors: make(map[selector.Selector]address.Address),
		perModule: make(map[address.Address][]selector.Selector),
	}
	for _, sel := range known {
		s.selectors[sel] = routing.ModuleForSelector(sel)
	}
	for _, module := range s.modules {
		s.perModule[module] = routing.FacetSelectors(module)
	}
	return s
}
