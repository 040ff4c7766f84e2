// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/chain"
	"github.com/facetmarket/facetd/counter"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/facet"
	"github.com/facetmarket/facetd/ledger"
	"github.com/facetmarket/facetd/marketplace"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/publish"
	"github.com/facetmarket/facetd/routing"
	"github.com/facetmarket/facetd/rpc/certificate"
	"github.com/facetmarket/facetd/rpc/listeners"
	"github.com/facetmarket/facetd/rpc/server"
	"github.com/facetmarket/facetd/selector"
	"github.com/facetmarket/facetd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if len(options["config-file"]) != 1 {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if err != nil {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// the in-process settlement ledger is only suitable for
	// development networks
	if theConfiguration.Chain == chain.Live {
		exitwithstatus.Message("%s: chain: %q needs external settlement adapters which are not yet available", program, theConfiguration.Chain)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); err != nil {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if theConfiguration.PidFile != "" {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if err != nil {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC TLS server
	if theConfiguration.ProfileHTTP != "" {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	databaseFile := filepath.Join(theConfiguration.Database.Directory, theConfiguration.Database.Name)
	err = storage.Initialise(databaseFile)
	if err != nil {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// facet registry and the in-process facets
	log.Info("initialise facet")
	err = facet.Initialise()
	if err != nil {
		log.Criticalf("facet initialise error: %s", err)
		exitwithstatus.Message("facet initialise error: %s", err)
	}
	defer facet.Finalise()

	diamondAddress := address.OfName(routing.FacetName)
	marketAddress := address.OfName(marketplace.FacetName)
	adminAddress := address.OfName(marketplace.AdminFacetName)

	diamondFacet := routing.NewFacet()
	marketFacet := marketplace.NewFacet()
	adminFacet := marketplace.NewAdminFacet()

	registrations := []struct {
		addr address.Address
		f    facet.Facet
	}{
		{diamondAddress, diamondFacet},
		{marketAddress, marketFacet},
		{adminAddress, adminFacet},
	}

	// ledger seeding facet, only on the local and testing chains
	if mode.IsTesting() {
		registrations = append(registrations, struct {
			addr address.Address
			f    facet.Facet
		}{address.OfName(ledger.FacetName), ledger.NewDevFacet()})
	}

	for _, r := range registrations {
		if err := facet.Register(r.addr, r.f); err != nil {
			log.Criticalf("facet register error: %s", err)
			exitwithstatus.Message("facet register error: %s", err)
		}
	}

	// the routing table
	log.Info("initialise routing")
	err = routing.Initialise(routing.Handles{
		Owner:      storage.Pool.Owner,
		Selectors:  storage.Pool.Selectors,
		Modules:    storage.Pool.Modules,
		ModuleList: storage.Pool.ModuleList,
	})
	if err != nil {
		log.Criticalf("routing initialise error: %s", err)
		exitwithstatus.Message("routing initialise error: %s", err)
	}
	defer routing.Finalise()

	// in-process settlement ledger for development networks
	log.Info("initialise ledger")
	err = ledger.Initialise(ledger.Handles{
		Balances:  storage.Pool.Balances,
		Owners:    storage.Pool.TokenOwners,
		Approvals: storage.Pool.TokenApprovals,
	})
	if err != nil {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer ledger.Finalise()

	// the marketplace state machine
	log.Info("initialise marketplace")
	err = marketplace.Initialise(
		marketplace.Handles{
			Listings:    storage.Pool.Listings,
			GlobalIndex: storage.Pool.ListingIndex,
			SellerIndex: storage.Pool.SellerIndex,
			UserStats:   storage.Pool.UserStats,
			Config:      storage.Pool.Config,
		},
		ledger.Payments{},
		ledger.Assets{},
		diamondAddress,
	)
	if err != nil {
		log.Criticalf("marketplace initialise error: %s", err)
		exitwithstatus.Message("marketplace initialise error: %s", err)
	}
	defer marketplace.Finalise()

	// the dispatcher ties routing, facets and storage together
	log.Info("initialise dispatcher")
	err = dispatcher.Initialise()
	if err != nil {
		log.Criticalf("dispatcher initialise error: %s", err)
		exitwithstatus.Message("dispatcher initialise error: %s", err)
	}
	defer dispatcher.Finalise()

	// one time construction on a fresh database
	if routing.Owner().IsZero() {
		genesisFacets := make([]facet.Facet, 0, len(registrations))
		genesisAddresses := make([]address.Address, 0, len(registrations))
		for _, r := range registrations {
			genesisFacets = append(genesisFacets, r.f)
			genesisAddresses = append(genesisAddresses, r.addr)
		}
		err = runGenesis(log, theConfiguration.Owner, genesisFacets, genesisAddresses)
		if err != nil {
			log.Criticalf("genesis error: %s", err)
			exitwithstatus.Message("genesis error: %s", err)
		}
	} else {
		log.Infof("owner: %s", routing.Owner())
	}

	// start up the publishing background processes
	log.Info("initialise publish")
	err = publish.Initialise(&theConfiguration.Publishing)
	if err != nil {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc listener
	log.Info("initialise rpc")
	rpcLog := logger.New("rpc")
	tlsConfiguration, fingerprint, err := certificate.Get(rpcLog, "client_rpc",
		theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
	if err != nil {
		log.Criticalf("certificate error: %s", err)
		exitwithstatus.Message("certificate error: %s", err)
	}

	connectionCount := counter.Counter(0)
	rpcServer := server.Create(rpcLog, version, &connectionCount)
	rpcListener, err := listeners.NewRPC(&theConfiguration.ClientRPC, rpcLog, &connectionCount,
		rpcServer, tlsConfiguration, fingerprint)
	if err != nil {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	err = rpcListener.Serve()
	if err != nil {
		log.Criticalf("rpc serve error: %s", err)
		exitwithstatus.Message("rpc serve error: %s", err)
	}

	// watch the configuration file for logging changes
	watcher, err := newConfigWatcher(configurationFile, logger.New(fileWatcherLoggerPrefix), theConfiguration.Logging)
	if err != nil {
		log.Errorf("file watcher setup failed: %s", err)
	} else {
		_ = watcher.Start()
	}

	// all services are up
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if len(options["quiet"]) == 0 {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if len(options["quiet"]) == 0 {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// install the control owner and the initial routing table
//
// refused by routing.Genesis if an owner already exists, so a
// restart with a populated database never runs this
func runGenesis(log *logger.L, ownerText string, facets []facet.Facet, addresses []address.Address) error {

	if ownerText == "" {
		return fmt.Errorf("owner must be configured for first run")
	}
	owner, err := address.FromBase58(ownerText)
	if err != nil {
		return fmt.Errorf("owner: %q error: %s", ownerText, err)
	}

	entries := make([]routing.Entry, len(facets))
	for i, f := range facets {
		selectors := make([]selector.Selector, 0, len(f.Handlers()))
		for sel := range f.Handlers() {
			selectors = append(selectors, sel)
		}
		entries[i] = routing.Entry{
			Action:    routing.Add,
			Module:    addresses[i],
			Selectors: selectors,
		}
	}

	trx, err := storage.NewDBTransaction()
	if err != nil {
		return err
	}
	err = routing.Genesis(owner, entries)
	if err != nil {
		trx.Abort()
		return err
	}
	err = trx.Commit()
	if err != nil {
		return err
	}

	log.Infof("genesis complete: owner: %s", owner)
	return nil
}
