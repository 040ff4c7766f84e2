// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/counter"
	"github.com/facetmarket/facetd/dispatcher"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/rpc/admin"
	"github.com/facetmarket/facetd/rpc/dev"
	"github.com/facetmarket/facetd/rpc/diamond"
	"github.com/facetmarket/facetd/rpc/market"
	"github.com/facetmarket/facetd/rpc/node"
)

// Create - register all services onto one RPC server
func Create(log *logger.L, version string, rpcCount *counter.Counter) *rpc.Server {

	start := time.Now().UTC()
	d := dispatcher.Shared{}

	server := rpc.NewServer()

	_ = server.Register(diamond.New(log, d, mode.Is))
	_ = server.Register(market.New(log, d, mode.Is))
	_ = server.Register(admin.New(log, d, mode.Is))
	_ = server.Register(node.New(log, start, version, rpcCount, dispatcher.Counters))

	// ledger seeding, only on the local and testing chains
	if mode.IsTesting() {
		_ = server.Register(dev.New(log, d, mode.Is))
	}

	return server
}
