// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/counter"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	start   time.Time
	version string

	// open client connections
	rpcCounter *counter.Counter

	// dispatch statistics supplier
	counters func() (uint64, uint64)
}

// New - create the node service
func New(log *logger.L, start time.Time, version string, rpcCounter *counter.Counter, counters func() (uint64, uint64)) *Node {
	return &Node{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitNode, rateBurstNode),
		start:      start,
		version:    version,
		rpcCounter: rpcCounter,
		counters:   counters,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// DispatchCounters - dispatch statistics
type DispatchCounters struct {
	Dispatched uint64 `json:"dispatched"`
	Failed     uint64 `json:"failed"`
}

// InfoReply - results from info request
type InfoReply struct {
	Chain    string           `json:"chain"`
	Mode     string           `json:"mode"`
	RPCs     uint64           `json:"rpcs"`
	Dispatch DispatchCounters `json:"dispatch"`
	Version  string           `json:"version"`
	Uptime   string           `json:"uptime"`
}

// Info - daemon status
func (node *Node) Info(arguments *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); err != nil {
		return err
	}

	dispatched, failed := node.counters()

	reply.Chain = mode.ChainName()
	reply.Mode = mode.String()
	reply.RPCs = node.rpcCounter.Uint64()
	reply.Dispatch = DispatchCounters{
		Dispatched: dispatched,
		Failed:     failed,
	}
	reply.Version = node.version
	reply.Uptime = time.Since(node.start).Round(time.Second).String()

	return nil
}
