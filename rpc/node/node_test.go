// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/facetmarket/facetd/chain"
	"github.com/facetmarket/facetd/counter"
	"github.com/facetmarket/facetd/mode"
	"github.com/facetmarket/facetd/rpc/fixtures"
	"github.com/facetmarket/facetd/rpc/node"
)

func TestNodeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	err := mode.Initialise(chain.Testing)
	assert.NoError(t, err, "mode initialise error")
	defer mode.Finalise()
	mode.Set(mode.Normal)

	rpcCount := counter.Counter(0)
	rpcCount.Increment()
	rpcCount.Increment()

	counters := func() (uint64, uint64) { return 12, 3 }

	n := node.New(
		logger.New(fixtures.LogCategory),
		time.Now().Add(-2*time.Second),
		"1.0.0",
		&rpcCount,
		counters,
	)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.NoError(t, err, "info error")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, "Normal", reply.Mode, "wrong mode")
	assert.Equal(t, uint64(2), reply.RPCs, "wrong rpc count")
	assert.Equal(t, uint64(12), reply.Dispatch.Dispatched, "wrong dispatched count")
	assert.Equal(t, uint64(3), reply.Dispatch.Failed, "wrong failed count")
	assert.Equal(t, "1.0.0", reply.Version, "wrong version")
	assert.NotEmpty(t, reply.Uptime, "missing uptime")
}
