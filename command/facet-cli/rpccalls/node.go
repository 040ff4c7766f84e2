// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/facetmarket/facetd/rpc/node"
)

// GetInfo - request status from facetd
func (c *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.client.Call("Node.Info", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
