// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

// Listener - a serving endpoint of the RPC surface
type Listener interface {
	Serve() error
}

const (
	minConnectionCount = 1
)
