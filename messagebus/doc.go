// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - the in-process audit event queue
//
// Operations queue their events here only after the enclosing storage
// transaction has committed, so an aborted operation never emits.
// The queue is drained by the publish broadcaster.
package messagebus
