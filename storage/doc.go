// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - namespaced key-value pools over LevelDB
//
// All mutable state shares two LevelDB databases: "state" holds
// authoritative records, "index" holds derived lookup tables.  Each
// logical group of records is a pool: a disjoint key region selected
// by an 8 byte prefix derived from a human readable namespace tag
// (see namespace.go).  Independently written packages share the
// databases safely by referencing pools through their tags only.
//
// Writes accumulate in a per-database batch overlaid with a read
// cache so that a transaction observes its own uncommitted writes.
// Commit applies the batches; Abort discards them.  A single
// transaction is active at a time, which matches the serialized
// execution model of the dispatcher.
package storage
