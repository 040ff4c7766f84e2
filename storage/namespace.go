// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"golang.org/x/crypto/sha3"
)

// NamespaceSize - number of prefix bytes reserved for one namespace
const NamespaceSize = 8

// NamespacePrefix - derive the key prefix for a namespace tag
//
// purity: the same tag derives the same prefix on every call; no
// runtime state is consulted.  Distinct tags cannot produce the same
// prefix short of a SHA3-256 collision, so pools never overlap.
func NamespacePrefix(tag string) []byte {
	digest := sha3.Sum256([]byte(tag))
	prefix := make([]byte, NamespaceSize)
	copy(prefix, digest[:NamespaceSize])
	return prefix
}

// namespaceLimit - smallest key greater than every key in the prefix
// region; nil when the prefix is all 0xFF bytes
func namespaceLimit(prefix []byte) []byte {
	limit := make([]byte, len(prefix))
	copy(limit, prefix)
	for i := len(limit) - 1; i >= 0; i -= 1 {
		limit[i] += 1
		if limit[i] != 0 {
			return limit
		}
	}
	return nil
}
