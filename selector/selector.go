// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package selector - stable function identifiers
//
// A selector is the first 4 bytes of the SHA3-256 digest of a
// canonical signature string such as "listAsset(collection,id,price)".
// Callers address operations by selector only; the routing table maps
// each selector to the facet currently implementing it.
package selector

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/facetmarket/facetd/fault"
)

// Size - number of bytes in a selector
const Size = 4

// Selector - the function identifier
type Selector [Size]byte

// Zeroed - the null selector
var Zeroed Selector

// FromSignature - derive the selector for a canonical signature
func FromSignature(signature string) Selector {
	digest := sha3.Sum256([]byte(signature))
	var s Selector
	copy(s[:], digest[:Size])
	return s
}

// FromBytes - build a selector from a raw byte slice
func FromBytes(b []byte) (Selector, error) {
	if len(b) != Size {
		return Zeroed, fault.InvalidCount
	}
	var s Selector
	copy(s[:], b)
	return s, nil
}

// IsZero - true for the null selector
func (s Selector) IsZero() bool {
	return s == Zeroed
}

// Bytes - raw byte slice copy
func (s Selector) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, s[:])
	return b
}

// String - lower case hexadecimal
func (s Selector) String() string {
	return hex.EncodeToString(s[:])
}

// MarshalText - convert a selector to its hexadecimal JSON form
func (s Selector) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText - decode the hexadecimal JSON form
func (s *Selector) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil || len(b) != Size {
		return fault.InvalidCount
	}
	copy(s[:], b)
	return nil
}
