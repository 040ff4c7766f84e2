// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package address - fixed size account and facet identifiers
//
// An address is a 20 byte value; the all-zero value is the null
// address and is never a valid account or facet.  The text form is
// Base58 over the raw bytes followed by a 4 byte SHA3-256 checksum.
package address

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/facetmarket/facetd/fault"
)

// Size - number of bytes in an address
const Size = 20

// number of checksum bytes appended to the text form
const checksumLength = 4

// Address - the fixed size identifier
type Address [Size]byte

// Zeroed - the null address
var Zeroed Address

// IsZero - true for the null address
func (a Address) IsZero() bool {
	return a == Zeroed
}

// Bytes - raw byte slice copy
func (a Address) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, a[:])
	return b
}

// String - Base58 text form with checksum
func (a Address) String() string {
	buffer := make([]byte, 0, Size+checksumLength)
	buffer = append(buffer, a[:]...)
	checksum := sha3.Sum256(a[:])
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// Hex - lower case hexadecimal, no prefix
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// MarshalText - convert an address to its Base58 JSON form
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - decode the Base58 JSON form
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := FromBase58(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// FromBase58 - decode and verify the checksummed text form
func FromBase58(s string) (Address, error) {
	buffer, err := base58.Decode(s)
	if err != nil {
		return Zeroed, fault.InvalidAddress
	}
	if len(buffer) != Size+checksumLength {
		return Zeroed, fault.InvalidAddress
	}
	checksum := sha3.Sum256(buffer[:Size])
	for i := 0; i < checksumLength; i += 1 {
		if checksum[i] != buffer[Size+i] {
			return Zeroed, fault.InvalidAddress
		}
	}
	var a Address
	copy(a[:], buffer[:Size])
	return a, nil
}

// FromBytes - build an address from a raw byte slice
func FromBytes(b []byte) (Address, error) {
	if len(b) != Size {
		return Zeroed, fault.InvalidAddress
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// OfName - deterministic address for a named in-process facet
//
// purity: the same name always derives the same address
func OfName(name string) Address {
	digest := sha3.Sum256([]byte("facet:" + name))
	var a Address
	copy(a[:], digest[:Size])
	return a
}
