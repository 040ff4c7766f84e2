// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facetmarket/facetd/address"
	"github.com/facetmarket/facetd/fault"
)

func TestRoundTrip(t *testing.T) {
	a := address.OfName("market")
	assert.False(t, a.IsZero(), "derived address must not be null")

	s := a.String()
	b, err := address.FromBase58(s)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, a, b, "base58 round trip")
}

func TestChecksumRejected(t *testing.T) {
	s := address.OfName("market").String()

	// flip the final character to damage the checksum
	damaged := s[:len(s)-1] + "1"
	if damaged == s {
		damaged = s[:len(s)-1] + "2"
	}
	_, err := address.FromBase58(damaged)
	assert.Equal(t, fault.InvalidAddress, err, "damaged checksum accepted")
}

func TestDeterministicNames(t *testing.T) {
	assert.Equal(t, address.OfName("diamond"), address.OfName("diamond"), "derivation must be pure")
	assert.NotEqual(t, address.OfName("diamond"), address.OfName("market"), "distinct names must not collide")
}

func TestZero(t *testing.T) {
	assert.True(t, address.Zeroed.IsZero(), "null address")

	_, err := address.FromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidAddress, err, "short byte slice accepted")
}
