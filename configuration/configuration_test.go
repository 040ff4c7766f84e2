// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facetmarket/facetd/configuration"
	"github.com/facetmarket/facetd/fault"
)

type testConfiguration struct {
	Chain     string   `gluamapper:"chain"`
	Database  string   `gluamapper:"database"`
	FeeLimit  int      `gluamapper:"fee_limit"`
	Addresses []string `gluamapper:"addresses"`
}

const luaSource = `
local M = {}

M.chain = "testing"
M.database = "facet.leveldb"
M.fee_limit = 250
M.addresses = {
    "127.0.0.1:2130",
    "[::1]:2130",
}

return M
`

func TestParseConfigurationFile(t *testing.T) {
	directory, err := os.MkdirTemp("", "configuration-test")
	assert.NoError(t, err, "tempdir error")
	defer os.RemoveAll(directory)

	fileName := filepath.Join(directory, "test.lua")
	err = os.WriteFile(fileName, []byte(luaSource), 0600)
	assert.NoError(t, err, "write error")

	config := testConfiguration{}
	err = configuration.ParseConfigurationFile(fileName, &config)
	assert.NoError(t, err, "parse error")

	assert.Equal(t, "testing", config.Chain, "wrong chain")
	assert.Equal(t, "facet.leveldb", config.Database, "wrong database")
	assert.Equal(t, 250, config.FeeLimit, "wrong fee limit")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, config.Addresses, "wrong addresses")
}

func TestParseRejectsNonPointer(t *testing.T) {
	config := testConfiguration{}
	err := configuration.ParseConfigurationFile("missing.lua", config)
	assert.Equal(t, fault.InvalidStructPointer, err, "expected struct pointer error")
}

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/var/lib/facetd/data", configuration.EnsureAbsolute("/var/lib/facetd", "data"), "relative not joined")
	assert.Equal(t, "/etc/facetd.conf", configuration.EnsureAbsolute("/var/lib/facetd", "/etc/facetd.conf"), "absolute modified")
}
