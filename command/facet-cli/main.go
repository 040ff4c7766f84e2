// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2026 Facet Market Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/facetmarket/facetd/address"
)

type metadata struct {
	connect string
	caller  string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "facet-cli"
	app.Usage = "command line client for a facetd daemon"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "connect, c",
			Value: "",
			Usage: "*facetd host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:  "caller, i",
			Value: "",
			Usage: " caller `ADDRESS` for state-changing operations",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display daemon status",
			Action: runInfo,
		},
		{
			Name:   "owner",
			Usage:  "display the current control owner",
			Action: runOwner,
		},
		{
			Name:   "config",
			Usage:  "display the marketplace fee configuration",
			Action: runConfig,
		},
		{
			Name:   "facets",
			Usage:  "display all routed facet addresses",
			Action: runFacets,
		},
		{
			Name:      "facet-selectors",
			Usage:     "display the selectors routed to one facet",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "module, m",
					Value: "",
					Usage: "*facet `ADDRESS`",
				},
			},
			Action: runFacetSelectors,
		},
		{
			Name:      "facet-address",
			Usage:     "display the facet a function routes to",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "signature, s",
					Value: "",
					Usage: "*function signature `STRING` e.g. list(collection,assetId,price)",
				},
			},
			Action: runFacetAddress,
		},
		{
			Name:      "cut",
			Usage:     "apply a batch of routing changes",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*JSON `FILE` holding the cut entries",
				},
			},
			Action: runCut,
		},
		{
			Name:      "list",
			Usage:     "open a listing for an owned asset",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, C",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*asking price `NUMBER`",
				},
			},
			Action: runList,
		},
		{
			Name:      "update-price",
			Usage:     "change the asking price of an active listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*listing `ID`",
				},
				cli.Uint64Flag{
					Name:  "price, p",
					Usage: "*new asking price `NUMBER`",
				},
			},
			Action: runUpdatePrice,
		},
		{
			Name:      "purchase",
			Usage:     "buy an active listing at its asking price",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*listing `ID`",
				},
			},
			Action: runPurchase,
		},
		{
			Name:      "remove",
			Usage:     "deactivate one listing",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*listing `ID`",
				},
			},
			Action: runRemove,
		},
		{
			Name:      "bulk-remove",
			Usage:     "deactivate a batch of listings",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "collection, C",
					Usage: "*collection `ADDRESS`, repeat per listing",
				},
				cli.StringSliceFlag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`, repeat per listing",
				},
			},
			Action: runBulkRemove,
		},
		{
			Name:      "listing",
			Usage:     "display one listing slot",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "id, I",
					Value: "",
					Usage: "*listing `ID`",
				},
			},
			Action: runListing,
		},
		{
			Name:  "listings",
			Usage: "display a page of the global listing index",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "offset, o",
					Usage: " page start `NUMBER`",
				},
				cli.Uint64Flag{
					Name:  "limit, l",
					Usage: " page size `NUMBER` [default 10]",
				},
			},
			Action: runListings,
		},
		{
			Name:      "seller-listings",
			Usage:     "display every listing slot a seller has opened",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "seller, s",
					Value: "",
					Usage: "*seller `ADDRESS`",
				},
			},
			Action: runSellerListings,
		},
		{
			Name:      "stats",
			Usage:     "display lifetime trade volume of an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account `ADDRESS`",
				},
			},
			Action: runUserStats,
		},
		{
			Name:      "set-payment-asset",
			Usage:     "change the asset purchases settle in",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*payment asset `ADDRESS`",
				},
			},
			Action: runSetPaymentAsset,
		},
		{
			Name:      "set-fee",
			Usage:     "change the fee taken from each sale",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "fee, f",
					Usage: "*fee in basis points `NUMBER` [max 1000]",
				},
			},
			Action: runSetFee,
		},
		{
			Name:      "set-fee-recipient",
			Usage:     "change where fees are paid",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "recipient, r",
					Value: "",
					Usage: "*fee recipient `ADDRESS`",
				},
			},
			Action: runSetFeeRecipient,
		},
		{
			Name:      "transfer-ownership",
			Usage:     "hand diamond control to a new owner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "new-owner, o",
					Value: "",
					Usage: "*new owner `ADDRESS`",
				},
			},
			Action: runTransferOwnership,
		},
		{
			Name:      "mint",
			Usage:     "create a token on a local or testing chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, C",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
				cli.StringFlag{
					Name:  "owner, o",
					Value: "",
					Usage: "*owner `ADDRESS`",
				},
			},
			Action: runMint,
		},
		{
			Name:      "deposit",
			Usage:     "credit a holder on a local or testing chain",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: "*holder `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "amount, m",
					Usage: "*amount `NUMBER`",
				},
			},
			Action: runDeposit,
		},
		{
			Name:      "set-approval",
			Usage:     "grant or revoke an operator approval of the caller",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, C",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "operator, o",
					Value: "",
					Usage: "*operator `ADDRESS`",
				},
				cli.BoolFlag{
					Name:  "revoke, r",
					Usage: " revoke instead of grant",
				},
			},
			Action: runSetApproval,
		},
		{
			Name:      "balance",
			Usage:     "display a holder balance",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "asset, a",
					Value: "",
					Usage: "*asset `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "holder, H",
					Value: "",
					Usage: "*holder `ADDRESS`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "token-owner",
			Usage:     "display the owner of a token",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "collection, C",
					Value: "",
					Usage: "*collection `ADDRESS`",
				},
				cli.Uint64Flag{
					Name:  "asset, a",
					Usage: "*asset id `NUMBER`",
				},
			},
			Action: runTokenOwner,
		},
		{
			Name:  "version",
			Usage: "display version string",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}
	app.Before = func(c *cli.Context) error {

		command := c.Args().Get(0)
		if command == "version" || command == "help" || command == "" {
			return nil
		}

		connect := c.GlobalString("connect")
		if connect == "" {
			return fmt.Errorf("connect is required")
		}

		c.App.Metadata["config"] = &metadata{
			connect: connect,
			caller:  c.GlobalString("caller"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// the caller address is only needed for state-changing operations
func (m *metadata) callerAddress() (address.Address, error) {
	if m.caller == "" {
		return address.Zeroed, fmt.Errorf("caller is required")
	}
	return address.FromBase58(m.caller)
}

func parseAddress(s string, name string) (address.Address, error) {
	if s == "" {
		return address.Zeroed, fmt.Errorf("%s is required", name)
	}
	a, err := address.FromBase58(s)
	if err != nil {
		return address.Zeroed, fmt.Errorf("%s: %q error: %s", name, s, err)
	}
	return a, nil
}
