/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"github.com/urfave/cli/v3"

	"github.com/1mrobas/cisco-network-node-utils/pkg/cmdref"
)

// Version is the tool version, overridable at build time with
// -ldflags "-X .../pkg/cli.Version=...".
var Version = "dev"

// New constructs the root command for the cmdref tool.
func New() *cli.Command {
	return &cli.Command{
		Name:    "cmdref",
		Usage:   "Inspect and render platform CLI command templates",
		Version: Version,
		Commands: []*cli.Command{
			featuresCmd(),
			showCmd(),
			renderCmd(),
		},
	}
}

// catalogFlags are the flags shared by every command that builds a
// command reference catalog.
func catalogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Template document directory (default: embedded documents)",
		},
		&cli.StringFlag{
			Name:    "product",
			Aliases: []string{"p"},
			Usage:   "Product identifier matched against /pattern/ keys (e.g. N9K-C9396PX)",
		},
		&cli.StringFlag{
			Name:  "platform",
			Value: "nexus",
			Usage: "Platform name matched against filter keys (nexus, ios_xr)",
		},
		&cli.BoolFlag{
			Name:  "cli",
			Value: true,
			Usage: "Resolve CLI-only template branches",
		},
	}
}

// buildCatalog constructs a catalog from the shared flags.
func buildCatalog(cmd *cli.Command) (*cmdref.Catalog, error) {
	opts := []cmdref.Option{
		cmdref.WithProductID(cmd.String("product")),
		cmdref.WithPlatform(cmd.String("platform")),
		cmdref.WithCLI(cmd.Bool("cli")),
	}
	if dir := cmd.String("dir"); dir != "" {
		opts = append(opts, cmdref.WithSourceDir(dir))
	}
	return cmdref.New(opts...)
}
