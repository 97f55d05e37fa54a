/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Command cmdref inspects command reference catalogs and renders
// platform CLI commands from their templates.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/1mrobas/cisco-network-node-utils/pkg/cli"
)

func main() {
	if err := cli.New().Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
