/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/1mrobas/cisco-network-node-utils/pkg/serializer"
)

// outputFlags are the flags shared by every command that serializes a
// report.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "format",
			Value: string(serializer.FormatJSON),
			Usage: "Output format (json, yaml, table)",
		},
	}
}

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// closeWriter closes a serializer when it holds a closable resource.
func closeWriter(w serializer.Serializer) {
	closer, ok := w.(serializer.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close output writer", "error", err)
	}
}
