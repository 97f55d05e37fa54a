/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/1mrobas/cisco-network-node-utils/pkg/serializer"
)

// featureRow is one line of the features listing.
type featureRow struct {
	Feature    string `json:"feature" yaml:"feature"`
	Attributes int    `json:"attributes" yaml:"attributes"`
}

func featuresCmd() *cli.Command {
	return &cli.Command{
		Name:  "features",
		Usage: "List the features and attribute counts of a catalog",
		Description: `Builds the command reference catalog for the given product, platform
and access mode, then lists every feature with its attribute count.

# Examples

List embedded features for an N9K:
  cmdref features --product N9K-C9396PX

List features from a custom template directory:
  cmdref features --dir ./cmd_ref --platform ios_xr`,
		Flags: append(catalogFlags(), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			catalog, err := buildCatalog(cmd)
			if err != nil {
				return fmt.Errorf("error building catalog: %w", err)
			}

			rows := make([]featureRow, 0)
			for _, feature := range catalog.Features() {
				attrs, err := catalog.Attributes(feature)
				if err != nil {
					return err
				}
				rows = append(rows, featureRow{Feature: feature, Attributes: len(attrs)})
			}

			writer, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(writer)
			return writer.Serialize(ctx, rows)
		},
	}
}
