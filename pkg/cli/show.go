/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/1mrobas/cisco-network-node-utils/pkg/cmdref"
	"github.com/1mrobas/cisco-network-node-utils/pkg/header"
	"github.com/1mrobas/cisco-network-node-utils/pkg/serializer"
)

const reportKind = "CommandReference"

// EntryReport is the serializable view of one resolved reference entry.
type EntryReport struct {
	header.Header `json:",inline" yaml:",inline"`

	Feature   string            `json:"feature" yaml:"feature"`
	Attribute string            `json:"attribute" yaml:"attribute"`
	Source    string            `json:"source,omitempty" yaml:"source,omitempty"`
	Fields    map[string]string `json:"fields" yaml:"fields"`
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show resolved reference entries for a feature",
		Description: `Resolves a feature's template document against the given product,
platform and access mode, and prints the resulting entries.

# Examples

Show every attribute of a feature:
  cmdref show --feature tacacs_server --product N9K-C9396PX

Show one entry:
  cmdref show --feature bgp_af --attribute maximum_paths --product N3K-C3064PQ`,
		Flags: append(append(catalogFlags(), outputFlags()...),
			&cli.StringFlag{
				Name:     "feature",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Feature name (e.g. bgp_af)",
			},
			&cli.StringFlag{
				Name:    "attribute",
				Aliases: []string{"a"},
				Usage:   "Attribute name; omit to show every attribute of the feature",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			catalog, err := buildCatalog(cmd)
			if err != nil {
				return fmt.Errorf("error building catalog: %w", err)
			}

			feature := cmd.String("feature")
			attributes := []string{cmd.String("attribute")}
			if attributes[0] == "" {
				attributes, err = catalog.Attributes(feature)
				if err != nil {
					return err
				}
			}

			reports := make([]EntryReport, 0, len(attributes))
			for _, attribute := range attributes {
				entry, err := catalog.Lookup(feature, attribute)
				if err != nil {
					return err
				}
				reports = append(reports, newEntryReport(entry))
			}

			writer, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}
			defer closeWriter(writer)
			return writer.Serialize(ctx, reports)
		},
	}
}

// newEntryReport builds the serializable view of an entry.
func newEntryReport(entry *cmdref.Entry) EntryReport {
	report := EntryReport{
		Feature:   entry.Feature(),
		Attribute: entry.Name(),
		Source:    entry.File(),
		Fields:    make(map[string]string),
	}
	report.Set(reportKind)
	for _, name := range entry.FieldNames() {
		field, err := entry.Field(name)
		if err != nil {
			continue
		}
		if field.Kind() == cmdref.FieldStatic {
			report.Fields[name] = fmt.Sprint(field.Static())
		} else {
			report.Fields[name] = field.String()
		}
	}
	return report
}
