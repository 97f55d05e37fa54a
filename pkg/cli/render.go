/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Render the configuration commands of an entry",
		ArgsUsage: "[positional args...]",
		Description: `Renders the config_set template of an entry. Named templates take
--arg key=value substitutions; printf-style templates take positional
arguments.

# Examples

Named template:
  cmdref render --feature tacacs_server_host --attribute timeout \
    --arg state= --arg ip=10.1.1.1 --arg timeout=30

Printf-style template:
  cmdref render --feature tacacs_server --attribute timeout -- "" 30`,
		Flags: append(catalogFlags(),
			&cli.StringFlag{
				Name:     "feature",
				Aliases:  []string{"f"},
				Required: true,
				Usage:    "Feature name",
			},
			&cli.StringFlag{
				Name:     "attribute",
				Aliases:  []string{"a"},
				Required: true,
				Usage:    "Attribute name",
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "Named substitution argument (format: name=value, can be repeated)",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			catalog, err := buildCatalog(cmd)
			if err != nil {
				return fmt.Errorf("error building catalog: %w", err)
			}

			entry, err := catalog.Lookup(cmd.String("feature"), cmd.String("attribute"))
			if err != nil {
				return err
			}

			args, err := invocationArgs(cmd.StringSlice("arg"), cmd.Args().Slice())
			if err != nil {
				return err
			}

			lines, err := entry.ConfigSet(args...)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.Root().Writer, line)
			}
			return nil
		},
	}
}

// invocationArgs converts CLI arguments into accessor arguments: --arg
// pairs become one named substitution map, positional arguments pass
// through with numeric strings widened to ints for printf templates.
func invocationArgs(named, positional []string) ([]any, error) {
	if len(named) > 0 {
		if len(positional) > 0 {
			return nil, fmt.Errorf("cannot mix --arg with positional arguments")
		}
		substitutions := make(map[string]any, len(named))
		for _, pair := range named {
			name, value, found := strings.Cut(pair, "=")
			if !found || name == "" {
				return nil, fmt.Errorf("invalid --arg %q, expected name=value", pair)
			}
			substitutions[name] = value
		}
		return []any{substitutions}, nil
	}

	args := make([]any, 0, len(positional))
	for _, raw := range positional {
		if n, err := strconv.Atoi(raw); err == nil {
			args = append(args, n)
		} else {
			args = append(args, raw)
		}
	}
	return args, nil
}
