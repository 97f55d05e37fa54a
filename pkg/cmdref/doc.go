/*
Copyright © 2026 Cisco Systems, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package cmdref resolves abstract (feature, attribute) pairs to
// platform-specific CLI command behavior described in YAML template
// documents.
//
// # Overview
//
// Device features (BGP address families, TACACS+ servers, ...) differ
// in CLI syntax across product families. Each feature is described once
// in a template document; the catalog merges the document's layers for
// a concrete product, platform and access mode, and synthesizes the
// getters and setters callers use to parse device output and render
// configuration commands.
//
// # Documents
//
// A document maps attribute names to spec trees. Keys inside a spec are
// one of four kinds:
//
//   - recognized fields: default_value, config_get, config_get_token,
//     config_get_token_append, config_set, config_set_append,
//     test_config_get, test_config_get_regex, test_config_result
//   - product-id patterns, written /pattern/ and matched against the
//     catalog's product identifier
//   - platform/CLI filters: nexus, ios_xr, cli_nexus, cli_ios_xr
//   - else, merged only when no product-id pattern in the spec matched
//
// The reserved _template attribute is the base every other attribute in
// the file merges on top of. Documents reject duplicate keys at any
// depth and require alphabetical top-level ordering.
//
// # Templates
//
// Command values containing <name> tokens become named-argument
// accessors: each supplied argument is substituted, and lines with
// unresolved tokens are dropped, so partial argument sets emit partial
// command sequences. Values containing printf markers become positional
// accessors with a strict argument count. String values of the form
// /pattern/ or /pattern/i compile to regular expressions.
//
// # Usage
//
//	catalog, err := cmdref.New(
//	    cmdref.WithProductID("N9K-C9396PX"),
//	    cmdref.WithPlatform("nexus"),
//	    cmdref.WithCLI(true),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entry, err := catalog.Lookup("tacacs_server", "timeout")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	lines, err := entry.ConfigSet("no", 5)
//
// # Error Handling
//
// Construction is fail-fast: the first malformed document aborts New
// and no partial catalog is returned. Lookup misses and accessor
// argument mismatches are reported to the immediate caller as
// structured errors; a missing field is only an error when queried,
// which lets feature wrappers treat "field not defined" as "unsupported
// on this platform".
package cmdref
