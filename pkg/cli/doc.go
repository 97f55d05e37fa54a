// Copyright (c) 2026, Cisco Systems, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cli implements the command-line interface for the cmdref tool.
//
// # Overview
//
// The cmdref CLI inspects command reference catalogs: it resolves the
// YAML template documents for a product/platform/access-mode target and
// exposes the result for humans and scripts. It is designed for
// template authors verifying how their documents resolve on different
// device families.
//
// # Commands
//
// features - list resolved features:
//
//	cmdref features [--dir DIR] [--product ID] [--platform P] [--format yaml|json|table]
//
// Builds the catalog and prints every feature with its attribute count.
//
// show - print resolved entries:
//
//	cmdref show --feature bgp_af [--attribute maximum_paths] [--product N3K-C3064PQ]
//
// Prints the resolved field set of one entry, or of every attribute of
// a feature, wrapped in a kind/apiVersion report envelope.
//
// render - render configuration commands:
//
//	cmdref render --feature tacacs_server --attribute timeout -- "" 30
//	cmdref render --feature bgp --attribute enable --arg state=no
//
// Invokes an entry's config_set accessor with positional or named
// arguments and prints the resulting CLI lines.
//
// # Error Handling
//
// Commands fail fast on malformed template documents; lookup misses
// include a nearest-name suggestion.
package cli
