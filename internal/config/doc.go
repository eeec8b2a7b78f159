// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates passly configuration.
//
// Values come from several layers. For every field the first layer that
// sets a non-zero value wins, in this order:
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file (path from -c/-config or CONFIG)
//  4. Built-in defaults
//
// [GetServerConfig] and [GetClientConfig] are the entry points for the two
// binaries; each validates only the groups its binary needs.
package config
