// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for flashbrain.
//
// Command tree layout:
//
//	flashbrain lessons [--json|--yaml] [--watch]
//	flashbrain load <id> [--json|--yaml] [--pacing]
//	flashbrain diagnose [--json|--yaml] [--strict|--watch]
//	flashbrain config show|path|dump
//	flashbrain selftest
//
// Persistent flags: --root, --config, --verbose.
package cmd
