// SPDX-License-Identifier: MPL-2.0

// Package discovery locates the content root, enumerates lesson directories and
// loads their data files.
//
// This package intentionally combines enumeration, file selection, aggregation
// and diagnostics: all four walk the same directories with the same selection
// rule, and the diagnostics report is only meaningful if it observes exactly
// what listing and loading observe.
//
// File organization:
//   - root.go: Root resolution (ResolveRoot, RootOptions)
//   - discovery.go: Core type (Discovery) and options
//   - discovery_files.go: Lesson directory enumeration and data file reads
//   - selector.go: Data file precedence (Selector)
//   - aggregate.go: ListLessons and LoadLesson
//   - report.go: Diagnose and the discrepancy report
//   - diagnostic.go: Structured non-fatal diagnostics
//   - errors.go: Error taxonomy
package discovery
