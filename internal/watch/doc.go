// SPDX-License-Identifier: MPL-2.0

// Package watch reports changes to lesson content under a content root.
//
// Lessons live one level below the root, so the watcher registers the root and
// its immediate subdirectories only. Events are filtered to lesson directories
// and their data files, coalesced over a debounce window, and delivered as a
// single Change naming the affected lessons.
package watch
