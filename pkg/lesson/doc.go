// SPDX-License-Identifier: MPL-2.0

// Package lesson defines the canonical lesson record and parses the two on-disk
// layouts that produce it.
//
// A lesson directory holds either lesson.json (current layout) or training.json
// (legacy layout). Both are validated against the embedded lesson_schema.cue and
// normalized into a single Record, so callers never branch on the layout.
package lesson
