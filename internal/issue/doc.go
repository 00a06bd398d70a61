// SPDX-License-Identifier: MPL-2.0

// Package issue holds user-facing error guidance: ActionableError carries the
// operation, resource and fix suggestions for a failure, and the issue catalog
// provides longer markdown help rendered with glamour.
package issue
