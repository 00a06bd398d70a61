// SPDX-License-Identifier: MPL-2.0

// Package types defines small value types shared by the lesson and discovery
// packages. Each type carries its own validation and never imports domain
// packages.
package types
