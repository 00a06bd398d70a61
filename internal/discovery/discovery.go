// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/gatewaynode/flashbrain/pkg/lesson"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

type (
	// Discovery reads lessons beneath a resolved content root.
	// It holds no state between calls: every operation re-reads the filesystem.
	Discovery struct {
		root     types.FilesystemPath
		fs       billy.Filesystem
		selector Selector
		logger   *slog.Logger
	}

	// Option configures a Discovery instance.
	Option func(*Discovery)
)

// New creates a Discovery for an already resolved content root. Unless
// WithFilesystem is given, the root is opened on the OS filesystem.
func New(root types.FilesystemPath, opts ...Option) *Discovery {
	d := &Discovery{
		root:     root,
		selector: NewSelector(lesson.KindLesson),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.fs == nil {
		d.fs = osfs.New(string(root))
	}
	return d
}

// WithFilesystem sets the filesystem the root is read from. Paths passed to it
// are relative to the content root.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(d *Discovery) {
		d.fs = fs
	}
}

// WithPrecedence sets which data file kind wins when both exist.
func WithPrecedence(preferred lesson.Kind) Option {
	return func(d *Discovery) {
		d.selector = NewSelector(preferred)
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discovery) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Root returns the content root.
func (d *Discovery) Root() types.FilesystemPath {
	return d.root
}

// Precedence returns the preferred data file kind.
func (d *Discovery) Precedence() lesson.Kind {
	return d.selector.Preferred()
}
