// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"

	"github.com/gatewaynode/flashbrain/pkg/fspath"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

const (
	// RootFromExplicit means the root came from a flag, env var or config file.
	RootFromExplicit RootSource = "explicit"
	// RootFromCandidate means the root was found by probing candidate paths.
	RootFromCandidate RootSource = "candidate"
)

type (
	// RootSource records how the content root was found.
	RootSource string

	// RootOptions controls content root resolution.
	RootOptions struct {
		// Explicit, when set, is the only location considered.
		Explicit types.FilesystemPath
		// BaseDir anchors relative paths. Defaults to the working directory.
		BaseDir types.FilesystemPath
		// Candidates are probed in order when Explicit is empty.
		// Defaults to DefaultRootCandidates.
		Candidates []string
	}

	// Root is a resolved content root.
	Root struct {
		// Path is absolute and names an existing directory.
		Path   types.FilesystemPath
		Source RootSource
	}
)

// DefaultRootCandidates covers launching from the project directory, from a
// build output directory one or two levels down, and the explicit ./ form.
func DefaultRootCandidates() []string {
	return []string{
		"static/classes",
		"../static/classes",
		"../../static/classes",
		"./static/classes",
	}
}

// ResolveRoot returns the first candidate that exists as a directory.
// Candidates that exist as regular files are skipped.
func ResolveRoot(opts RootOptions) (Root, error) {
	baseDir := string(opts.BaseDir)
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Root{}, &RootNotFoundError{BaseDir: opts.BaseDir}
		}
		baseDir = wd
	}

	source := RootFromCandidate
	candidates := opts.Candidates
	if opts.Explicit != "" {
		source = RootFromExplicit
		candidates = []string{string(opts.Explicit)}
	} else if len(candidates) == 0 {
		candidates = DefaultRootCandidates()
	}

	tried := make([]types.FilesystemPath, 0, len(candidates))
	for _, c := range candidates {
		p := fspath.Resolve(types.FilesystemPath(baseDir), types.FilesystemPath(c))
		tried = append(tried, p)

		info, err := os.Stat(string(p))
		if err != nil || !info.IsDir() {
			continue
		}
		abs, err := fspath.Abs(p)
		if err != nil {
			continue
		}
		return Root{Path: abs, Source: source}, nil
	}

	return Root{}, &RootNotFoundError{BaseDir: types.FilesystemPath(baseDir), Tried: tried}
}
