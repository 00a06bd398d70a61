// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"iter"
	"os"

	"github.com/go-git/go-billy/v5/util"

	"github.com/gatewaynode/flashbrain/pkg/fspath"
	"github.com/gatewaynode/flashbrain/pkg/types"
)

// LessonDir is an immediate subdirectory of the content root.
type LessonDir struct {
	// ID is the directory base name, unchanged.
	ID types.LessonID
	// Path is the directory relative to the content root (equal to ID).
	Path string
}

// Lessons reads the content root and returns its subdirectories in
// filesystem order. Regular files and other non-directories are skipped;
// symlinks count when their target is a directory.
//
// The root is listed before the sequence is returned, so a failure to read it
// is reported here as a *DirectoryReadError rather than during iteration.
func (d *Discovery) Lessons() (iter.Seq[LessonDir], error) {
	entries, err := d.fs.ReadDir(".")
	if err != nil {
		return nil, &DirectoryReadError{Root: d.root, Err: err}
	}

	return func(yield func(LessonDir) bool) {
		for _, e := range entries {
			if !d.isLessonDir(e) {
				continue
			}
			if !yield(LessonDir{ID: types.LessonID(e.Name()), Path: e.Name()}) {
				return
			}
		}
	}, nil
}

// isLessonDir reports whether a root entry is a directory. Symlinks are
// followed, so a linked lesson is listed the same way LoadLesson finds it.
func (d *Discovery) isLessonDir(e os.FileInfo) bool {
	if e.Mode()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	target, err := d.fs.Stat(e.Name())
	if err != nil {
		d.logger.Debug("dangling symlink skipped", "name", e.Name(), "error", err)
		return false
	}
	return target.IsDir()
}

// readDataFile reads a selected data file.
func (d *Discovery) readDataFile(sel Selection) ([]byte, error) {
	data, err := util.ReadFile(d.fs, sel.Path)
	if err != nil {
		return nil, &ReadError{Path: d.absPath(sel.Path), Err: err}
	}
	return data, nil
}

// absPath maps a root-relative path to a path on the real filesystem for
// messages and diagnostics.
func (d *Discovery) absPath(rel string) types.FilesystemPath {
	if d.root == "" {
		return types.FilesystemPath(rel)
	}
	return fspath.JoinStr(d.root, rel)
}
