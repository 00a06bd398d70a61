// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func lessonJSON(title string) string {
	return fmt.Sprintf(`{
  "meta": {"title": %q, "date": "2025-06-29", "description": "d", "seconds_per_word": 0.5},
  "items": [{"title": "t", "acronym": "a", "item_id": "1", "text": "one two", "image": "i.png",
    "actions": [{"type": "flash", "payload": {"speed": 11}}]}]
}`, title)
}

func trainingJSON(title string) string {
	return fmt.Sprintf(`{
  "meta": {"class_id": "x", "title": %q, "date": "2024-01-01", "description": "d"},
  "items": [{"item_id": "1", "text": "one two", "image": "i.png",
    "actions": [{"type": "flash", "payload": {"duration": 85, "speed": 11}}]}]
}`, title)
}

// newMemDiscovery builds a Discovery over an in-memory root populated from
// files (root-relative path -> content). Directories listed in dirs are
// created empty.
func newMemDiscovery(t *testing.T, files map[string]string, dirs []string, opts ...Option) (*Discovery, billy.Filesystem) {
	t.Helper()

	fs := memfs.New()
	for _, dir := range dirs {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}
	for path, content := range files {
		if err := util.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	defaults := []Option{
		WithFilesystem(fs),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return New("/content", append(defaults, opts...)...), fs
}

func summaryTitles(res ListResult) map[string]string {
	out := make(map[string]string, len(res.Summaries))
	for _, s := range res.Summaries {
		out[s.ID] = s.Title
	}
	return out
}
