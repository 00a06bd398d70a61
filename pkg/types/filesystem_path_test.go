// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute path", FilesystemPath("/srv/flashbrain/static/classes"), false},
		{"relative path", FilesystemPath("static/classes"), false},
		{"parent relative", FilesystemPath("../static/classes"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("FilesystemPath(%q).Validate() returned unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("FilesystemPath(%q).Validate() returned nil, want error", tt.path)
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
		})
	}
}

func TestFilesystemPath_String(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("static/classes")
	if p.String() != "static/classes" {
		t.Errorf("FilesystemPath.String() = %q, want %q", p.String(), "static/classes")
	}
}
