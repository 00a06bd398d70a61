// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

var testSchema = []byte(`
#Doc: {
	name:  string
	count: int & >=0
	tags?: [...string]
	ratio: *0.5 | number
	...
}
`)

type testDoc struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags,omitempty"`
	Ratio float64  `json:"ratio"`
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	t.Run("valid document decodes with defaults", func(t *testing.T) {
		t.Parallel()

		res, err := ParseJSON[testDoc](testSchema, []byte(`{"name":"a","count":2,"extra":true}`), "#Doc")
		if err != nil {
			t.Fatalf("ParseJSON() error = %v", err)
		}
		if res.Value.Name != "a" || res.Value.Count != 2 {
			t.Errorf("decoded %+v", res.Value)
		}
		if res.Value.Ratio != 0.5 {
			t.Errorf("Ratio = %v, want schema default 0.5", res.Value.Ratio)
		}
	})

	t.Run("missing required field reports its path", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSON[testDoc](testSchema, []byte(`{"count":1}`), "#Doc", WithFilename("doc.json"))
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
		}
		if ve.FilePath != "doc.json" {
			t.Errorf("FilePath = %q", ve.FilePath)
		}
		if !strings.Contains(err.Error(), "name") {
			t.Errorf("error should mention the missing field, got: %v", err)
		}
	})

	t.Run("type mismatch is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSON[testDoc](testSchema, []byte(`{"name":"a","count":"two"}`), "#Doc")
		if err == nil {
			t.Fatal("expected error for string count")
		}
		if !strings.Contains(err.Error(), "count") {
			t.Errorf("error should mention count, got: %v", err)
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSON[testDoc](testSchema, []byte(`{"name":`), "#Doc", WithFilename("broken.json"))
		if err == nil {
			t.Fatal("expected error for truncated JSON")
		}
		if !strings.Contains(err.Error(), "broken.json") {
			t.Errorf("error should name the file, got: %v", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSON[testDoc](testSchema, []byte(`{"name":"a","count":1}`), "#Doc", WithMaxFileSize(4))
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("unknown definition is an internal error", func(t *testing.T) {
		t.Parallel()

		_, err := ParseJSON[testDoc](testSchema, []byte(`{}`), "#Missing")
		if err == nil || !strings.Contains(err.Error(), "internal error") {
			t.Errorf("expected internal error, got %v", err)
		}
	})
}

func TestParseCUE(t *testing.T) {
	t.Parallel()

	t.Run("non-concrete allowed when disabled", func(t *testing.T) {
		t.Parallel()

		schema := []byte(`#Cfg: { level?: "debug" | "info" }`)
		res, err := ParseCUE[struct {
			Level string `json:"level"`
		}](schema, []byte(`level: "info"`), "#Cfg", WithConcrete(false))
		if err != nil {
			t.Fatalf("ParseCUE() error = %v", err)
		}
		if res.Value.Level != "info" {
			t.Errorf("Level = %q", res.Value.Level)
		}
	})

	t.Run("disallowed value", func(t *testing.T) {
		t.Parallel()

		schema := []byte(`#Cfg: { level?: "debug" | "info" }`)
		_, err := ParseCUE[struct {
			Level string `json:"level"`
		}](schema, []byte(`level: "loud"`), "#Cfg")
		if err == nil {
			t.Fatal("expected error for disallowed value")
		}
	})
}

func TestParseJSONAndCUEShareChecks(t *testing.T) {
	t.Parallel()

	parsers := map[string]func(data []byte, definition string, opts ...Option) (*ParseResult[testDoc], error){
		"json": func(data []byte, definition string, opts ...Option) (*ParseResult[testDoc], error) {
			return ParseJSON[testDoc](testSchema, data, definition, opts...)
		},
		"cue": func(data []byte, definition string, opts ...Option) (*ParseResult[testDoc], error) {
			return ParseCUE[testDoc](testSchema, data, definition, opts...)
		},
	}

	for name, parse := range parsers {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// {"name":"a","count":1} is valid in both syntaxes.
			doc := []byte(`{"name":"a","count":1}`)

			res, err := parse(doc, "#Doc")
			if err != nil {
				t.Fatalf("parse() error = %v", err)
			}
			if res.Value.Ratio != 0.5 {
				t.Errorf("Ratio = %v, want schema default 0.5", res.Value.Ratio)
			}

			if _, err := parse(doc, "#Doc", WithMaxFileSize(4)); !errors.Is(err, ErrFileTooLarge) {
				t.Errorf("expected ErrFileTooLarge, got %v", err)
			}
			if _, err := parse(doc, "#Missing"); err == nil || !strings.Contains(err.Error(), "internal error") {
				t.Errorf("expected internal error, got %v", err)
			}

			_, err = parse([]byte(`{"name":"a","count":-1}`), "#Doc", WithFilename("doc."+name))
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
			}
			if ve.FilePath != "doc."+name {
				t.Errorf("FilePath = %q", ve.FilePath)
			}
		})
	}
}
