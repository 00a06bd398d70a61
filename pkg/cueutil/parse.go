// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/json"
)

// ParseResult contains the result of a successful parse.
type ParseResult[T any] struct {
	// Value is the decoded Go struct.
	Value *T

	// Unified is the schema-unified CUE value. Callers use it to read fields
	// that are not part of T, such as defaults the schema filled in.
	Unified cue.Value
}

// ParseJSON validates a JSON document against a definition of an embedded CUE
// schema and decodes it into T.
//
// Parameters:
//   - schema: the embedded CUE schema bytes (from //go:embed)
//   - data: the raw JSON document
//   - definition: the root definition to unify with (e.g. "#Lesson")
//   - opts: optional configuration
//
// Definitions in the schema decide strictness: open definitions (ending in
// "...") accept unknown fields, required fields must be present and concrete,
// and type mismatches fail unification. Nothing is decoded unless the whole
// document validates.
func ParseJSON[T any](schema, data []byte, definition string, opts ...Option) (*ParseResult[T], error) {
	return parse[T](schema, data, definition, opts, func(ctx *cue.Context, filename string) (cue.Value, error) {
		expr, err := json.Extract(filename, data)
		if err != nil {
			return cue.Value{}, err
		}
		return ctx.BuildExpr(expr, cue.Filename(filename)), nil
	})
}

// ParseCUE is the CUE-syntax counterpart of ParseJSON, used for the
// application's own config.cue file.
func ParseCUE[T any](schema, data []byte, definition string, opts ...Option) (*ParseResult[T], error) {
	return parse[T](schema, data, definition, opts, func(ctx *cue.Context, filename string) (cue.Value, error) {
		return ctx.CompileBytes(data, cue.Filename(filename)), nil
	})
}

// buildFunc turns the raw document into a CUE value in ctx.
type buildFunc func(ctx *cue.Context, filename string) (cue.Value, error)

// parse runs the shared pipeline: size check, schema compile and lookup,
// build the user value, unify, validate, decode.
func parse[T any](schema, data []byte, definition string, opts []Option, build buildFunc) (*ParseResult[T], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	filename := options.filename
	if filename == "" {
		filename = "<input>"
	}

	if err := CheckFileSize(data, options.maxFileSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(definition))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definition, schemaRoot.Err())
	}

	userValue, err := build(ctx, filename)
	if err != nil {
		return nil, FormatError(err, filename)
	}
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(options.concrete)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}

	return &ParseResult[T]{
		Value:   &result,
		Unified: unified,
	}, nil
}
