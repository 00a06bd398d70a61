// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates JSON documents against embedded CUE schemas.
//
// Every structured file the application reads goes through the same three
// steps:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Extract the JSON document and unify it with that definition
//  3. Validate (concrete) and decode into a Go struct
//
// # Usage
//
//	//go:embed lesson_schema.cue
//	var schemaBytes []byte
//
//	result, err := cueutil.ParseJSON[LessonFile](
//	    schemaBytes,
//	    data,
//	    "#Lesson",
//	    cueutil.WithFilename("static/classes/stoics/lesson.json"),
//	)
//	if err != nil {
//	    return nil, err // message carries the JSON path of the offending field
//	}
//	return result.Value, nil
package cueutil
