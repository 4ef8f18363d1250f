// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE helpers for jssh.
//
// Configuration files are parsed in three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with the schema definition
//  3. Validate and decode into a Go value
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	result, err := cueutil.ParseAndDecodeString[map[string]any](
//	    schema,
//	    data,
//	    "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors are reported as "<file>: <json-path>: <message>".
package cueutil
