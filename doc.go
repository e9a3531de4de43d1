// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalue implements a recursive-descent parser that converts JSON
// text into a tree of typed values.
//
// # Parsing
//
// Call Parse with the complete text of a JSON value. Parse returns the value,
// or an error if the text is not a single well-formed value:
//
//	v, err := jvalue.Parse(`{"name": "jvalue", "tags": ["json", "go"]}`)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a sequence of values, such as JSON Lines, call ParseAll. Use an
// Options value to adjust the depth limit, permit text after the value, or
// accept comments and trailing commas (HuJSON):
//
//	opts := jvalue.Options{AllowComments: true}
//	v, err := opts.Parse(configText)
//
// # Values
//
// The concrete type of a Value is one of:
//
//	JSON type  | Go type           | Notes
//	---------- | ----------------- | ---------------------------------------
//	null       | Null              |
//	true/false | Bool              |
//	number     | Integer or Float  | Float if the text has ".", "e", or "E"
//	string     | String            | escapes are decoded
//	array      | Array             |
//	object     | Object            | the last of any duplicate keys wins
//
// Integer and Float both implement the Number interface. Numbers that cannot
// be represented as an int64 or a float64 are reported as errors.
//
// # Errors
//
// In case of a syntax error, parsing stops and an error of concrete type
// *SyntaxError is returned. Its Kind classifies the failure, and the kinds are
// themselves errors that can be matched with errors.Is:
//
//	if errors.Is(err, jvalue.MalformedNumber) {
//	   log.Printf("Bad number: %v", err)
//	}
//
// Nesting of arrays and objects is limited to DefaultMaxDepth levels unless
// Options.MaxDepth says otherwise. Parsing has no shared state, so separate
// calls may run concurrently.
package jvalue
