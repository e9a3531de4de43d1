// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import "fmt"

// ErrorKind classifies a syntax error. An ErrorKind is itself an error, so
// that callers can test for a class of failure with errors.Is:
//
//	if errors.Is(err, jvalue.MalformedArray) { ... }
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	MalformedLiteral ErrorKind = iota + 1 // true, false, or null did not match
	MalformedString                       // bad quote, escape, or termination
	MalformedNumber                       // numeric lexeme failed conversion
	MalformedArray                        // bad array structure
	MalformedObject                       // bad object structure
	NoValue                               // no value starts at this position
	TrailingData                          // extra input after the value
	TooDeep                               // nesting exceeds the depth limit
	MalformedComment                      // unterminated block comment
)

var errorKindStr = [...]string{
	MalformedLiteral: "malformed literal",
	MalformedString:  "malformed string",
	MalformedNumber:  "malformed number",
	MalformedArray:   "malformed array",
	MalformedObject:  "malformed object",
	NoValue:          "no value",
	TrailingData:     "trailing data",
	TooDeep:          "nesting too deep",
	MalformedComment: "malformed comment",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) || errorKindStr[k] == "" {
		return "unknown error"
	}
	return errorKindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Kind ErrorKind

	// Location gives the extent of the construct that failed: First is where
	// the construct began and Last is where the problem was detected.
	Location Location
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location.Last, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Is reports whether target is the ErrorKind of s.
func (s *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == s.Kind
}
