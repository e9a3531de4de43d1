// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape decodes the escape sequences of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Simple reports the rune denoted by a backslash followed by r, and whether
// that is a single-character escape. The Unicode escape \u is not simple.
func Simple(r rune) (rune, bool) {
	switch r {
	case '"', '\\', '/':
		return r, true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}
	return 0, false
}

// Hex4 decodes exactly four hexadecimal digits from the front of data, as
// used by the \uXXXX escape.
func Hex4(data mem.RO) (rune, error) {
	if data.Len() < 4 {
		return 0, errors.New("incomplete Unicode escape")
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += rune(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += rune(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += rune(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}

// IsHighSurrogate reports whether r is the first half of a UTF-16 surrogate
// pair.
func IsHighSurrogate(r rune) bool { return 0xd800 <= r && r < 0xdc00 }

// Combine joins the UTF-16 surrogate pair hi, lo into a single code point.
// It reports an error if hi and lo do not form a valid pair.
func Combine(hi, lo rune) (rune, error) {
	r := utf16.DecodeRune(hi, lo)
	if r == utf8.RuneError {
		return 0, fmt.Errorf("invalid surrogate pair \\u%04x\\u%04x", hi, lo)
	}
	return r, nil
}
