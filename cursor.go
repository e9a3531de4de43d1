// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"fmt"

	"go4.org/mem"
)

// A cursor is a position in the source text together with a one-rune
// lookahead. The lookahead is always the rune at offset pos, which is the next
// rune to be consumed; at the end of the input eof is true and ch is zero.
type cursor struct {
	src  mem.RO
	pos  int  // byte offset of the lookahead
	ch   rune // lookahead rune
	size int  // size in bytes of ch
	eof  bool

	// Apparent line and column offsets of the lookahead (0-based)
	line, col int
}

// A position records the location of the lookahead at some point.
type position struct {
	off int
	lc  LineCol
}

func newCursor(src mem.RO) *cursor {
	c := &cursor{src: src}
	c.load()
	return c
}

// load decodes the rune at the current offset into the lookahead.
func (c *cursor) load() {
	if c.pos >= c.src.Len() {
		c.ch, c.size, c.eof = 0, 0, true
		return
	}
	c.ch, c.size = mem.DecodeRune(c.src.SliceFrom(c.pos))
	if c.size == 0 {
		c.size = 1
	}
}

// peek returns the lookahead rune, and reports false at the end of input.
func (c *cursor) peek() (rune, bool) { return c.ch, !c.eof }

// is reports whether the lookahead is ch.
func (c *cursor) is(ch rune) bool { return !c.eof && c.ch == ch }

// advance consumes the lookahead. It has no effect at the end of input.
func (c *cursor) advance() {
	if c.eof {
		return
	}
	if c.ch == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col += c.size
	}
	c.pos += c.size
	c.load()
}

// advanceWhile consumes runes matching f, and returns the text consumed.
func (c *cursor) advanceWhile(f func(rune) bool) mem.RO {
	start := c.pos
	for !c.eof && f(c.ch) {
		c.advance()
	}
	return c.textFrom(start)
}

// skipSpace consumes insignificant whitespace.
func (c *cursor) skipSpace() {
	for !c.eof && isSpace(c.ch) {
		c.advance()
	}
}

// next returns the byte following the lookahead, or 0 at the end of input.
func (c *cursor) next() byte {
	if i := c.pos + c.size; i < c.src.Len() {
		return c.src.At(i)
	}
	return 0
}

// skipComment consumes a line comment through its newline, or a block comment
// through its closing "*/". The lookahead must be the "/" that begins the
// comment. It reports false if a block comment is not closed.
func (c *cursor) skipComment() bool {
	c.advance() // "/"
	if c.is('/') {
		for !c.eof && c.ch != '\n' {
			c.advance()
		}
		c.advance() // "\n", if present
		return true
	}
	c.advance() // "*"
	for !c.eof {
		if c.ch == '*' && c.next() == '/' {
			c.advance()
			c.advance()
			return true
		}
		c.advance()
	}
	return false
}

// textFrom returns the source text from offset start to the lookahead.
func (c *cursor) textFrom(start int) mem.RO { return c.src.SliceFrom(start).SliceTo(c.pos - start) }

// remaining reports the number of unconsumed bytes of input.
func (c *cursor) remaining() int { return c.src.Len() - c.pos }

func (c *cursor) here() position {
	return position{off: c.pos, lc: LineCol{Line: c.line + 1, Column: c.col}}
}

// found describes the lookahead for use in error messages.
func (c *cursor) found() string {
	if c.eof {
		return "end of input"
	}
	return fmt.Sprintf("character %q", c.ch)
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }
func isNumStart(ch rune) bool { return ch == '+' || ch == '-' || ch == '.' || isDigit(ch) }
func isNumRune(ch rune) bool  { return isNumStart(ch) || ch == 'e' || ch == 'E' }
