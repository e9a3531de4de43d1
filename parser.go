// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/creachadair/jvalue/internal/escape"
	"go4.org/mem"
)

// DefaultMaxDepth is the nesting limit for arrays and objects used when
// Options.MaxDepth is zero.
const DefaultMaxDepth = 1000

// Options control the behavior of the parser. The zero value is ready for
// use and parses strict JSON with the default depth limit.
type Options struct {
	// MaxDepth is the maximum nesting depth of arrays and objects. If zero,
	// DefaultMaxDepth is used. If negative, depth is not limited, and deeply
	// nested input may exhaust the stack.
	MaxDepth int

	// AllowTrailingData permits non-whitespace text to follow the value.
	// Parse and its variants ignore such text; ParseAll is not affected.
	AllowTrailingData bool

	// AllowComments accepts JSON With Commas and Comments (HuJSON): line
	// comments (// ...) and block comments (/* ... */) are treated as
	// whitespace, and a comma may follow the last element of an array or
	// object. The grammar of values is otherwise unchanged, and the setting
	// combines with the others and with ParseAll.
	AllowComments bool
}

// Parse parses text as a single JSON value. In case of a syntax error, the
// returned error has concrete type *SyntaxError and no value is returned.
func Parse(text string) (Value, error) { return Options{}.Parse(text) }

// ParseBytes parses data as a single JSON value. It behaves like Parse.
func ParseBytes(data []byte) (Value, error) { return Options{}.ParseBytes(data) }

// ParseReader reads all of r and parses it as a single JSON value.
func ParseReader(r io.Reader) (Value, error) { return Options{}.ParseReader(r) }

// ParseAll parses a sequence of JSON values separated by optional whitespace.
// In case of error, any complete values already parsed are returned along
// with the error.
func ParseAll(text string) ([]Value, error) { return Options{}.ParseAll(text) }

// MustParse parses text as a single JSON value, and panics if parsing fails.
func MustParse(text string) Value {
	v, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("jvalue: parse %q: %v", text, err))
	}
	return v
}

// Parse parses text as a single JSON value using the settings of o.
func (o Options) Parse(text string) (Value, error) {
	return o.newParser(mem.S(text)).parseOne(o.AllowTrailingData)
}

// ParseBytes parses data as a single JSON value using the settings of o.
// The contents of data are not modified.
func (o Options) ParseBytes(data []byte) (Value, error) {
	return o.newParser(mem.B(data)).parseOne(o.AllowTrailingData)
}

// ParseReader reads all of r and parses it as a single JSON value using the
// settings of o.
func (o Options) ParseReader(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return o.newParser(mem.B(data)).parseOne(o.AllowTrailingData)
}

// ParseAll parses a sequence of JSON values using the settings of o.
func (o Options) ParseAll(text string) ([]Value, error) {
	p := o.newParser(mem.S(text))
	var vs []Value
	for {
		v, err := p.parseNext()
		if err == io.EOF {
			return vs, nil
		} else if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
}

func (o Options) newParser(src mem.RO) *parser {
	p := &parser{c: newCursor(src), maxDepth: o.MaxDepth, comments: o.AllowComments}
	if p.maxDepth == 0 {
		p.maxDepth = DefaultMaxDepth
	}
	return p
}

// A parser is a recursive-descent parser for JSON values. Each grammar rule
// consumes exactly the text of its construct or panics with a *SyntaxError,
// which the entry points recover and return.
type parser struct {
	c        *cursor
	maxDepth int  // < 0 means unlimited
	comments bool // allow comments and trailing commas
	depth    int
}

func (p *parser) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if serr, ok := perr.(*SyntaxError); ok {
			*errp = serr
			return
		}
		panic(perr)
	}
}

// parseOne parses a single value followed by the end of input.
func (p *parser) parseOne(allowTrailing bool) (_ Value, err error) {
	defer p.recoverParseError(&err)

	v := p.parseValue()
	p.skipSpace()
	if !p.c.eof && !allowTrailing {
		panic(p.errorf(p.c.here(), TrailingData, nil, "unexpected %s after value", p.c.found()))
	}
	return v, nil
}

// parseNext parses the next value in the input, or returns io.EOF if only
// whitespace remains.
func (p *parser) parseNext() (_ Value, err error) {
	defer p.recoverParseError(&err)

	p.skipSpace()
	if p.c.eof {
		return nil, io.EOF
	}
	return p.parseValue(), nil
}

// parseValue parses a value of any kind, trying each rule in turn by its
// starting lookahead.
func (p *parser) parseValue() Value {
	p.skipSpace()
	if v, ok := p.parseLiteral(); ok {
		return v
	}
	if p.c.is('"') {
		return String(p.parseString())
	}
	if v, ok := p.parseNumber(); ok {
		return v
	}
	if p.c.is('[') {
		return p.parseArray()
	}
	if p.c.is('{') {
		return p.parseObject()
	}

	// A closing token where a value belongs has no matching open.
	if p.c.is(']') {
		panic(p.errorf(p.c.here(), MalformedArray, nil, "array not started: unexpected %s", p.c.found()))
	} else if p.c.is('}') {
		panic(p.errorf(p.c.here(), MalformedObject, nil, "object not started: unexpected %s", p.c.found()))
	}
	panic(p.errorf(p.c.here(), NoValue, nil,
		"no value could be parsed at current position, found %s", p.c.found()))
}

// parseLiteral parses one of the constants true, false, or null. It reports
// false without consuming input if the lookahead cannot begin a constant.
func (p *parser) parseLiteral() (Value, bool) {
	var want string
	var v Value
	switch ch, _ := p.c.peek(); {
	case p.c.eof:
		return nil, false
	case ch == 't':
		want, v = "true", Bool(true)
	case ch == 'f':
		want, v = "false", Bool(false)
	case ch == 'n':
		want, v = "null", Null{}
	default:
		return nil, false
	}
	start := p.c.here()
	if got := p.c.advanceWhile(isNameRune); !got.Equal(mem.S(want)) {
		panic(p.errorf(start, MalformedLiteral, nil, "expected %q, found %q", want, got.StringCopy()))
	}
	return v, true
}

// parseString parses a quoted string and returns its decoded contents.
func (p *parser) parseString() string {
	start := p.c.here()
	if !p.c.is('"') {
		panic(p.errorf(start, MalformedString, nil, "expected '\"' to begin string, found %s", p.c.found()))
	}
	p.c.advance()

	var buf strings.Builder
	for {
		ch, ok := p.c.peek()
		switch {
		case !ok:
			panic(p.errorf(start, MalformedString, nil, "unterminated string"))
		case ch == '"':
			p.c.advance()
			return buf.String()
		case ch == '\\':
			esc := p.c.here()
			p.c.advance()
			buf.WriteRune(p.parseEscape(esc))
		case ch < ' ':
			panic(p.errorf(start, MalformedString, nil, "unescaped control %q in string", ch))
		default:
			buf.WriteRune(ch)
			p.c.advance()
		}
	}
}

// parseEscape decodes an escape sequence whose backslash, at esc, has already
// been consumed.
func (p *parser) parseEscape(esc position) rune {
	ch, ok := p.c.peek()
	if !ok {
		panic(p.errorf(esc, MalformedString, nil, "unterminated string: incomplete escape sequence"))
	}
	p.c.advance()
	if r, ok := escape.Simple(ch); ok {
		return r
	} else if ch != 'u' {
		panic(p.errorf(esc, MalformedString, nil, "invalid %q after escape", ch))
	}

	r := p.parseHex4(esc)
	if !utf16.IsSurrogate(r) {
		return r
	}

	// A high surrogate must be followed directly by an escaped low surrogate;
	// anything else leaves the code point undecodable.
	if escape.IsHighSurrogate(r) && p.c.is('\\') {
		p.c.advance()
		if p.c.is('u') {
			p.c.advance()
			lo := p.parseHex4(esc)
			c, err := escape.Combine(r, lo)
			if err != nil {
				panic(p.errorf(esc, MalformedString, err, "invalid Unicode escape: %v", err))
			}
			return c
		}
	}
	panic(p.errorf(esc, MalformedString, nil, "invalid Unicode escape: unpaired surrogate \\u%04x", r))
}

// parseHex4 consumes the four hex digits of a \u escape.
func (p *parser) parseHex4(esc position) rune {
	n := min(p.c.remaining(), 4)
	r, err := escape.Hex4(p.c.src.SliceFrom(p.c.pos).SliceTo(n))
	if err != nil {
		panic(p.errorf(esc, MalformedString, err, "invalid Unicode escape: %v", err))
	}
	for range 4 {
		p.c.advance()
	}
	return r
}

// parseNumber parses a numeric lexeme. It reports false without consuming
// input if the lookahead cannot begin a number.
func (p *parser) parseNumber() (Number, bool) {
	if ch, ok := p.c.peek(); !ok || !isNumStart(ch) {
		return nil, false
	}
	start := p.c.here()
	text := p.c.advanceWhile(isNumRune).StringCopy()
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			panic(p.errorf(start, MalformedNumber, err, "invalid number %q: %v", text, numError(err)))
		}
		return Float(f), true
	}
	z, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		panic(p.errorf(start, MalformedNumber, err, "invalid integer %q: %v", text, numError(err)))
	}
	return Integer(z), true
}

// parseArray parses a bracketed, comma-separated sequence of values.
func (p *parser) parseArray() Array {
	start := p.c.here()
	p.enter(start)
	p.c.advance() // "["
	defer p.leave()

	arr := Array{}
	p.skipSpace()
	if p.c.is(']') {
		p.c.advance()
		return arr
	}
	for {
		p.skipSpace()
		if p.c.eof {
			panic(p.errorf(start, MalformedArray, nil, "unterminated array"))
		} else if p.c.is('}') {
			panic(p.errorf(start, MalformedArray, nil, "expected value in array, found %s", p.c.found()))
		}
		arr = append(arr, p.parseValue())

		p.skipSpace()
		switch ch, ok := p.c.peek(); {
		case !ok:
			panic(p.errorf(start, MalformedArray, nil, "unterminated array"))
		case ch == ',':
			p.c.advance()
			if p.comments {
				p.skipSpace()
				if p.c.is(']') {
					p.c.advance()
					return arr
				}
			}
		case ch == ']':
			p.c.advance()
			return arr
		default:
			panic(p.errorf(start, MalformedArray, nil, "expected \",\" or \"]\" in array, found %s", p.c.found()))
		}
	}
}

// parseObject parses a braced, comma-separated sequence of key: value
// members. A repeated key replaces the value of its earlier occurrence.
func (p *parser) parseObject() Object {
	start := p.c.here()
	p.enter(start)
	p.c.advance() // "{"
	defer p.leave()

	obj := make(Object)
	p.skipSpace()
	if p.c.is('}') {
		p.c.advance()
		return obj
	}
	for {
		p.skipSpace()
		if p.c.eof {
			panic(p.errorf(start, MalformedObject, nil, "unterminated object"))
		} else if p.c.is('}') {
			panic(p.errorf(start, MalformedObject, nil, "expected object key, found %s", p.c.found()))
		}
		key := p.parseString()

		p.skipSpace()
		if p.c.eof {
			panic(p.errorf(start, MalformedObject, nil, "unterminated object"))
		} else if !p.c.is(':') {
			panic(p.errorf(start, MalformedObject, nil, "expected \":\" after key %q, found %s", key, p.c.found()))
		}
		p.c.advance()

		p.skipSpace()
		if p.c.eof {
			panic(p.errorf(start, MalformedObject, nil, "unterminated object"))
		} else if p.c.is(']') || p.c.is('}') {
			panic(p.errorf(start, MalformedObject, nil, "expected value for key %q, found %s", key, p.c.found()))
		}
		obj[key] = p.parseValue()

		p.skipSpace()
		switch ch, ok := p.c.peek(); {
		case !ok:
			panic(p.errorf(start, MalformedObject, nil, "unterminated object"))
		case ch == ',':
			p.c.advance()
			if p.comments {
				p.skipSpace()
				if p.c.is('}') {
					p.c.advance()
					return obj
				}
			}
		case ch == '}':
			p.c.advance()
			return obj
		default:
			panic(p.errorf(start, MalformedObject, nil, "expected \",\" or \"}\" in object, found %s", p.c.found()))
		}
	}
}

// skipSpace consumes whitespace and, if enabled, comments.
func (p *parser) skipSpace() {
	for {
		p.c.skipSpace()
		if !p.comments || !p.c.is('/') {
			return
		} else if n := p.c.next(); n != '/' && n != '*' {
			return // not a comment; let the grammar report it
		}
		start := p.c.here()
		if !p.c.skipComment() {
			panic(p.errorf(start, MalformedComment, nil, "unterminated block comment"))
		}
	}
}

func (p *parser) enter(start position) {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		panic(p.errorf(start, TooDeep, nil, "nesting depth exceeds %d", p.maxDepth))
	}
}

func (p *parser) leave() { p.depth-- }

// errorf constructs a syntax error for a construct beginning at start and
// failing at the current lookahead.
func (p *parser) errorf(start position, kind ErrorKind, err error, msg string, args ...any) *SyntaxError {
	end := p.c.here()
	return &SyntaxError{
		Kind: kind,
		Location: Location{
			Span:  Span{Pos: start.off, End: end.off},
			First: start.lc,
			Last:  end.lc,
		},
		Message: fmt.Sprintf(msg, args...),
		err:     err,
	}
}

// numError extracts the complaint from a strconv error, without the name of
// the function and the input, which the caller already reports.
func numError(err error) error {
	var nerr *strconv.NumError
	if errors.As(err, &nerr) {
		return nerr.Err
	}
	return err
}
