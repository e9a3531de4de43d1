// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"maps"
	"slices"
)

// A Value is an arbitrary JSON value. The concrete type of a Value is one of
// Null, Bool, Integer, Float, String, Array, or Object; no other types
// implement the interface.
type Value interface {
	// Kind reports which kind of JSON value this is.
	Kind() Kind

	isValue()
}

// A Number is a numeric JSON value. Its concrete type is Integer or Float.
type Number interface {
	Value

	// Float64 returns the value of the number as a float64.
	Float64() float64

	isNumber()
}

// Kind enumerates the kinds of JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota + 1
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	NumberKind: "number",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) || kindStr[k] == "" {
		return "invalid kind"
	}
	return kindStr[k]
}

// Null is the JSON null constant.
type Null struct{}

func (Null) Kind() Kind { return NullKind }
func (Null) isValue()   {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (Bool) isValue()   {}

// An Integer is a number with no fraction or exponent.
type Integer int64

func (Integer) Kind() Kind { return NumberKind }
func (Integer) isValue()   {}
func (Integer) isNumber()  {}

// Int64 returns the value of z as an int64.
func (z Integer) Int64() int64 { return int64(z) }

// Float64 returns the value of z as a float64, which may lose precision.
func (z Integer) Float64() float64 { return float64(z) }

// A Float is a number written with a fraction and/or exponent.
type Float float64

func (Float) Kind() Kind { return NumberKind }
func (Float) isValue()   {}
func (Float) isNumber()  {}

// Float64 returns the value of f as a float64.
func (f Float) Float64() float64 { return float64(f) }

// A String is a decoded string value.
type String string

func (String) Kind() Kind { return StringKind }
func (String) isValue()   {}

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Array is an ordered sequence of values.
type Array []Value

func (Array) Kind() Kind { return ArrayKind }
func (Array) isValue()   {}

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is a collection of key-value members. Keys are unique; when the
// source text repeats a key, the last occurrence wins.
type Object map[string]Value

func (Object) Kind() Kind { return ObjectKind }
func (Object) isValue()   {}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the value of the member of o with the given key, or nil.
func (o Object) Find(key string) Value { return o[key] }

// Keys returns the keys of o in lexicographic order.
func (o Object) Keys() []string { return slices.Sorted(maps.Keys(o)) }
