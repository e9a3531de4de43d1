// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over parsed JSON values.
//
// A query describes a substructure of a JSON value tree, such as an object
// member, array element, or a path through the tree. Evaluating a query
// against a concrete value traverses the structure described by the query
// and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a value. For example, given
// the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields the value true.
//
// Where a query visits the members of an object, it does so in lexicographic
// order of their keys.
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/jvalue"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root jvalue.Value, q Query) (jvalue.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a JSON value. Both the input and the
// output of a query are JSON values.
type Query interface {
	eval(jvalue.Value) (jvalue.Value, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// input value. If no keys are specified, the input is returned. Each key must
// be a string (an object key), an int (an array offset), or a nested Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return Key(t)
	case int:
		return Index(t)
	case Query:
		return t
	default:
		panic(fmt.Sprintf("invalid path element %T", key))
	}
}

// with applies f to v if v has type T, or reports an error.
func with[T jvalue.Value](v jvalue.Value, f func(T) (jvalue.Value, error)) (jvalue.Value, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return nil, fmt.Errorf("got %v, want %v", kindOf(v), zero.Kind())
	}
	return f(t)
}

func kindOf(v jvalue.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}

// Key selects the value of the object member with the given key.
func Key(key string) Query { return objKey(key) }

type objKey string

func (o objKey) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(obj jvalue.Object) (jvalue.Value, error) {
		val, ok := obj[string(o)]
		if !ok {
			return nil, fmt.Errorf("key %q not found", string(o))
		}
		return val, nil
	})
}

// Index selects the element at offset i of an array. A negative offset
// counts backward from the end of the array.
func Index(i int) Query { return nthQuery(i) }

type nthQuery int

func (nq nthQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(arr jvalue.Array) (jvalue.Value, error) {
		idx, ok := fixIndex(int(nq), len(arr))
		if !ok {
			return nil, fmt.Errorf("index %d out of range (0..%d)", nq, len(arr))
		}
		return arr[idx], nil
	})
}

// fixIndex maps a possibly-negative offset to an index in [0, n).
func fixIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// Selection constructs an array of the elements of its input array for which
// the specified function returns true.
type Selection func(jvalue.Value) bool

func (q Selection) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(a jvalue.Array) (jvalue.Value, error) {
		out := jvalue.Array{}
		for _, elt := range a {
			if q(elt) {
				out = append(out, elt)
			}
		}
		return out, nil
	})
}

// Mapping constructs an array in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(jvalue.Value) jvalue.Value

func (q Mapping) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(a jvalue.Array) (jvalue.Value, error) {
		out := make(jvalue.Array, len(a))
		for i, elt := range a {
			out[i] = q(elt)
		}
		return out, nil
	})
}

// Slice selects a slice of an array from offsets lo to hi. The range includes
// lo but excludes hi. Negative offsets select from the end of the array.
// If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(arr jvalue.Array) (jvalue.Value, error) {
		lox := q.lo
		if lox < 0 {
			lox += len(arr)
		}
		hix := q.hi
		if hix <= 0 {
			hix += len(arr)
		}
		if lox < 0 || lox > len(arr) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, len(arr))
		} else if hix < 0 || hix > len(arr) {
			return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, len(arr))
		} else if lox > hix {
			return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
		}
		return arr[lox:hix], nil
	})
}

// Pick constructs an array by picking the designated offsets from an array.
// Negative offsets select from the end of the input array.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(arr jvalue.Array) (jvalue.Value, error) {
		out := make(jvalue.Array, 0, len(q))
		for _, off := range q {
			idx, ok := fixIndex(off, len(arr))
			if !ok {
				return nil, fmt.Errorf("index %d out of range (0..%d)", off, len(arr))
			}
			out = append(out, arr[idx])
		}
		return out, nil
	})
}

// Len returns an integer representing the length of its input.
//
// For an object, the length is the number of members.
// For an array, the length is the number of elements.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	switch t := v.(type) {
	case jvalue.Null:
		return jvalue.Integer(0), nil
	case interface{ Len() int }:
		return jvalue.Integer(t.Len()), nil
	}
	return nil, fmt.Errorf("cannot take length of %v", kindOf(v))
}

// Seq is a sequential composition of queries. An empty sequence selects the
// input; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v jvalue.Value) (jvalue.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives. The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v jvalue.Value) (jvalue.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input, including
// the input itself, and returns an array of the values for which the query
// succeeds. The arguments have the same constraints as Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	var out jvalue.Array

	stk := []jvalue.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// N.B. Push in reverse order, so we visit in order.
		switch t := next.(type) {
		case jvalue.Object:
			keys := t.Keys()
			for i := len(keys) - 1; i >= 0; i-- {
				stk = append(stk, t[keys[i]])
			}
		case jvalue.Array:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i])
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Each applies a query to each element of an array and returns an array of the
// resulting values. It fails if the input is not an array. The arguments have
// the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	return with(v, func(arr jvalue.Array) (jvalue.Value, error) {
		out := make(jvalue.Array, len(arr))
		for i, elt := range arr {
			w, err := q.Query.eval(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = w
		}
		return out, nil
	})
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input.
type Object map[string]Query

func (o Object) eval(v jvalue.Value) (jvalue.Value, error) {
	out := make(jvalue.Object, len(o))
	for key, q := range o {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out[key] = val
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v jvalue.Value) (jvalue.Value, error) {
	out := make(jvalue.Array, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(jvalue.String(s)) }

// A Float query ignores its input and returns the given number.
func Float(n float64) Query { return Value(jvalue.Float(n)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Value(jvalue.Integer(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(jvalue.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(jvalue.Null{}) }

// A Value query ignores its input and returns the given value.
func Value(v jvalue.Value) Query { return constQuery{v} }

type constQuery struct{ jvalue.Value }

func (c constQuery) eval(_ jvalue.Value) (jvalue.Value, error) { return c.Value, nil }

// A Glob query returns an array of the values contained in its input, which
// must be an object or an array.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v jvalue.Value) (jvalue.Value, error) {
	switch t := v.(type) {
	case jvalue.Object:
		out := make(jvalue.Array, 0, len(t))
		for _, key := range t.Keys() {
			out = append(out, t[key])
		}
		return out, nil
	case jvalue.Array:
		return t, nil
	default:
		return nil, errors.New("no matching values")
	}
}
