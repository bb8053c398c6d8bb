// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jsonvalue holds a decoded JSON document as an immutable tagged
// union. Objects keep their source key order so that traversals over a
// document are deterministic. Accessors never fail: navigating through a
// missing key, a wrong kind, or an out-of-range index yields the Null value.
package jsonvalue

// Kind identifies the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

var kindNames = [...]string{"null", "bool", "number", "string", "object", "array"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero Value is Null.
type Value struct {
	kind    Kind
	b       bool
	s       string // string payload, or the literal text of a number
	members []Member
	elems   []Value
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null (including absent values).
func (v Value) IsNull() bool { return v.kind == Null }

// IsEmpty reports whether v is Null, an empty string, or a container
// without entries.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case Null:
		return true
	case String:
		return v.s == ""
	case Object:
		return len(v.members) == 0
	case Array:
		return len(v.elems) == 0
	}
	return false
}

// Get returns the value stored under key. When an object repeats a key the
// last occurrence wins, matching encoding/json.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value
		}
	}
	return Value{}
}

// Has reports whether v is an object containing key.
func (v Value) Has(key string) bool {
	if v.kind != Object {
		return false
	}
	for _, m := range v.members {
		if m.Key == key {
			return true
		}
	}
	return false
}

// Path follows a chain of object keys.
func (v Value) Path(keys ...string) Value {
	for _, k := range keys {
		v = v.Get(k)
		if v.kind == Null {
			return v
		}
	}
	return v
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) Value {
	if v.kind != Array || i < 0 || i >= len(v.elems) {
		return Value{}
	}
	return v.elems[i]
}

// Len returns the number of members or elements; 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.members)
	case Array:
		return len(v.elems)
	}
	return 0
}

// Keys returns the object keys in source order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns the object members in source order. The slice must not
// be modified.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}
	return v.members
}

// Elems returns the array elements. The slice must not be modified.
func (v Value) Elems() []Value {
	if v.kind != Array {
		return nil
	}
	return v.elems
}

// Str returns the text of a scalar: the string itself, a number's literal,
// or "true"/"false". Null and containers yield "".
func (v Value) Str() string {
	switch v.kind {
	case String, Number:
		return v.s
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	}
	return ""
}

// Text returns the scalar text of v and whether v is a non-empty scalar.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case String, Number, Bool:
		s := v.Str()
		return s, s != ""
	}
	return "", false
}

// NewString returns a String value.
func NewString(s string) Value { return Value{kind: String, s: s} }

// NewObject returns an Object value with the given members.
func NewObject(members ...Member) Value { return Value{kind: Object, members: members} }

// NewArray returns an Array value with the given elements.
func NewArray(elems ...Value) Value { return Value{kind: Array, elems: elems} }
