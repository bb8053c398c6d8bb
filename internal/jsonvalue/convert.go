// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jsonvalue

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// FromAny converts a generic Go value, as produced by encoding/json or a
// YAML decoder, into a Value. Map keys are sorted so the result does not
// depend on map iteration order. Values with no JSON equivalent (NaN,
// channels, funcs) become Null.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case bool:
		return Value{kind: Bool, b: t}
	case string:
		return NewString(t)
	case json.Number:
		return Value{kind: Number, s: t.String()}
	case int:
		return number(strconv.FormatInt(int64(t), 10))
	case int8:
		return number(strconv.FormatInt(int64(t), 10))
	case int16:
		return number(strconv.FormatInt(int64(t), 10))
	case int32:
		return number(strconv.FormatInt(int64(t), 10))
	case int64:
		return number(strconv.FormatInt(t, 10))
	case uint:
		return number(strconv.FormatUint(uint64(t), 10))
	case uint8:
		return number(strconv.FormatUint(uint64(t), 10))
	case uint16:
		return number(strconv.FormatUint(uint64(t), 10))
	case uint32:
		return number(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return number(strconv.FormatUint(t, 10))
	case float32:
		return fromFloat(float64(t), 32)
	case float64:
		return fromFloat(t, 64)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: FromAny(t[k])}
		}
		return NewObject(members...)
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, v := range t {
			m[fmt.Sprint(k)] = v
		}
		return FromAny(m)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return NewArray(elems...)
	case []string:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = NewString(e)
		}
		return NewArray(elems...)
	}
	return Value{}
}

func number(lit string) Value { return Value{kind: Number, s: lit} }

func fromFloat(f float64, bits int) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return number(strconv.FormatFloat(f, 'f', -1, bits))
}

// Interface returns v as a generic Go value: nil, bool, json.Number,
// string, map[string]any or []any. A key repeated within an object keeps
// its last value, as Get does. Numbers keep their literal text.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return json.Number(v.s)
	case String:
		return v.s
	case Object:
		m := make(map[string]any, len(v.members))
		for _, mem := range v.members {
			m[mem.Key] = mem.Value.Interface()
		}
		return m
	case Array:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Interface()
		}
		return out
	}
	return nil
}
