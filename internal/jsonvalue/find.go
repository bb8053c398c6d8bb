// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jsonvalue

// MaxDepth is the deepest container level DeepFind descends into.
const MaxDepth = 256

// DeepFind collects every value stored under key in any object reachable
// from v, depth-first in document order. An object's own match comes before
// matches nested below it, including matches inside the matched value.
// Array matches are flattened and empty values (null, "", {}, []) dropped.
// Equal values found in different places are all kept.
//
// A key repeated within one object follows Get: only its last occurrence is
// visible, and the shadowed members are neither matched nor searched.
func DeepFind(v Value, key string) []Value {
	var out []Value
	deepFind(v, key, 0, &out)
	return out
}

func deepFind(v Value, key string, depth int, out *[]Value) {
	if depth > MaxDepth {
		return
	}
	switch v.kind {
	case Object:
		shadowed := shadowedMembers(v.members)
		for i, m := range v.members {
			if m.Key == key && !shadowed[i] {
				appendFlat(out, m.Value, depth)
			}
		}
		for i, m := range v.members {
			if !shadowed[i] {
				deepFind(m.Value, key, depth+1, out)
			}
		}
	case Array:
		for _, e := range v.elems {
			deepFind(e, key, depth+1, out)
		}
	}
}

// shadowedMembers marks members whose key occurs again later in the same
// object. It returns nil when no key repeats.
func shadowedMembers(members []Member) []bool {
	var (
		seen     = make(map[string]bool, len(members))
		shadowed []bool
	)
	for i := len(members) - 1; i >= 0; i-- {
		k := members[i].Key
		if seen[k] {
			if shadowed == nil {
				shadowed = make([]bool, len(members))
			}
			shadowed[i] = true
			continue
		}
		seen[k] = true
	}
	return shadowed
}

func appendFlat(out *[]Value, v Value, depth int) {
	if depth > MaxDepth {
		return
	}
	if v.kind == Array {
		for _, e := range v.elems {
			appendFlat(out, e, depth+1)
		}
		return
	}
	if v.IsEmpty() {
		return
	}
	*out = append(*out, v)
}

// DeepFindText is DeepFind restricted to scalar matches, returned as text.
func DeepFindText(v Value, key string) []string {
	var out []string
	for _, m := range DeepFind(v, key) {
		if s, ok := m.Text(); ok {
			out = append(out, s)
		}
	}
	return out
}
