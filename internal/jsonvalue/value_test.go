// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jsonvalue

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(vs []Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Str()
	}
	return out
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	v, err := Parse([]byte(`{"z":1,"a":"two","m":[true,null,3.50]}`))
	require.NoError(t, err)

	assert.Equal(t, Object, v.Kind())
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
	assert.Equal(t, "1", v.Get("z").Str())
	assert.Equal(t, Number, v.Get("z").Kind())
	assert.Equal(t, "two", v.Get("a").Str())
	assert.Equal(t, 3, v.Get("m").Len())
	assert.Equal(t, "true", v.Get("m").Index(0).Str())
	assert.True(t, v.Get("m").Index(1).IsNull())
	assert.Equal(t, "3.50", v.Get("m").Index(2).Str())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ``},
		{"truncated", `{"a":`},
		{"trailing", `{"a":1} {"b":2}`},
		{"bad token", `{"a":nope}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParse_TooDeep(t *testing.T) {
	doc := strings.Repeat("[", maxNesting+2) + strings.Repeat("]", maxNesting+2)
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestDecoder_Stream(t *testing.T) {
	d := NewDecoder(strings.NewReader("{\"n\":1}\n{\"n\":2}\n"))
	var got []string
	for {
		v, err := d.Decode()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, v.Get("n").Str())
	}
	assert.Equal(t, []string{"1", "2"}, got)
}

func TestAccessors_NeverFail(t *testing.T) {
	v := MustParse(`{"a":{"b":["x"]},"s":"str"}`)

	assert.Equal(t, "x", v.Path("a", "b").Index(0).Str())
	assert.True(t, v.Path("a", "missing", "deeper").IsNull())
	assert.True(t, v.Get("s").Get("anything").IsNull())
	assert.True(t, v.Path("a", "b").Index(5).IsNull())
	assert.True(t, v.Path("a", "b").Index(-1).IsNull())
	assert.True(t, v.Index(0).IsNull())
	assert.Nil(t, v.Get("s").Keys())
	assert.Nil(t, v.Elems())
	assert.Equal(t, 0, v.Get("s").Len())
	assert.False(t, v.Get("s").Has("a"))
	assert.True(t, v.Has("a"))

	var zero Value
	assert.True(t, zero.IsNull())
	assert.Equal(t, "", zero.Str())
	_, ok := zero.Text()
	assert.False(t, ok)
}

func TestGet_DuplicateKeyLastWins(t *testing.T) {
	v := MustParse(`{"k":"first","k":"second"}`)
	assert.Equal(t, "second", v.Get("k").Str())
	assert.Equal(t, []string{"second"}, DeepFindText(v, "k"))
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{`null`, true},
		{`""`, true},
		{`{}`, true},
		{`[]`, true},
		{`0`, false},
		{`false`, false},
		{`" "`, false},
		{`[null]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.input).IsEmpty())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

func TestDeepFind(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
		want []string
	}{
		{
			name: "absent key",
			doc:  `{"a":{"b":1}}`,
			key:  "x",
			want: nil,
		},
		{
			name: "document order depth first",
			doc:  `{"k":"1","a":{"k":"2","b":[{"k":"3"},{"c":{"k":"4"}}]},"z":{"k":"5"}}`,
			key:  "k",
			want: []string{"1", "2", "3", "4", "5"},
		},
		{
			name: "array values are flattened",
			doc:  `{"k":["a",["b","c"]],"n":{"k":"d"}}`,
			key:  "k",
			want: []string{"a", "b", "c", "d"},
		},
		{
			name: "null and empty dropped",
			doc:  `{"k":null,"a":{"k":""},"b":{"k":[]},"c":{"k":[null,"x"]}}`,
			key:  "k",
			want: []string{"x"},
		},
		{
			name: "equal values in separate objects kept",
			doc:  `[{"k":"same"},{"k":"same"}]`,
			key:  "k",
			want: []string{"same", "same"},
		},
		{
			name: "repeated key in one object last wins",
			doc:  `{"k":"a","k":"b"}`,
			key:  "k",
			want: []string{"b"},
		},
		{
			name: "shadowed member not searched",
			doc:  `{"x":{"k":"hidden"},"k":"top","x":{"k":"seen"}}`,
			key:  "k",
			want: []string{"top", "seen"},
		},
		{
			name: "matched value searched too",
			doc:  `{"k":{"k":"inner"}}`,
			key:  "k",
			want: []string{"", "inner"},
		},
		{
			name: "scalar root",
			doc:  `"k"`,
			key:  "k",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeepFind(MustParse(tt.doc), tt.key)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, texts(got))
		})
	}
}

func TestDeepFind_Bounded(t *testing.T) {
	// Nest a match far below MaxDepth; it must not be reached.
	depth := MaxDepth + 10
	doc := strings.Repeat(`{"a":`, depth) + `{"k":"deep"}` + strings.Repeat(`}`, depth)
	v := MustParse(doc)

	assert.Empty(t, DeepFind(v, "k"))

	shallow := MustParse(`{"a":{"a":{"k":"near"}}}`)
	assert.Equal(t, []string{"near"}, DeepFindText(shallow, "k"))
}

func TestDeepFind_DoesNotMutate(t *testing.T) {
	v := MustParse(`{"k":["a","b"],"x":{"k":"c"}}`)
	before := v.Get("k").Len()
	DeepFind(v, "k")
	assert.Equal(t, before, v.Get("k").Len())
	assert.Equal(t, []string{"k", "x"}, v.Keys())
}

func TestDeepFindText_SkipsContainers(t *testing.T) {
	v := MustParse(`{"k":{"nested":true},"a":{"k":7}}`)
	assert.Equal(t, []string{"7"}, DeepFindText(v, "k"))
}

func TestConstructors(t *testing.T) {
	v := NewObject(Member{Key: "a", Value: NewArray(NewString("x"))})
	assert.Equal(t, "x", v.Get("a").Index(0).Str())
	assert.Len(t, v.Members(), 1)
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		wantKind Kind
		wantStr  string
	}{
		{"nil", nil, Null, ""},
		{"bool", true, Bool, "true"},
		{"string", "x", String, "x"},
		{"json number keeps literal", json.Number("1.50"), Number, "1.50"},
		{"int", 42, Number, "42"},
		{"negative int64", int64(-7), Number, "-7"},
		{"uint64", uint64(18446744073709551615), Number, "18446744073709551615"},
		{"float without exponent", 1999.5, Number, "1999.5"},
		{"whole float", float64(2004), Number, "2004"},
		{"NaN", math.NaN(), Null, ""},
		{"infinity", math.Inf(1), Null, ""},
		{"unsupported type", make(chan int), Null, ""},
		{"value passes through", NewString("v"), String, "v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromAny(tt.in)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantStr, got.Str())
		})
	}
}

func TestFromAny_Containers(t *testing.T) {
	v := FromAny(map[string]any{
		"zeta":  1,
		"alpha": []any{"a", map[string]any{"y": nil, "x": false}},
		"mid":   []string{"s"},
	})
	require.Equal(t, Object, v.Kind())
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, v.Keys())
	assert.Equal(t, []string{"x", "y"}, v.Get("alpha").Index(1).Keys())
	assert.Equal(t, "s", v.Path("mid").Index(0).Str())

	keyed := FromAny(map[any]any{2: "two", "b": "bee"})
	assert.Equal(t, []string{"2", "b"}, keyed.Keys())
}

func TestFromAny_FeedsDeepFind(t *testing.T) {
	v := FromAny(map[string]any{
		"b": map[string]any{"k": "second"},
		"a": map[string]any{"k": "first"},
	})
	assert.Equal(t, []string{"first", "second"}, DeepFindText(v, "k"))
}

func TestInterface(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want any
	}{
		{"null", `null`, nil},
		{"bool", `false`, false},
		{"number keeps literal", `1.50`, json.Number("1.50")},
		{"string", `"s"`, "s"},
		{"empty object", `{}`, map[string]any{}},
		{"empty array", `[]`, []any{}},
		{
			name: "nested",
			doc:  `{"a":[1,{"b":null}],"c":"d"}`,
			want: map[string]any{
				"a": []any{json.Number("1"), map[string]any{"b": nil}},
				"c": "d",
			},
		},
		{"repeated key last wins", `{"k":"a","k":"b"}`, map[string]any{"k": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustParse(tt.doc).Interface())
		})
	}
}

func TestInterface_MarshalsBack(t *testing.T) {
	doc := `{"Header":{"DbId":"db","An":"1"},"Items":[{"Name":"Title","Data":"T"}],"Score":12.0}`
	out, err := json.Marshal(MustParse(doc).Interface())
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
	assert.Contains(t, string(out), `"Score":12.0`)
}
