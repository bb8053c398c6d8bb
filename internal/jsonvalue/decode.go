// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// maxNesting bounds decoder recursion on hostile input.
const maxNesting = 10000

// ErrTooDeep is returned when a document nests deeper than the decoder allows.
var ErrTooDeep = errors.New("jsonvalue: document nested too deeply")

// Decoder reads a stream of JSON values, such as JSON Lines.
type Decoder struct {
	dec *json.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &Decoder{dec: dec}
}

// More reports whether another value is available.
func (d *Decoder) More() bool { return d.dec.More() }

// Decode reads the next value. It returns io.EOF at the end of the stream.
func (d *Decoder) Decode() (Value, error) {
	return decodeValue(d.dec, 0)
}

// Parse decodes exactly one JSON value from data.
func Parse(data []byte) (Value, error) {
	d := NewDecoder(bytes.NewReader(data))
	v, err := d.Decode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("jsonvalue: unexpected data after top-level value")
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string) Value {
	v, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return v
}

func decodeValue(dec *json.Decoder, depth int) (Value, error) {
	if depth > maxNesting {
		return Value{}, ErrTooDeep
	}
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	switch t := tok.(type) {
	case nil:
		return Value{}, nil
	case bool:
		return Value{kind: Bool, b: t}, nil
	case json.Number:
		return Value{kind: Number, s: t.String()}, nil
	case string:
		return Value{kind: String, s: t}, nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec, depth)
		case '[':
			return decodeArray(dec, depth)
		}
		return Value{}, fmt.Errorf("jsonvalue: unexpected delimiter %q", t)
	}
	return Value{}, fmt.Errorf("jsonvalue: unexpected token %T", tok)
}

func decodeObject(dec *json.Decoder, depth int) (Value, error) {
	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("jsonvalue: object key is %T", tok)
		}
		val, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, fmt.Errorf("decoding %q: %w", key, err)
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: Object, members: members}, nil
}

func decodeArray(dec *json.Decoder, depth int) (Value, error) {
	var elems []Value
	for dec.More() {
		val, err := decodeValue(dec, depth+1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Value{kind: Array, elems: elems}, nil
}
