package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// JSON primitive type names reported for runtime values.
const (
	TypeNumber    = "number"
	TypeInteger   = "integer"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeObject    = "object"
	TypeUndefined = "undefined"
)

// ErrNotAnObject is returned when a decoded payload is not a JSON object.
var ErrNotAnObject = errors.New("payload is not a JSON object")

// Field is a single key/value pair of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an input record as received from the caller. Key order is kept
// because the strict validation mode compares keys positionally.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord builds a Record from fields in the given order. A repeated name
// keeps its first position and takes the last value.
func NewRecord(fields ...Field) Record {
	r := Record{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

func (r *Record) set(name string, value any) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Len returns the number of distinct keys.
func (r Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in insertion order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the value stored under name.
func (r Record) Lookup(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// DecodeRecord parses a JSON object into a Record, preserving key order.
// Numbers are decoded as float64.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Record{}, ErrNotAnObject
	}

	r := Record{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, fmt.Errorf("decoding record key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("decoding record: unexpected token %v", tok)
		}

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return Record{}, fmt.Errorf("decoding value of %s: %w", key, err)
		}
		value, err := normalizeValue(raw)
		if err != nil {
			return Record{}, fmt.Errorf("decoding value of %s: %w", key, err)
		}
		r.set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Record{}, errors.New("decoding record: unexpected data after object")
	}

	return r, nil
}

func normalizeValue(v any) (any, error) {
	n, ok := v.(json.Number)
	if !ok {
		return v, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %s: %w", n.String(), err)
	}
	return f, nil
}

// TypeOf reports the JSON primitive type name of a runtime value. Null,
// arrays and objects all report "object".
func TypeOf(v any) string {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return TypeNumber
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	default:
		return TypeObject
	}
}
