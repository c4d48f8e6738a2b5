package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
)

//go:embed schema.json
var defaultDocument []byte

var (
	// ErrKeyCountMismatch is returned when the record and the schema have a
	// different number of keys.
	ErrKeyCountMismatch = errors.New("Input keys do not match schema keys")

	// ErrSchemaUnavailable is returned when the reference schema cannot be
	// read or parsed.
	ErrSchemaUnavailable = errors.New("Error checking schema")
)

// TypeMismatchError reports the first field whose name or type disagrees
// with the schema.
type TypeMismatchError struct {
	Field    string
	Actual   string
	Declared string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Input type mismatch for %s (it is '%s' but should be '%s')", e.Field, e.Actual, e.Declared)
}

type loadError struct {
	cause error
}

func (e *loadError) Error() string   { return ErrSchemaUnavailable.Error() }
func (e *loadError) Unwrap() []error { return []error{ErrSchemaUnavailable, e.cause} }

// Property is a schema property in declaration order.
type Property struct {
	Name string
	Type string
}

// Option configures a Validator.
type Option func(*Validator)

// WithStrictOrder makes the validator compare input keys positionally
// against the schema, as the first published calculator did.
func WithStrictOrder() Option {
	return func(v *Validator) {
		v.strictOrder = true
	}
}

// Validator checks records against an immutable, pre-parsed schema. It is
// safe for concurrent use.
type Validator struct {
	document    []byte
	properties  []Property
	strictOrder bool
}

// Default returns a Validator for the embedded NELA input schema.
func Default(opts ...Option) (*Validator, error) {
	return NewValidator(defaultDocument, opts...)
}

// NewValidator parses a draft-07 schema document and returns a Validator for
// its top-level properties.
func NewValidator(document []byte, opts ...Option) (*Validator, error) {
	props, err := parseProperties(document)
	if err != nil {
		return nil, &loadError{cause: err}
	}
	if len(props) == 0 {
		return nil, &loadError{cause: errors.New("schema declares no properties")}
	}

	v := &Validator{
		document:   bytes.Clone(document),
		properties: props,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Properties returns the schema properties in declaration order.
func (v *Validator) Properties() []Property {
	out := make([]Property, len(v.properties))
	copy(out, v.properties)
	return out
}

// Document returns the raw schema document.
func (v *Validator) Document() []byte {
	return bytes.Clone(v.document)
}

// StrictOrder reports whether keys are compared positionally.
func (v *Validator) StrictOrder() bool {
	return v.strictOrder
}

// Validate checks the record's key count, then each schema property in
// declaration order. It stops at the first failure.
func (v *Validator) Validate(r Record) error {
	if v == nil || len(v.properties) == 0 {
		return ErrSchemaUnavailable
	}
	if r.Len() != len(v.properties) {
		return ErrKeyCountMismatch
	}

	if v.strictOrder {
		return v.validatePositional(r)
	}

	for _, p := range v.properties {
		actual := TypeUndefined
		if value, ok := r.Lookup(p.Name); ok {
			actual = TypeOf(value)
		}
		if !compatible(p.Type, actual) {
			return &TypeMismatchError{Field: p.Name, Actual: actual, Declared: p.Type}
		}
	}
	return nil
}

func (v *Validator) validatePositional(r Record) error {
	for i, p := range v.properties {
		f := r.fields[i]
		actual := TypeOf(f.Value)
		if f.Name == p.Name && actual == p.Type {
			continue
		}
		// The historical check skips any position where an integer is
		// declared and a number supplied, whatever the key name.
		if p.Type == TypeInteger && actual == TypeNumber {
			continue
		}
		return &TypeMismatchError{Field: f.Name, Actual: actual, Declared: p.Type}
	}
	return nil
}

func compatible(declared, actual string) bool {
	return declared == actual || (declared == TypeInteger && actual == TypeNumber)
}

// parseProperties walks the document with a token decoder so that the
// declaration order of "properties" survives.
func parseProperties(document []byte) ([]Property, error) {
	dec := json.NewDecoder(bytes.NewReader(document))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var props []Property
	found := false
	for dec.More() {
		key, err := nextKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "properties" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fmt.Errorf("skipping %s: %w", key, err)
			}
			continue
		}

		found = true
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("properties: %w", err)
		}
		for dec.More() {
			name, err := nextKey(dec)
			if err != nil {
				return nil, err
			}
			var def struct {
				Type string `json:"type"`
			}
			if err := dec.Decode(&def); err != nil {
				return nil, fmt.Errorf("property %s: %w", name, err)
			}
			if def.Type == "" {
				return nil, fmt.Errorf("property %s has no type", name)
			}
			props = append(props, Property{Name: name, Type: def.Type})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, fmt.Errorf("properties: %w", err)
		}
	}

	if !found {
		return nil, errors.New("schema has no properties")
	}
	return props, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func nextKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}
