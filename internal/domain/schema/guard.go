// Package schema validates inbound JSON payloads before they reach a service.
//
// Writes are closed-schema: a payload is accepted only when the set of its
// top-level member names is exactly one of the expected field sets. Missing
// and extra members are both rejected, so every write behaves like a full
// PUT/POST and never like a PATCH.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"shelfkeeper/internal/domain/apperr"
)

// FieldSet is an order-independent set of JSON member names.
type FieldSet map[string]struct{}

// Fields builds a FieldSet.
func Fields(names ...string) FieldSet {
	fs := make(FieldSet, len(names))
	for _, n := range names {
		fs[n] = struct{}{}
	}
	return fs
}

// Without returns a copy of fs minus names.
func (fs FieldSet) Without(names ...string) FieldSet {
	out := make(FieldSet, len(fs))
	for n := range fs {
		out[n] = struct{}{}
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// Equal reports whether both sets hold the same names.
func (fs FieldSet) Equal(other FieldSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for n := range fs {
		if _, ok := other[n]; !ok {
			return false
		}
	}
	return true
}

func (fs FieldSet) String() string {
	names := make([]string, 0, len(fs))
	for n := range fs {
		names = append(names, n)
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ",") + "}"
}

// Members returns the top-level member names of a JSON object payload.
func Members(payload []byte) (FieldSet, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	if obj == nil {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	fs := make(FieldSet, len(obj))
	for n := range obj {
		fs[n] = struct{}{}
	}
	return fs, nil
}

// Validate accepts payload when its member set equals one of expected.
func Validate(payload []byte, expected ...FieldSet) error {
	got, err := Members(payload)
	if err != nil {
		return apperr.Invalid(err)
	}
	for _, fs := range expected {
		if got.Equal(fs) {
			return nil
		}
	}
	return apperr.Invalid(fmt.Errorf("fields %s do not match the expected schema", got))
}

// Decode validates payload against expected and decodes it into T. A member
// holding the wrong JSON type is a BadRequest too.
func Decode[T any](payload []byte, expected ...FieldSet) (T, error) {
	var v T
	if err := Validate(payload, expected...); err != nil {
		return v, err
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, apperr.Invalid(fmt.Errorf("decode payload: %w", err))
	}
	return v, nil
}
