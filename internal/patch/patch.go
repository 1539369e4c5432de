// Package patch provides a tri-state optional value for partial updates.
//
// A Field decoded from JSON distinguishes three states: the key was absent
// (Set == false), the key was present with a JSON null (Set && Null), or the
// key carried a value (Set && !Null).
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a JSON-decodable optional value that remembers whether it was sent.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value returns a Field holding v.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that was explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked by encoding/json when the key is present.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON renders an absent or null field as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports whether the key was sent, with a value or null.
func (f Field[T]) Present() bool {
	return f.Set
}

// HasValue reports whether the field was sent with a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Ptr returns a pointer to the value, or nil when the field is null or absent.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// Convert maps the value of f through fn, preserving the absent and null states.
func Convert[T, U any](f Field[T], fn func(T) (U, error)) (Field[U], error) {
	if !f.HasValue() {
		return Field[U]{Set: f.Set, Null: f.Null}, nil
	}
	v, err := fn(f.Value)
	if err != nil {
		return Field[U]{}, err
	}
	return Value(v), nil
}
