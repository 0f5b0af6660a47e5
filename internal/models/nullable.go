package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch field with three states: absent, explicit null and a value.
// Absent fields are dropped from JSON output through the omitzero tag option.
type Nullable[T any] struct {
	Value T
	Valid bool
	Set   bool
}

func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true, Set: true}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// FromPtr maps nil to an explicit null.
func FromPtr[T any](v *T) Nullable[T] {
	if v == nil {
		return Null[T]()
	}
	return Some(*v)
}

func (n Nullable[T]) IsZero() bool { return !n.Set }

func (n Nullable[T]) IsNull() bool { return n.Set && !n.Valid }

func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// Or returns the patched value, or fallback when the field is absent.
func (n Nullable[T]) Or(fallback *T) *T {
	if !n.Set {
		return fallback
	}
	return n.Ptr()
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.Value = zero
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
