package optional

import (
	"bytes"
	"encoding/json"
)

// Field carries a value together with whether it was supplied at all.
// A JSON key that is absent leaves Set false; any present key, including
// an explicit null, sets it.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Of returns a set field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Unset returns a field that was not supplied.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it is set to a non-null value.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set && !f.Null
}

// OrElse returns the value when set, otherwise def.
func (f Field[T]) OrElse(def T) T {
	if f.Set && !f.Null {
		return f.Value
	}
	return def
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		f.Value = zero
		f.Null = true
		return nil
	}
	f.Null = false
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ValidationValue exposes the inner value to go-playground/validator custom
// type funcs. Unset and null fields report nil so omitempty skips them.
func (f Field[T]) ValidationValue() any {
	if !f.Set || f.Null {
		return nil
	}
	return f.Value
}
