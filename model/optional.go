package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a payload field that is either present with a value or absent.
// A JSON null decodes as absent.
type Optional[T any] struct {
	Value   T
	Present bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Present
}

// Or returns the value, or def when the field was absent.
func (o Optional[T]) Or(def T) T {
	if !o.Present {
		return def
	}
	return o.Value
}

// IsZero reports absence so `omitzero` drops the field on encode.
func (o Optional[T]) IsZero() bool {
	return !o.Present
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*o = Some(v)
	return nil
}
