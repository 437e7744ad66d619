package store

import "encoding/json"

// Patch is an optional field of a partial update. Set is true when the
// field was present in the request, even if its value was null.
type Patch[T any] struct {
	Set   bool
	Value T
}

// Value builds a set Patch.
func Value[T any](v T) Patch[T] { return Patch[T]{Set: true, Value: v} }

func (p *Patch[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	return json.Unmarshal(b, &p.Value)
}
