package types

import (
	"encoding/json"
	"fmt"
)

// Expandable models a reference field the real API returns either as a bare
// id string or as the expanded object (e.g. a charge's customer). Exactly
// one normalization rule applies everywhere such ambiguity appears: the ID
// field is always populated, whether or not the expanded form is present.
type Expandable[T Object] struct {
	ID       string
	Expanded *T
}

// Ref builds an unexpanded reference from an id.
func Ref[T Object](entityID string) Expandable[T] {
	return Expandable[T]{ID: entityID}
}

// ExpandedRef builds an expanded reference; the id is normalized from the
// object itself.
func ExpandedRef[T Object](obj *T) Expandable[T] {
	if obj == nil {
		return Expandable[T]{}
	}

	return Expandable[T]{ID: (*obj).ObjectID(), Expanded: obj}
}

// IsZero reports whether the reference is absent.
func (e Expandable[T]) IsZero() bool {
	return e.ID == "" && e.Expanded == nil
}

// MarshalJSON renders the expanded object when present, the bare id string
// otherwise, and null when absent.
func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.Expanded != nil {
		return json.Marshal(e.Expanded)
	}
	if e.ID == "" {
		return []byte("null"), nil
	}

	return json.Marshal(e.ID)
}

// UnmarshalJSON accepts either wire form and normalizes the id.
func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*e = Expandable[T]{}
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &e.ID)
	}

	var obj T
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("expandable: %w", err)
	}
	e.Expanded = &obj
	e.ID = obj.ObjectID()

	return nil
}
