package types

import (
	"encoding/json"
	"testing"
)

func TestExpandableMarshal(t *testing.T) {
	tests := []struct {
		name string
		ref  Expandable[testEntity]
		want string
	}{
		{"bare id", Ref[testEntity]("te_123"), `"te_123"`},
		{"absent", Expandable[testEntity]{}, "null"},
		{"expanded", ExpandedRef(&testEntity{ID: "te_123"}), `{"id":"te_123"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b, err := json.Marshal(tc.ref)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tc.want {
				t.Fatalf("got %s, want %s", b, tc.want)
			}
		})
	}
}

func TestExpandableUnmarshal(t *testing.T) {
	t.Run("id form", func(t *testing.T) {
		var ref Expandable[testEntity]
		if err := json.Unmarshal([]byte(`"te_123"`), &ref); err != nil {
			t.Fatal(err)
		}
		if ref.ID != "te_123" || ref.Expanded != nil {
			t.Fatalf("unexpected ref: %+v", ref)
		}
	})

	t.Run("object form normalizes the id", func(t *testing.T) {
		var ref Expandable[testEntity]
		if err := json.Unmarshal([]byte(`{"id":"te_123"}`), &ref); err != nil {
			t.Fatal(err)
		}
		if ref.ID != "te_123" || ref.Expanded == nil {
			t.Fatalf("unexpected ref: %+v", ref)
		}
	})

	t.Run("null clears", func(t *testing.T) {
		ref := Ref[testEntity]("te_123")
		if err := json.Unmarshal([]byte("null"), &ref); err != nil {
			t.Fatal(err)
		}
		if !ref.IsZero() {
			t.Fatalf("expected zero ref, got %+v", ref)
		}
	})
}

func TestExpandedRefNormalizesID(t *testing.T) {
	e := testEntity{ID: "te_999"}
	ref := ExpandedRef(&e)
	if ref.ID != "te_999" {
		t.Fatalf("id not normalized from object: %+v", ref)
	}
	if ExpandedRef[testEntity](nil).IsZero() != true {
		t.Fatal("nil object must yield a zero ref")
	}
}
