package id_test

import (
	"strings"
	"testing"

	"github.com/xraph/paymock/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() string
		prefix string
	}{
		{"CustomerID", id.NewCustomerID, "cus_"},
		{"CardID", id.NewCardID, "card_"},
		{"SubscriptionID", id.NewSubscriptionID, "sub_"},
		{"SubscriptionItemID", id.NewSubscriptionItemID, "si_"},
		{"PlanID", id.NewPlanID, "plan_"},
		{"ChargeID", id.NewChargeID, "ch_"},
		{"RefundID", id.NewRefundID, "re_"},
		{"DisputeID", id.NewDisputeID, "dp_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
			if len(got) != len(tt.prefix)+id.DefaultLength {
				t.Errorf("expected suffix length %d, got id %q", id.DefaultLength, got)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"Default-ish", 14, 14},
		{"Long", 24, 24},
		{"One", 1, 1},
		{"Zero", 0, 0},
		{"Negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := id.Random(tt.length)
			if len(got) != tt.want {
				t.Errorf("Random(%d): got length %d, want %d", tt.length, len(got), tt.want)
			}
			for _, r := range got {
				if !isAlphanumeric(r) {
					t.Errorf("Random(%d): non-alphanumeric rune %q in %q", tt.length, r, got)
				}
			}
		})
	}
}

func TestRandomCollisions(t *testing.T) {
	seen := make(map[string]bool)
	for range 10000 {
		s := id.Random(14)
		if seen[s] {
			t.Fatalf("collision after %d ids: %q", len(seen), s)
		}
		seen[s] = true
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		prefix id.Prefix
		want   bool
	}{
		{"Match", "ch_AbC123", id.PrefixCharge, true},
		{"WrongPrefix", "cus_AbC123", id.PrefixCharge, false},
		{"PrefixOfPrefix", "cards_AbC123", id.PrefixCard, false},
		{"BareDelimiter", "ch_", id.PrefixCharge, false},
		{"Empty", "", id.PrefixCharge, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := id.Is(tt.value, tt.prefix); got != tt.want {
				t.Errorf("Is(%q, %q): got %v, want %v", tt.value, tt.prefix, got, tt.want)
			}
		})
	}
}

func isAlphanumeric(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return false
}
