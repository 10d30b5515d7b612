// Package card holds the card payment-source model. Cards are always owned
// by a customer; the Customer back-reference equals the owning customer's id
// by construction.
package card

import (
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by card objects.
const ObjectName = "card"

type Card struct {
	ID          string         `json:"id"`
	Object      string         `json:"object"`
	Brand       string         `json:"brand"`
	Country     string         `json:"country"`
	Customer    string         `json:"customer"`
	CVCCheck    string         `json:"cvc_check"`
	ExpMonth    int64          `json:"exp_month"`
	ExpYear     int64          `json:"exp_year"`
	Fingerprint string         `json:"fingerprint"`
	Funding     string         `json:"funding"`
	Last4       string         `json:"last4"`
	Metadata    types.Metadata `json:"metadata"`
}

func (c Card) ObjectID() string   { return c.ID }
func (c Card) ObjectKind() string { return ObjectName }

// Params are the caller-supplied fields for creating a card.
type Params struct {
	// ID lets tests pin an explicit card id; creation fails if it collides.
	ID       string         `json:"id,omitempty"`
	Number   string         `json:"number"`
	ExpMonth int64          `json:"exp_month"`
	ExpYear  int64          `json:"exp_year"`
	CVC      string         `json:"cvc,omitempty"`
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// Spec is the two-variant union for source fields the real API accepts
// either as the id of an existing card or as inline card details. Exactly
// one variant is set.
type Spec struct {
	ID   string
	Card *Params
}

// SpecID builds the id variant.
func SpecID(cardID string) *Spec { return &Spec{ID: cardID} }

// SpecCard builds the inline-details variant.
func SpecCard(p *Params) *Spec { return &Spec{Card: p} }

// IsInline reports whether the spec carries inline card details that must be
// materialized into a card before use.
func (s *Spec) IsInline() bool { return s != nil && s.Card != nil }

// Brand maps a card number to its scheme the way the real service reports
// it. Unknown ranges fall back to "Unknown".
func BrandOf(number string) string {
	if number == "" {
		return "Unknown"
	}
	switch number[0] {
	case '4':
		return "Visa"
	case '5':
		return "MasterCard"
	case '3':
		return "American Express"
	case '6':
		return "Discover"
	default:
		return "Unknown"
	}
}

// Last4 returns the last four digits of a card number.
func Last4(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}
