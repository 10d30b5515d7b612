// Package id generates prefix-qualified identifiers for all paymock entities.
//
// Every mocked object carries an id in the format "prefix_suffix", where the
// prefix identifies the entity type and the suffix is a random alphanumeric
// string. The shapes match the real API's public id formats because client
// code under test may pattern-match on them. Collision resistance only needs
// to hold for test workloads; the randomness is not security-sensitive.
package id

import (
	"math/rand/v2"
	"strings"
)

// Prefix identifies the entity type encoded in an id.
type Prefix string

// Prefix constants for all paymock entity types.
const (
	PrefixAccount          Prefix = "acct" // Tenant account
	PrefixCustomer         Prefix = "cus"  // Customer
	PrefixCard             Prefix = "card" // Card payment source
	PrefixSubscription     Prefix = "sub"  // Subscription
	PrefixSubscriptionItem Prefix = "si"   // Subscription item
	PrefixPlan             Prefix = "plan" // Billing plan
	PrefixCharge           Prefix = "ch"   // Charge
	PrefixRefund           Prefix = "re"   // Refund
	PrefixDispute          Prefix = "dp"   // Dispute
	PrefixEvent            Prefix = "evt"  // Event feed entry
	PrefixRequest          Prefix = "req"  // Request id (HTTP shim)
)

// DefaultLength is the suffix length used when callers do not ask for a
// specific one. Generated ids stay within the shapes clients already accept.
const DefaultLength = 14

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Random returns a random alphanumeric string of length n.
func Random(n int) string {
	if n <= 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(alphanumeric[rand.IntN(len(alphanumeric))])
	}

	return b.String()
}

// New generates a new id with the given prefix and the default suffix length.
func New(prefix Prefix) string {
	return NewWithLength(prefix, DefaultLength)
}

// NewWithLength generates a new id with the given prefix and suffix length.
func NewWithLength(prefix Prefix, length int) string {
	return string(prefix) + "_" + Random(length)
}

// Is reports whether s carries the given prefix.
func Is(s string, prefix Prefix) bool {
	return strings.HasPrefix(s, string(prefix)+"_") && len(s) > len(prefix)+1
}

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewCustomerID generates a new customer id ("cus_…").
func NewCustomerID() string { return New(PrefixCustomer) }

// NewCardID generates a new card id ("card_…").
func NewCardID() string { return New(PrefixCard) }

// NewSubscriptionID generates a new subscription id ("sub_…").
func NewSubscriptionID() string { return New(PrefixSubscription) }

// NewSubscriptionItemID generates a new subscription item id ("si_…").
func NewSubscriptionItemID() string { return New(PrefixSubscriptionItem) }

// NewPlanID generates a new plan id ("plan_…").
func NewPlanID() string { return New(PrefixPlan) }

// NewChargeID generates a new charge id ("ch_…").
func NewChargeID() string { return New(PrefixCharge) }

// NewRefundID generates a new refund id ("re_…").
func NewRefundID() string { return New(PrefixRefund) }

// NewDisputeID generates a new dispute id ("dp_…").
func NewDisputeID() string { return New(PrefixDispute) }
