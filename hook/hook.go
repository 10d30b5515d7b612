// Package hook provides an extensible hook system for the emulator.
// Hooks observe lifecycle events (object creation, mutation, cancellation)
// so test harnesses can extend the mock without patching it.
package hook

import (
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/subscription"
)

// Hook is the base interface that all hooks must implement.
type Hook interface {
	Name() string
}

// OnCustomerCreated is called after a customer is created.
type OnCustomerCreated interface {
	Hook
	OnCustomerCreated(c *customer.Customer) error
}

// OnCardCreated is called after a card source is materialized under a
// customer.
type OnCardCreated interface {
	Hook
	OnCardCreated(c *card.Card) error
}

// OnSubscriptionCreated is called after a subscription is created.
type OnSubscriptionCreated interface {
	Hook
	OnSubscriptionCreated(s *subscription.Subscription) error
}

// OnSubscriptionUpdated is called after a subscription is mutated.
type OnSubscriptionUpdated interface {
	Hook
	OnSubscriptionUpdated(s *subscription.Subscription) error
}

// OnSubscriptionCanceled is called after a subscription is canceled.
type OnSubscriptionCanceled interface {
	Hook
	OnSubscriptionCanceled(s *subscription.Subscription) error
}

// OnChargeCreated is called after a charge is created.
type OnChargeCreated interface {
	Hook
	OnChargeCreated(c *charge.Charge) error
}

// OnRefundCreated is called after a refund is created.
type OnRefundCreated interface {
	Hook
	OnRefundCreated(r *refund.Refund) error
}

// OnDisputeCreated is called after a dispute is opened.
type OnDisputeCreated interface {
	Hook
	OnDisputeCreated(d *dispute.Dispute) error
}

// OnDisputeClosed is called after a dispute is closed.
type OnDisputeClosed interface {
	Hook
	OnDisputeClosed(d *dispute.Dispute) error
}
