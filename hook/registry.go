package hook

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/subscription"
)

// Registry manages all registered hooks and dispatches events to them.
// Interface lists are cached at registration time so emission stays cheap.
// Hook errors are logged, never propagated: a failing observer must not
// change the emulator's API behavior.
type Registry struct {
	mu     sync.RWMutex
	hooks  []Hook
	logger *slog.Logger

	onCustomerCreated      []OnCustomerCreated
	onCardCreated          []OnCardCreated
	onSubscriptionCreated  []OnSubscriptionCreated
	onSubscriptionUpdated  []OnSubscriptionUpdated
	onSubscriptionCanceled []OnSubscriptionCanceled
	onChargeCreated        []OnChargeCreated
	onRefundCreated        []OnRefundCreated
	onDisputeCreated       []OnDisputeCreated
	onDisputeClosed        []OnDisputeClosed
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{logger: slog.Default()}
}

// WithLogger sets the logger used for hook failures.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a hook to the registry and caches its interfaces.
func (r *Registry) Register(h Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.hooks {
		if existing.Name() == h.Name() {
			return fmt.Errorf("hook: duplicate registration: %s", h.Name())
		}
	}

	r.hooks = append(r.hooks, h)

	if v, ok := h.(OnCustomerCreated); ok {
		r.onCustomerCreated = append(r.onCustomerCreated, v)
	}
	if v, ok := h.(OnCardCreated); ok {
		r.onCardCreated = append(r.onCardCreated, v)
	}
	if v, ok := h.(OnSubscriptionCreated); ok {
		r.onSubscriptionCreated = append(r.onSubscriptionCreated, v)
	}
	if v, ok := h.(OnSubscriptionUpdated); ok {
		r.onSubscriptionUpdated = append(r.onSubscriptionUpdated, v)
	}
	if v, ok := h.(OnSubscriptionCanceled); ok {
		r.onSubscriptionCanceled = append(r.onSubscriptionCanceled, v)
	}
	if v, ok := h.(OnChargeCreated); ok {
		r.onChargeCreated = append(r.onChargeCreated, v)
	}
	if v, ok := h.(OnRefundCreated); ok {
		r.onRefundCreated = append(r.onRefundCreated, v)
	}
	if v, ok := h.(OnDisputeCreated); ok {
		r.onDisputeCreated = append(r.onDisputeCreated, v)
	}
	if v, ok := h.(OnDisputeClosed); ok {
		r.onDisputeClosed = append(r.onDisputeClosed, v)
	}

	return nil
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.hooks)
}

func (r *Registry) fail(h Hook, event string, err error) {
	r.logger.Error("hook failed", "hook", h.Name(), "event", event, "error", err)
}

// EmitCustomerCreated notifies OnCustomerCreated hooks.
func (r *Registry) EmitCustomerCreated(c *customer.Customer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onCustomerCreated {
		if err := h.OnCustomerCreated(c); err != nil {
			r.fail(h, "customer.created", err)
		}
	}
}

// EmitCardCreated notifies OnCardCreated hooks.
func (r *Registry) EmitCardCreated(c *card.Card) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onCardCreated {
		if err := h.OnCardCreated(c); err != nil {
			r.fail(h, "customer.source.created", err)
		}
	}
}

// EmitSubscriptionCreated notifies OnSubscriptionCreated hooks.
func (r *Registry) EmitSubscriptionCreated(s *subscription.Subscription) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onSubscriptionCreated {
		if err := h.OnSubscriptionCreated(s); err != nil {
			r.fail(h, "customer.subscription.created", err)
		}
	}
}

// EmitSubscriptionUpdated notifies OnSubscriptionUpdated hooks.
func (r *Registry) EmitSubscriptionUpdated(s *subscription.Subscription) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onSubscriptionUpdated {
		if err := h.OnSubscriptionUpdated(s); err != nil {
			r.fail(h, "customer.subscription.updated", err)
		}
	}
}

// EmitSubscriptionCanceled notifies OnSubscriptionCanceled hooks.
func (r *Registry) EmitSubscriptionCanceled(s *subscription.Subscription) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onSubscriptionCanceled {
		if err := h.OnSubscriptionCanceled(s); err != nil {
			r.fail(h, "customer.subscription.deleted", err)
		}
	}
}

// EmitChargeCreated notifies OnChargeCreated hooks.
func (r *Registry) EmitChargeCreated(c *charge.Charge) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onChargeCreated {
		if err := h.OnChargeCreated(c); err != nil {
			r.fail(h, "charge.succeeded", err)
		}
	}
}

// EmitRefundCreated notifies OnRefundCreated hooks.
func (r *Registry) EmitRefundCreated(rf *refund.Refund) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onRefundCreated {
		if err := h.OnRefundCreated(rf); err != nil {
			r.fail(h, "charge.refunded", err)
		}
	}
}

// EmitDisputeCreated notifies OnDisputeCreated hooks.
func (r *Registry) EmitDisputeCreated(d *dispute.Dispute) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onDisputeCreated {
		if err := h.OnDisputeCreated(d); err != nil {
			r.fail(h, "charge.dispute.created", err)
		}
	}
}

// EmitDisputeClosed notifies OnDisputeClosed hooks.
func (r *Registry) EmitDisputeClosed(d *dispute.Dispute) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.onDisputeClosed {
		if err := h.OnDisputeClosed(d); err != nil {
			r.fail(h, "charge.dispute.closed", err)
		}
	}
}
