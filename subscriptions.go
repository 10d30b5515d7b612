package paymock

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/plan"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

// ──────────────────────────────────────────────────
// Subscription Management
// ──────────────────────────────────────────────────

// CreateSubscription creates a subscription for an existing customer,
// materializing an inline default source as a card under that customer and
// building one subscription item per caller-supplied item entry. The new
// subscription registers itself on the owning customer, so subsequent
// customer retrieval enumerates it.
//
// Every mocked subscription bills monthly regardless of the referenced
// plan's real interval: current_period_end is exactly one calendar month
// after current_period_start. This is a documented simplification.
func (b *Backend) CreateSubscription(account string, params *subscription.Params) (*subscription.Subscription, error) {
	if params == nil {
		params = &subscription.Params{}
	}

	subID := params.ID
	if subID != "" && b.subscriptions.Contains(account, subID) {
		return nil, NewAlreadyExistsError("subscription", subID)
	}

	cust, err := b.GetCustomer(account, params.Customer, "customer")
	if err != nil {
		return nil, err
	}

	// The plan comes from params.plan or, failing that, the first item.
	planID := params.Plan
	if planID == "" && len(params.Items) > 0 {
		planID = params.Items[0].Plan
	}
	if planID == "" {
		return nil, NewInvalidRequestError("Missing required param: plan.", "plan")
	}

	// Source materialization comes after every validation that can still
	// reject the create, so a failed create writes nothing.
	defaultSource := ""
	if params.DefaultSource != nil {
		defaultSource, err = b.resolveSource(account, cust.ID, params.DefaultSource, "default_source")
		if err != nil {
			return nil, err
		}
	}

	if subID == "" {
		subID = b.newID(id.PrefixSubscription)
	}

	now := b.now()
	sub := &subscription.Subscription{
		ID:                 subID,
		Object:             subscription.ObjectName,
		Created:            now,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   monthAfter(now),
		Customer:           cust.ID,
		DefaultSource:      defaultSource,
		Items:              types.NewList[*subscription.Item]("/v1/subscription_items?subscription="+subID, nil),
		Metadata:           params.Metadata.Clone(),
		Plan:               plan.Synthesize(planID, now),
		Quantity:           1,
		Start:              now,
		StartDate:          now,
		Status:             subscription.StatusActive,
	}

	items := params.Items
	if len(items) == 0 {
		// A plan-only create still carries exactly one item, as the real
		// API does.
		items = []subscription.ItemParams{{Plan: planID}}
	}
	for _, ip := range items {
		itemPlan := ip.Plan
		if itemPlan == "" {
			itemPlan = planID
		}
		quantity := int64(1)
		if ip.Quantity != nil {
			quantity = *ip.Quantity
		}
		sub.Items.Append(&subscription.Item{
			ID:           b.newID(id.PrefixSubscriptionItem),
			Object:       subscription.ItemObjectName,
			Created:      now,
			Metadata:     ip.Metadata.Clone(),
			Plan:         plan.Synthesize(itemPlan, now),
			Quantity:     quantity,
			Subscription: subID,
		})
	}
	sub.Quantity = sub.Items.Data[0].Quantity

	b.subscriptions.Put(account, sub)
	cust.Subscriptions.Append(sub)

	b.recordEvent(account, "customer.subscription.created", sub)
	b.hooks.EmitSubscriptionCreated(sub)

	b.logger.Debug("created subscription",
		"account", account,
		"subscription", subID,
		"customer", cust.ID,
		"plan", planID,
	)
	return sub, nil
}

// GetSubscription retrieves a subscription by id, failing with a 404
// resource_missing error naming param if absent.
func (b *Backend) GetSubscription(account, subID, param string) (*subscription.Subscription, error) {
	sub, ok := b.subscriptions.Get(account, subID)
	if !ok {
		return nil, NewNotFoundError("subscription", param, subID)
	}

	return sub, nil
}

// UpdateSubscription applies the recognized mutable fields in place. Item
// quantities are overwritten positionally: params.Items[i] maps to the
// stored items.data[i]. Supplying more entries than the subscription has is
// rejected with an invalid_request_error rather than written out of bounds.
func (b *Backend) UpdateSubscription(account, subID string, params *subscription.UpdateParams) (*subscription.Subscription, error) {
	sub, err := b.GetSubscription(account, subID, "id")
	if err != nil {
		return nil, err
	}
	if params == nil {
		return sub, nil
	}

	if len(params.Items) > len(sub.Items.Data) {
		return nil, NewInvalidRequestError(
			fmt.Sprintf("Received %d items but the subscription has %d.", len(params.Items), len(sub.Items.Data)),
			"items",
		)
	}
	for i, ip := range params.Items {
		if ip.Quantity != nil {
			sub.Items.Data[i].Quantity = *ip.Quantity
		}
	}
	if len(sub.Items.Data) > 0 {
		sub.Quantity = sub.Items.Data[0].Quantity
	}
	if params.Metadata != nil {
		sub.Metadata = params.Metadata.Clone()
	}

	b.recordEvent(account, "customer.subscription.updated", sub)
	b.hooks.EmitSubscriptionUpdated(sub)

	return sub, nil
}

// CancelSubscription cancels a subscription. Cancellation is a status
// change: the subscription stays addressable forever.
func (b *Backend) CancelSubscription(account, subID string) (*subscription.Subscription, error) {
	sub, err := b.GetSubscription(account, subID, "id")
	if err != nil {
		return nil, err
	}

	sub.Status = subscription.StatusCanceled
	sub.CanceledAt = b.now()

	b.recordEvent(account, "customer.subscription.deleted", sub)
	b.hooks.EmitSubscriptionCanceled(sub)

	return sub, nil
}

// ListSubscriptions returns the account's subscriptions in insertion order,
// optionally narrowed to one customer, paginated.
func (b *Backend) ListSubscriptions(account string, params *subscription.ListParams) (*types.List[*subscription.Subscription], error) {
	if params == nil {
		params = &subscription.ListParams{}
	}

	all := b.subscriptions.All(account)
	if params.Customer != "" {
		all = lo.Filter(all, func(s *subscription.Subscription, _ int) bool {
			return s.Customer == params.Customer
		})
	}

	return types.ApplyListParams(all, params.ListParams, func(entityID, param string) error {
		_, err := b.GetSubscription(account, entityID, param)
		return err
	})
}

// monthAfter advances a unix timestamp by one calendar month.
func monthAfter(unix int64) int64 {
	return time.Unix(unix, 0).UTC().AddDate(0, 1, 0).Unix()
}
