// Package subscription holds the subscription and subscription-item models.
// A subscription is owned by a customer and owns an ordered list of items;
// each item's Subscription back-reference equals the owning subscription's
// id by construction.
package subscription

import (
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/plan"
	"github.com/xraph/paymock/types"
)

// Object-kind tags carried by subscription and subscription-item objects.
const (
	ObjectName     = "subscription"
	ItemObjectName = "subscription_item"
)

// Subscription statuses the emulator models. Cancellation is a status
// change, never removal.
const (
	StatusActive   = "active"
	StatusCanceled = "canceled"
)

type Subscription struct {
	ID                 string             `json:"id"`
	Object             string             `json:"object"`
	CancelAtPeriodEnd  bool               `json:"cancel_at_period_end"`
	CanceledAt         int64              `json:"canceled_at,omitempty"`
	Created            int64              `json:"created"`
	CurrentPeriodEnd   int64              `json:"current_period_end"`
	CurrentPeriodStart int64              `json:"current_period_start"`
	Customer           string             `json:"customer"`
	DefaultSource      string             `json:"default_source,omitempty"`
	Items              *types.List[*Item] `json:"items"`
	Livemode           bool               `json:"livemode"`
	Metadata           types.Metadata     `json:"metadata"`
	Plan               *plan.Plan         `json:"plan"`
	Quantity           int64              `json:"quantity"`
	Start              int64              `json:"start"`
	StartDate          int64              `json:"start_date"`
	Status             string             `json:"status"`
}

func (s Subscription) ObjectID() string   { return s.ID }
func (s Subscription) ObjectKind() string { return ObjectName }

type Item struct {
	ID           string         `json:"id"`
	Object       string         `json:"object"`
	Created      int64          `json:"created"`
	Metadata     types.Metadata `json:"metadata"`
	Plan         *plan.Plan     `json:"plan"`
	Quantity     int64          `json:"quantity"`
	Subscription string         `json:"subscription"`
}

func (i Item) ObjectID() string   { return i.ID }
func (i Item) ObjectKind() string { return ItemObjectName }

// ItemParams are the caller-supplied fields for one subscription item.
type ItemParams struct {
	Plan     string         `json:"plan"`
	Quantity *int64         `json:"quantity,omitempty"`
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// Params are the caller-supplied fields for creating a subscription. The
// plan is resolved from Plan or, when absent, from the first item.
type Params struct {
	// ID lets tests pin an explicit subscription id; creation fails with
	// resource_already_exists if it collides.
	ID            string         `json:"id,omitempty"`
	Customer      string         `json:"customer"`
	Plan          string         `json:"plan,omitempty"`
	Items         []ItemParams   `json:"items,omitempty"`
	DefaultSource *card.Spec     `json:"default_source,omitempty"`
	Metadata      types.Metadata `json:"metadata,omitempty"`
}

// UpdateParams are the mutable fields accepted by subscription update. Item
// quantities are applied positionally: Items[i] maps to the stored
// items.data[i]. Supplying more entries than the subscription has is
// rejected, never written out of bounds.
type UpdateParams struct {
	Items    []ItemParams   `json:"items,omitempty"`
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// ListParams narrow and paginate subscription list calls.
type ListParams struct {
	types.ListParams
	Customer string `json:"customer,omitempty"`
}
