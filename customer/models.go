// Package customer holds the customer model. A customer owns zero or more
// card sources and zero or more subscriptions; both nested lists are always
// complete (never paginated) on the stored object.
package customer

import (
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by customer objects.
const ObjectName = "customer"

type Customer struct {
	ID            string                                     `json:"id"`
	Object        string                                     `json:"object"`
	Created       int64                                      `json:"created"`
	Currency      string                                     `json:"currency,omitempty"`
	DefaultSource string                                     `json:"default_source,omitempty"`
	Description   string                                     `json:"description,omitempty"`
	Email         string                                     `json:"email,omitempty"`
	Livemode      bool                                       `json:"livemode"`
	Metadata      types.Metadata                             `json:"metadata"`
	Sources       *types.List[*card.Card]                    `json:"sources"`
	Subscriptions *types.List[*subscription.Subscription]    `json:"subscriptions"`
}

func (c Customer) ObjectID() string   { return c.ID }
func (c Customer) ObjectKind() string { return ObjectName }

// Params are the caller-supplied fields for creating a customer.
type Params struct {
	// ID lets tests pin an explicit customer id; creation fails with
	// resource_already_exists if it collides.
	ID          string         `json:"id,omitempty"`
	Description string         `json:"description,omitempty"`
	Email       string         `json:"email,omitempty"`
	Source      *card.Spec     `json:"source,omitempty"`
	Metadata    types.Metadata `json:"metadata,omitempty"`
}

// UpdateParams are the mutable fields accepted by customer update. Nil
// pointers leave the stored value untouched.
type UpdateParams struct {
	Description   *string        `json:"description,omitempty"`
	Email         *string        `json:"email,omitempty"`
	DefaultSource string         `json:"default_source,omitempty"`
	Metadata      types.Metadata `json:"metadata,omitempty"`
}

// ListParams paginate customer list calls.
type ListParams struct {
	types.ListParams
}
