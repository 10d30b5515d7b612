// Package event holds the local event-feed model. The emulator records an
// event for every successful mutation so tests can assert on what happened
// without instrumenting the code under test. Events never leave the process;
// webhook delivery is explicitly out of scope.
package event

import (
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by event objects.
const ObjectName = "event"

type Event struct {
	ID       string `json:"id"`
	Object   string `json:"object"`
	Account  string `json:"account,omitempty"`
	Created  int64  `json:"created"`
	Data     Data   `json:"data"`
	Livemode bool   `json:"livemode"`
	Type     string `json:"type"`
}

// Data wraps the object an event describes, as the real API does.
type Data struct {
	Object any `json:"object"`
}

func (e Event) ObjectID() string   { return e.ID }
func (e Event) ObjectKind() string { return ObjectName }

// ListParams narrow and paginate event list calls.
type ListParams struct {
	types.ListParams
	// Type filters to one event type, e.g. "customer.created".
	Type string `json:"type,omitempty"`
}
