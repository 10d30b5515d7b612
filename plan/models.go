// Package plan holds the synthesized billing-plan objects attached to mocked
// subscriptions. The emulator never stores plans independently: a plan object
// is derived deterministically from whatever plan id the caller references.
package plan

import (
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by plan objects.
const ObjectName = "plan"

type Plan struct {
	ID            string         `json:"id"`
	Object        string         `json:"object"`
	Amount        int64          `json:"amount"`
	Created       int64          `json:"created"`
	Currency      string         `json:"currency"`
	Interval      string         `json:"interval"`
	IntervalCount int64          `json:"interval_count"`
	Livemode      bool           `json:"livemode"`
	Metadata      types.Metadata `json:"metadata"`
	Name          string         `json:"name"`
}

func (p Plan) ObjectID() string   { return p.ID }
func (p Plan) ObjectKind() string { return ObjectName }

// Synthesize builds the deterministic plan object for the given plan id.
// Every field except the creation time depends only on the id, so repeated
// references to one plan across a test run stay consistent. The interval is
// always monthly: the emulator models every subscription as monthly
// regardless of what the referenced plan would really bill (a documented
// simplification, not a bug).
func Synthesize(planID string, now int64) *Plan {
	return &Plan{
		ID:            planID,
		Object:        ObjectName,
		Amount:        2000,
		Created:       now,
		Currency:      "usd",
		Interval:      "month",
		IntervalCount: 1,
		Livemode:      false,
		Metadata:      types.Metadata{},
		Name:          planID,
	}
}
