// Package refund holds the refund model. Refunds are owned by a charge; the
// Charge back-reference equals the owning charge's id by construction, and a
// charge's nested refund list is always complete (the mock never paginates
// refunds).
package refund

import (
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by refund objects.
const ObjectName = "refund"

// StatusSucceeded is the only refund status the emulator produces: no real
// money moves, so refunds settle instantly.
const StatusSucceeded = "succeeded"

type Refund struct {
	ID       string         `json:"id"`
	Object   string         `json:"object"`
	Amount   int64          `json:"amount"`
	Charge   string         `json:"charge"`
	Created  int64          `json:"created"`
	Currency string         `json:"currency"`
	Metadata types.Metadata `json:"metadata"`
	Reason   string         `json:"reason,omitempty"`
	Status   string         `json:"status"`
}

func (r Refund) ObjectID() string   { return r.ID }
func (r Refund) ObjectKind() string { return ObjectName }

// Params are the caller-supplied fields for creating a refund. A nil Amount
// refunds the charge's remaining unrefunded balance.
type Params struct {
	ID       string         `json:"id,omitempty"`
	Charge   string         `json:"charge"`
	Amount   *int64         `json:"amount,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// UpdateParams are the mutable fields accepted by refund update.
type UpdateParams struct {
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// ListParams narrow and paginate refund list calls.
type ListParams struct {
	types.ListParams
	Charge string `json:"charge,omitempty"`
}
