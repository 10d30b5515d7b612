// Package dispute holds the dispute model. Disputes reference the disputed
// charge by id; the charge records the dispute id in return.
package dispute

import (
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by dispute objects.
const ObjectName = "dispute"

// Dispute statuses the emulator models.
const (
	StatusNeedsResponse = "needs_response"
	StatusUnderReview   = "under_review"
	StatusWon           = "won"
	StatusLost          = "lost"
)

// ReasonGeneral is the default dispute reason when the caller supplies none.
const ReasonGeneral = "general"

type Dispute struct {
	ID       string            `json:"id"`
	Object   string            `json:"object"`
	Amount   int64             `json:"amount"`
	Charge   string            `json:"charge"`
	Created  int64             `json:"created"`
	Currency string            `json:"currency"`
	Evidence map[string]string `json:"evidence"`
	Livemode bool              `json:"livemode"`
	Metadata types.Metadata    `json:"metadata"`
	Reason   string            `json:"reason"`
	Status   string            `json:"status"`
}

func (d Dispute) ObjectID() string   { return d.ID }
func (d Dispute) ObjectKind() string { return ObjectName }

// Params are the caller-supplied fields for creating a dispute. A nil
// Amount disputes the full charge amount.
type Params struct {
	ID       string         `json:"id,omitempty"`
	Charge   string         `json:"charge"`
	Amount   *int64         `json:"amount,omitempty"`
	Reason   string         `json:"reason,omitempty"`
	Metadata types.Metadata `json:"metadata,omitempty"`
}

// UpdateParams are the mutable fields accepted by dispute update. Evidence
// entries are merged into the stored evidence set.
type UpdateParams struct {
	Evidence map[string]string `json:"evidence,omitempty"`
	Metadata types.Metadata    `json:"metadata,omitempty"`
}

// ListParams narrow and paginate dispute list calls.
type ListParams struct {
	types.ListParams
	Charge string `json:"charge,omitempty"`
}
