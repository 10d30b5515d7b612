// Package charge holds the charge model. A charge owns a complete list of
// refunds and may reference its customer either as a bare id or expanded.
package charge

import (
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/types"
)

// ObjectName is the object-kind tag carried by charge objects.
const ObjectName = "charge"

// Charge statuses the emulator produces. Every mocked charge settles
// immediately; there is no asynchronous capture flow.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

type Charge struct {
	ID             string                               `json:"id"`
	Object         string                               `json:"object"`
	Amount         int64                                `json:"amount"`
	AmountRefunded int64                                `json:"amount_refunded"`
	Captured       bool                                 `json:"captured"`
	Created        int64                                `json:"created"`
	Currency       string                               `json:"currency"`
	Customer       types.Expandable[customer.Customer]  `json:"customer"`
	Description    string                               `json:"description,omitempty"`
	Dispute        string                               `json:"dispute,omitempty"`
	Livemode       bool                                 `json:"livemode"`
	Metadata       types.Metadata                       `json:"metadata"`
	Outcome        *Outcome                             `json:"outcome"`
	Paid           bool                                 `json:"paid"`
	Refunded       bool                                 `json:"refunded"`
	Refunds        *types.List[*refund.Refund]          `json:"refunds"`
	Source         *card.Card                           `json:"source,omitempty"`
	Status         string                               `json:"status"`
}

func (c Charge) ObjectID() string   { return c.ID }
func (c Charge) ObjectKind() string { return ObjectName }

// Outcome is the synthesized payment-outcome sub-object attached to every
// mocked charge.
type Outcome struct {
	NetworkStatus string `json:"network_status"`
	Reason        string `json:"reason,omitempty"`
	RiskLevel     string `json:"risk_level"`
	SellerMessage string `json:"seller_message"`
	Type          string `json:"type"`
}

// ApprovedOutcome returns the outcome attached to a succeeding mocked
// charge, mirroring what the real service reports for an approved payment.
func ApprovedOutcome() *Outcome {
	return &Outcome{
		NetworkStatus: "approved_by_network",
		RiskLevel:     "normal",
		SellerMessage: "Payment complete.",
		Type:          "authorized",
	}
}

// Params are the caller-supplied fields for creating a charge.
type Params struct {
	ID          string         `json:"id,omitempty"`
	Amount      int64          `json:"amount"`
	Currency    string         `json:"currency"`
	Customer    string         `json:"customer,omitempty"`
	Source      *card.Spec     `json:"source,omitempty"`
	Description string         `json:"description,omitempty"`
	Metadata    types.Metadata `json:"metadata,omitempty"`
}

// UpdateParams are the mutable fields accepted by charge update.
type UpdateParams struct {
	Description *string        `json:"description,omitempty"`
	Metadata    types.Metadata `json:"metadata,omitempty"`
}

// ListParams narrow and paginate charge list calls.
type ListParams struct {
	types.ListParams
	Customer string `json:"customer,omitempty"`
}
