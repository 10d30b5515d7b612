package paymock

import (
	"github.com/samber/lo"

	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/types"
)

// ──────────────────────────────────────────────────
// Dispute Management
// ──────────────────────────────────────────────────

// CreateDispute opens a dispute against an existing charge. The charge
// records the dispute id, and the dispute starts in needs_response.
func (b *Backend) CreateDispute(account string, params *dispute.Params) (*dispute.Dispute, error) {
	if params == nil {
		params = &dispute.Params{}
	}

	ch, err := b.GetCharge(account, params.Charge, "charge")
	if err != nil {
		return nil, err
	}

	disputeID := params.ID
	if disputeID != "" && b.disputes.Contains(account, disputeID) {
		return nil, NewAlreadyExistsError("dispute", disputeID)
	}
	if disputeID == "" {
		disputeID = b.newID(id.PrefixDispute)
	}

	amount := ch.Amount
	if params.Amount != nil {
		amount = *params.Amount
	}
	reason := params.Reason
	if reason == "" {
		reason = dispute.ReasonGeneral
	}

	d := &dispute.Dispute{
		ID:       disputeID,
		Object:   dispute.ObjectName,
		Amount:   amount,
		Charge:   ch.ID,
		Created:  b.now(),
		Currency: ch.Currency,
		Evidence: map[string]string{},
		Metadata: params.Metadata.Clone(),
		Reason:   reason,
		Status:   dispute.StatusNeedsResponse,
	}
	b.disputes.Put(account, d)
	ch.Dispute = d.ID

	b.recordEvent(account, "charge.dispute.created", d)
	b.hooks.EmitDisputeCreated(d)

	return d, nil
}

// GetDispute retrieves a dispute by id, failing with a 404 resource_missing
// error naming param if absent.
func (b *Backend) GetDispute(account, disputeID, param string) (*dispute.Dispute, error) {
	d, ok := b.disputes.Get(account, disputeID)
	if !ok {
		return nil, NewNotFoundError("dispute", param, disputeID)
	}

	return d, nil
}

// UpdateDispute merges submitted evidence and metadata in place. Submitting
// evidence moves a needs_response dispute to under_review.
func (b *Backend) UpdateDispute(account, disputeID string, params *dispute.UpdateParams) (*dispute.Dispute, error) {
	d, err := b.GetDispute(account, disputeID, "id")
	if err != nil {
		return nil, err
	}
	if params == nil {
		return d, nil
	}

	if len(params.Evidence) > 0 {
		for k, v := range params.Evidence {
			d.Evidence[k] = v
		}
		if d.Status == dispute.StatusNeedsResponse {
			d.Status = dispute.StatusUnderReview
		}
	}
	if params.Metadata != nil {
		d.Metadata = params.Metadata.Clone()
	}

	b.recordEvent(account, "charge.dispute.updated", d)
	return d, nil
}

// CloseDispute closes a dispute as lost, the terminal state the real
// service applies when the merchant concedes.
func (b *Backend) CloseDispute(account, disputeID string) (*dispute.Dispute, error) {
	d, err := b.GetDispute(account, disputeID, "id")
	if err != nil {
		return nil, err
	}

	d.Status = dispute.StatusLost

	b.recordEvent(account, "charge.dispute.closed", d)
	b.hooks.EmitDisputeClosed(d)

	return d, nil
}

// ListDisputes returns the account's disputes in insertion order,
// optionally narrowed to one charge, paginated.
func (b *Backend) ListDisputes(account string, params *dispute.ListParams) (*types.List[*dispute.Dispute], error) {
	if params == nil {
		params = &dispute.ListParams{}
	}

	all := b.disputes.All(account)
	if params.Charge != "" {
		all = lo.Filter(all, func(d *dispute.Dispute, _ int) bool {
			return d.Charge == params.Charge
		})
	}

	return types.ApplyListParams(all, params.ListParams, func(entityID, param string) error {
		_, err := b.GetDispute(account, entityID, param)
		return err
	})
}
