package paymock

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/types"
)

// ──────────────────────────────────────────────────
// Refund Management
// ──────────────────────────────────────────────────

// CreateRefund refunds part or all of a charge's unrefunded balance. The
// refund joins the owning charge's nested refund list, which always carries
// the complete set (total_count equals the page length, never truncated),
// and the charge's amount_refunded and refunded fields stay consistent.
func (b *Backend) CreateRefund(account string, params *refund.Params) (*refund.Refund, error) {
	if params == nil {
		params = &refund.Params{}
	}

	ch, err := b.GetCharge(account, params.Charge, "charge")
	if err != nil {
		return nil, err
	}

	refundID := params.ID
	if refundID != "" && b.refunds.Contains(account, refundID) {
		return nil, NewAlreadyExistsError("refund", refundID)
	}
	if refundID == "" {
		refundID = b.newID(id.PrefixRefund)
	}

	remaining := ch.Amount - ch.AmountRefunded
	amount := remaining
	if params.Amount != nil {
		amount = *params.Amount
	}
	if amount <= 0 {
		return nil, NewInvalidIntegerError("amount", amount)
	}
	if amount > remaining {
		return nil, NewInvalidRequestError(
			fmt.Sprintf("Refund amount (%d) is greater than unrefunded amount on charge (%d).", amount, remaining),
			"amount",
		)
	}

	rf := &refund.Refund{
		ID:       refundID,
		Object:   refund.ObjectName,
		Amount:   amount,
		Charge:   ch.ID,
		Created:  b.now(),
		Currency: ch.Currency,
		Metadata: params.Metadata.Clone(),
		Reason:   params.Reason,
		Status:   refund.StatusSucceeded,
	}
	b.refunds.Put(account, rf)
	ch.Refunds.Append(rf)
	ch.AmountRefunded += amount
	if ch.AmountRefunded >= ch.Amount {
		ch.Refunded = true
	}

	b.recordEvent(account, "charge.refunded", ch)
	b.hooks.EmitRefundCreated(rf)

	return rf, nil
}

// GetRefund retrieves a refund by id, failing with a 404 resource_missing
// error naming param if absent.
func (b *Backend) GetRefund(account, refundID, param string) (*refund.Refund, error) {
	rf, ok := b.refunds.Get(account, refundID)
	if !ok {
		return nil, NewNotFoundError("refund", param, refundID)
	}

	return rf, nil
}

// UpdateRefund applies the recognized mutable fields in place.
func (b *Backend) UpdateRefund(account, refundID string, params *refund.UpdateParams) (*refund.Refund, error) {
	rf, err := b.GetRefund(account, refundID, "id")
	if err != nil {
		return nil, err
	}
	if params == nil {
		return rf, nil
	}

	if params.Metadata != nil {
		rf.Metadata = params.Metadata.Clone()
	}

	return rf, nil
}

// ListRefunds returns the account's refunds in insertion order, optionally
// narrowed to one charge, paginated.
func (b *Backend) ListRefunds(account string, params *refund.ListParams) (*types.List[*refund.Refund], error) {
	if params == nil {
		params = &refund.ListParams{}
	}

	all := b.refunds.All(account)
	if params.Charge != "" {
		all = lo.Filter(all, func(r *refund.Refund, _ int) bool {
			return r.Charge == params.Charge
		})
	}

	return types.ApplyListParams(all, params.ListParams, func(entityID, param string) error {
		_, err := b.GetRefund(account, entityID, param)
		return err
	})
}
