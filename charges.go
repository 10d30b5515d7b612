package paymock

import (
	"github.com/samber/lo"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/types"
)

// ──────────────────────────────────────────────────
// Charge Management
// ──────────────────────────────────────────────────

// CreateCharge creates a charge. No real payment runs: every mocked charge
// settles immediately as paid and captured with an approved outcome. The
// source resolves from the explicit source spec or, when a customer is
// named, that customer's default source.
func (b *Backend) CreateCharge(account string, params *charge.Params) (*charge.Charge, error) {
	if params == nil {
		params = &charge.Params{}
	}

	chargeID := params.ID
	if chargeID != "" && b.charges.Contains(account, chargeID) {
		return nil, NewAlreadyExistsError("charge", chargeID)
	}
	if params.Amount <= 0 {
		return nil, NewInvalidIntegerError("amount", params.Amount)
	}
	if params.Currency == "" {
		return nil, NewInvalidRequestError("Missing required param: currency.", "currency")
	}

	var custRef types.Expandable[customer.Customer]
	var src *card.Card
	if params.Customer != "" {
		cust, err := b.GetCustomer(account, params.Customer, "customer")
		if err != nil {
			return nil, err
		}
		custRef = types.Ref[customer.Customer](cust.ID)

		sourceID := cust.DefaultSource
		if params.Source != nil {
			sourceID, err = b.resolveSource(account, cust.ID, params.Source, "source")
			if err != nil {
				return nil, err
			}
		}
		if sourceID != "" {
			src, _ = b.cards.Get(account, sourceID)
		}
	} else if params.Source != nil && !params.Source.IsInline() {
		cd, err := b.GetCard(account, params.Source.ID, "source")
		if err != nil {
			return nil, err
		}
		src = cd
		custRef = types.Ref[customer.Customer](cd.Customer)
	}

	if chargeID == "" {
		chargeID = b.newID(id.PrefixCharge)
	}

	ch := &charge.Charge{
		ID:          chargeID,
		Object:      charge.ObjectName,
		Amount:      params.Amount,
		Captured:    true,
		Created:     b.now(),
		Currency:    params.Currency,
		Customer:    custRef,
		Description: params.Description,
		Metadata:    params.Metadata.Clone(),
		Outcome:     charge.ApprovedOutcome(),
		Paid:        true,
		Refunds:     types.NewList[*refund.Refund]("/v1/charges/"+chargeID+"/refunds", nil),
		Source:      src,
		Status:      charge.StatusSucceeded,
	}
	b.charges.Put(account, ch)

	b.recordEvent(account, "charge.succeeded", ch)
	b.hooks.EmitChargeCreated(ch)

	b.logger.Debug("created charge",
		"account", account,
		"charge", chargeID,
		"amount", params.Amount,
		"currency", params.Currency,
	)
	return ch, nil
}

// GetCharge retrieves a charge by id, failing with a 404 resource_missing
// error naming param if absent.
func (b *Backend) GetCharge(account, chargeID, param string) (*charge.Charge, error) {
	ch, ok := b.charges.Get(account, chargeID)
	if !ok {
		return nil, NewNotFoundError("charge", param, chargeID)
	}

	return ch, nil
}

// UpdateCharge applies the recognized mutable fields in place.
func (b *Backend) UpdateCharge(account, chargeID string, params *charge.UpdateParams) (*charge.Charge, error) {
	ch, err := b.GetCharge(account, chargeID, "id")
	if err != nil {
		return nil, err
	}
	if params == nil {
		return ch, nil
	}

	if params.Description != nil {
		ch.Description = *params.Description
	}
	if params.Metadata != nil {
		ch.Metadata = params.Metadata.Clone()
	}

	b.recordEvent(account, "charge.updated", ch)
	return ch, nil
}

// ListCharges returns the account's charges in insertion order, optionally
// narrowed to one customer, paginated. The customer filter matches whether
// the stored reference is a bare id or an expanded object.
func (b *Backend) ListCharges(account string, params *charge.ListParams) (*types.List[*charge.Charge], error) {
	if params == nil {
		params = &charge.ListParams{}
	}

	all := b.charges.All(account)
	if params.Customer != "" {
		all = lo.Filter(all, func(c *charge.Charge, _ int) bool {
			return c.Customer.ID == params.Customer
		})
	}

	return types.ApplyListParams(all, params.ListParams, func(entityID, param string) error {
		_, err := b.GetCharge(account, entityID, param)
		return err
	})
}
