package paymock

import (
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

// ──────────────────────────────────────────────────
// Customer Management
// ──────────────────────────────────────────────────

// CreateCustomer creates a new customer under the account. A caller-pinned
// id that collides with an existing customer fails with
// resource_already_exists. An inline source is materialized as a card owned
// by the new customer and becomes its default source.
func (b *Backend) CreateCustomer(account string, params *customer.Params) (*customer.Customer, error) {
	if params == nil {
		params = &customer.Params{}
	}

	custID := params.ID
	if custID != "" && b.customers.Contains(account, custID) {
		return nil, NewAlreadyExistsError("customer", custID)
	}
	if custID == "" {
		custID = b.newID(id.PrefixCustomer)
	}
	if err := b.validateSourceSpec(account, params.Source); err != nil {
		return nil, err
	}

	cust := &customer.Customer{
		ID:            custID,
		Object:        customer.ObjectName,
		Created:       b.now(),
		Description:   params.Description,
		Email:         params.Email,
		Metadata:      params.Metadata.Clone(),
		Sources:       types.NewList[*card.Card]("/v1/customers/"+custID+"/sources", nil),
		Subscriptions: types.NewList[*subscription.Subscription]("/v1/customers/"+custID+"/subscriptions", nil),
	}
	b.customers.Put(account, cust)

	b.recordEvent(account, "customer.created", cust)
	b.hooks.EmitCustomerCreated(cust)

	if params.Source != nil {
		if _, err := b.resolveSource(account, custID, params.Source, "source"); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("created customer", "account", account, "customer", custID)
	return cust, nil
}

// GetCustomer retrieves a customer by id, failing with a 404
// resource_missing error naming param if absent.
func (b *Backend) GetCustomer(account, custID, param string) (*customer.Customer, error) {
	cust, ok := b.customers.Get(account, custID)
	if !ok {
		return nil, NewNotFoundError("customer", param, custID)
	}

	return cust, nil
}

// UpdateCustomer applies the recognized mutable fields in place. Retrieval
// after update observes the change without a second store write.
func (b *Backend) UpdateCustomer(account, custID string, params *customer.UpdateParams) (*customer.Customer, error) {
	cust, err := b.GetCustomer(account, custID, "id")
	if err != nil {
		return nil, err
	}
	if params == nil {
		return cust, nil
	}

	if params.Description != nil {
		cust.Description = *params.Description
	}
	if params.Email != nil {
		cust.Email = *params.Email
	}
	if params.DefaultSource != "" {
		cd, ok := b.cards.Get(account, params.DefaultSource)
		if !ok {
			return nil, NewNotFoundError("card", "default_source", params.DefaultSource)
		}
		if cd.Customer != cust.ID {
			return nil, NewInvalidRequestError(
				"The source '"+cd.ID+"' does not belong to customer '"+cust.ID+"'.",
				"default_source",
			)
		}
		cust.DefaultSource = cd.ID
	}
	if params.Metadata != nil {
		cust.Metadata = params.Metadata.Clone()
	}

	b.recordEvent(account, "customer.updated", cust)
	return cust, nil
}

// ListCustomers returns the account's customers in insertion order,
// paginated.
func (b *Backend) ListCustomers(account string, params *customer.ListParams) (*types.List[*customer.Customer], error) {
	if params == nil {
		params = &customer.ListParams{}
	}

	return types.ApplyListParams(b.customers.All(account), params.ListParams, func(entityID, param string) error {
		_, err := b.GetCustomer(account, entityID, param)
		return err
	})
}

// ──────────────────────────────────────────────────
// Card Sources
// ──────────────────────────────────────────────────

// CreateCard materializes a card under the given customer. The card's
// Customer back-reference always equals the owning customer's id, the card
// joins the customer's sources list, and it becomes the default source if
// the customer has none.
func (b *Backend) CreateCard(account, custID string, params *card.Params) (*card.Card, error) {
	cust, err := b.GetCustomer(account, custID, "customer")
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = &card.Params{}
	}

	cardID := params.ID
	if cardID != "" && b.cards.Contains(account, cardID) {
		return nil, NewAlreadyExistsError("card", cardID)
	}
	if cardID == "" {
		cardID = b.newID(id.PrefixCard)
	}

	cd := &card.Card{
		ID:          cardID,
		Object:      card.ObjectName,
		Brand:       card.BrandOf(params.Number),
		Country:     "US",
		Customer:    cust.ID,
		CVCCheck:    "pass",
		ExpMonth:    params.ExpMonth,
		ExpYear:     params.ExpYear,
		Fingerprint: id.Random(16),
		Funding:     "credit",
		Last4:       card.Last4(params.Number),
		Metadata:    params.Metadata.Clone(),
	}
	b.cards.Put(account, cd)
	cust.Sources.Append(cd)
	if cust.DefaultSource == "" {
		cust.DefaultSource = cd.ID
	}

	b.recordEvent(account, "customer.source.created", cd)
	b.hooks.EmitCardCreated(cd)

	return cd, nil
}

// GetCard retrieves a card by id, failing with a 404 resource_missing error
// naming param if absent.
func (b *Backend) GetCard(account, cardID, param string) (*card.Card, error) {
	cd, ok := b.cards.Get(account, cardID)
	if !ok {
		return nil, NewNotFoundError("card", param, cardID)
	}

	return cd, nil
}

// validateSourceSpec rejects a source reference that resolveSource could not
// materialize, before any state is written. Create paths call it ahead of
// their store Put so a bad source never leaves a half-created owner behind.
func (b *Backend) validateSourceSpec(account string, spec *card.Spec) error {
	if spec == nil {
		return nil
	}
	if spec.IsInline() {
		if pinned := spec.Card.ID; pinned != "" && b.cards.Contains(account, pinned) {
			return NewAlreadyExistsError("card", pinned)
		}
		return nil
	}

	_, err := b.GetCard(account, spec.ID, "source")
	return err
}

// resolveSource normalizes a source spec into a card id: inline card
// details are materialized under the customer first, an id is validated
// against the account. The error names param so failures stay
// field-attributable.
func (b *Backend) resolveSource(account, custID string, spec *card.Spec, param string) (string, error) {
	if spec == nil {
		return "", nil
	}

	if spec.IsInline() {
		cd, err := b.CreateCard(account, custID, spec.Card)
		if err != nil {
			return "", err
		}
		return cd.ID, nil
	}

	cd, err := b.GetCard(account, spec.ID, param)
	if err != nil {
		return "", err
	}

	return cd.ID, nil
}
