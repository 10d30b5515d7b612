// Package compare performs field-by-field structural comparison between a
// mocked response and a real response, encoding what "equivalent enough"
// means per object kind. Only the declared field set of each kind must
// match: live responses may carry fields the mock does not reproduce, and
// those are ignored.
//
// Comparison failures indicate a fidelity bug in the emulator or the test,
// not a transient condition. Every
// failure names the field, the nesting path, and the caller-supplied
// context string so multi-field mismatches are diagnosable in one run.
package compare

import (
	"errors"
	"fmt"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/types"
)

// ErrUnsupportedKind reports an object kind outside the comparable set.
// This is a programming-contract violation inside the test or the emulator,
// not a simulated API error: treat it as fatal.
var ErrUnsupportedKind = errors.New("compare: unsupported object kind")

// Equivalent dispatches on the object kind of actual and asserts structural
// equivalence with expected. Both arguments must be non-nil values of the
// same kind; anything else fails loudly.
func Equivalent(actual, expected any, context string) error {
	switch a := actual.(type) {
	case *types.Error:
		b, err := sameKind[*types.Error](expected, context)
		if err != nil {
			return err
		}
		return Errors(a, b, context)
	case *card.Card:
		b, err := sameKind[*card.Card](expected, context)
		if err != nil {
			return err
		}
		return Cards(a, b, context)
	case *charge.Charge:
		b, err := sameKind[*charge.Charge](expected, context)
		if err != nil {
			return err
		}
		return Charges(a, b, context)
	case *customer.Customer:
		b, err := sameKind[*customer.Customer](expected, context)
		if err != nil {
			return err
		}
		return Customers(a, b, context)
	case *dispute.Dispute:
		b, err := sameKind[*dispute.Dispute](expected, context)
		if err != nil {
			return err
		}
		return Disputes(a, b, context)
	case *refund.Refund:
		b, err := sameKind[*refund.Refund](expected, context)
		if err != nil {
			return err
		}
		return Refunds(a, b, context)
	default:
		return fmt.Errorf("%w: %T (context: %s)", ErrUnsupportedKind, actual, context)
	}
}

func sameKind[T any](expected any, context string) (T, error) {
	b, ok := expected.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("compare: %s: kind mismatch: expected %T, got %T", context, zero, expected)
	}
	return b, nil
}

// Errors asserts that two domain errors carry the same public error
// contract, including the nested raw payload.
func Errors(actual, expected *types.Error, context string) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: nil error (actual=%v expected=%v)", context, actual, expected)
	}

	checks := []fieldCheck{
		{"statusCode", actual.StatusCode, expected.StatusCode},
		{"code", actual.Code, expected.Code},
		{"rawType", actual.RawType, expected.RawType},
		{"type", actual.Type, expected.Type},
	}
	if err := checkFields(context, "", checks); err != nil {
		return err
	}

	if actual.Raw == nil || expected.Raw == nil {
		return fmt.Errorf("compare: %s: .raw: missing raw payload (actual=%v expected=%v)",
			context, actual.Raw, expected.Raw)
	}

	return checkFields(context, ".raw", []fieldCheck{
		{"code", actual.Raw.Code, expected.Raw.Code},
		{"decline_code", actual.Raw.DeclineCode, expected.Raw.DeclineCode},
		{"doc_url", actual.Raw.DocURL, expected.Raw.DocURL},
		{"param", actual.Raw.Param, expected.Raw.Param},
		{"type", actual.Raw.Type, expected.Raw.Type},
	})
}

// Cards asserts the card comparable field set. Ids and customer ownership
// are deliberately excluded: they differ between mock and live accounts.
func Cards(actual, expected *card.Card, context string) error {
	return cardsAt(context, "", actual, expected)
}

func cardsAt(context, path string, actual, expected *card.Card) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: %s: nil card (actual=%v expected=%v)", context, orRoot(path), actual, expected)
	}

	return checkFields(context, path, []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"brand", actual.Brand, expected.Brand},
		{"country", actual.Country, expected.Country},
		{"cvc_check", actual.CVCCheck, expected.CVCCheck},
		{"exp_month", actual.ExpMonth, expected.ExpMonth},
		{"exp_year", actual.ExpYear, expected.ExpYear},
		{"funding", actual.Funding, expected.Funding},
		{"last4", actual.Last4, expected.Last4},
	})
}

// Charges asserts the charge comparable field set, requires both ids to
// carry the charge prefix, and recurses into the outcome sub-object and the
// refunds list. On each side the refunds list must be complete: the mock
// never paginates refunds, so total_count must equal the page length.
func Charges(actual, expected *charge.Charge, context string) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: nil charge (actual=%v expected=%v)", context, actual, expected)
	}

	for side, ch := range map[string]*charge.Charge{"actual": actual, "expected": expected} {
		if !id.Is(ch.ID, id.PrefixCharge) {
			return fmt.Errorf("compare: %s: .id: %s id %q does not match charge prefix", context, side, ch.ID)
		}
	}

	checks := []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"amount", actual.Amount, expected.Amount},
		{"amount_refunded", actual.AmountRefunded, expected.AmountRefunded},
		{"captured", actual.Captured, expected.Captured},
		{"currency", actual.Currency, expected.Currency},
		{"paid", actual.Paid, expected.Paid},
		{"refunded", actual.Refunded, expected.Refunded},
		{"status", actual.Status, expected.Status},
	}
	if err := checkFields(context, "", checks); err != nil {
		return err
	}

	if actual.Outcome == nil || expected.Outcome == nil {
		return fmt.Errorf("compare: %s: .outcome: missing outcome (actual=%v expected=%v)",
			context, actual.Outcome, expected.Outcome)
	}
	if err := checkFields(context, ".outcome", []fieldCheck{
		{"network_status", actual.Outcome.NetworkStatus, expected.Outcome.NetworkStatus},
		{"reason", actual.Outcome.Reason, expected.Outcome.Reason},
		{"risk_level", actual.Outcome.RiskLevel, expected.Outcome.RiskLevel},
		{"seller_message", actual.Outcome.SellerMessage, expected.Outcome.SellerMessage},
		{"type", actual.Outcome.Type, expected.Outcome.Type},
	}); err != nil {
		return err
	}

	for side, ch := range map[string]*charge.Charge{"actual": actual, "expected": expected} {
		if ch.Refunds == nil {
			return fmt.Errorf("compare: %s: .refunds: %s refunds list is nil", context, side)
		}
		if ch.Refunds.TotalCount != len(ch.Refunds.Data) {
			return fmt.Errorf("compare: %s: .refunds.total_count: %s list is truncated (total_count=%d, page=%d)",
				context, side, ch.Refunds.TotalCount, len(ch.Refunds.Data))
		}
	}

	return lists(context, ".refunds", actual.Refunds, expected.Refunds, refundsAt)
}

// Customers asserts the customer comparable field set. The default source
// must be present or absent on both sides (value equality is meaningless
// across accounts), every compared source must be a card, and each source's
// customer back-reference must equal its own side's customer id.
func Customers(actual, expected *customer.Customer, context string) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: nil customer (actual=%v expected=%v)", context, actual, expected)
	}

	checks := []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"description", actual.Description, expected.Description},
		{"email", actual.Email, expected.Email},
		{"livemode", actual.Livemode, expected.Livemode},
	}
	if err := checkFields(context, "", checks); err != nil {
		return err
	}

	if (actual.DefaultSource == "") != (expected.DefaultSource == "") {
		return fmt.Errorf("compare: %s: .default_source: presence mismatch (actual=%q expected=%q)",
			context, actual.DefaultSource, expected.DefaultSource)
	}

	for side, cust := range map[string]*customer.Customer{"actual": actual, "expected": expected} {
		if cust.Sources == nil {
			return fmt.Errorf("compare: %s: .sources: %s sources list is nil", context, side)
		}
		for i, src := range cust.Sources.Data {
			if src.Object != card.ObjectName {
				return fmt.Errorf("compare: %s: .sources.data[%d].object: %s source kind %q is not supported (only cards are)",
					context, i, side, src.Object)
			}
			if src.Customer != cust.ID {
				return fmt.Errorf("compare: %s: .sources.data[%d].customer: %s back-reference %q does not equal owning customer %q",
					context, i, side, src.Customer, cust.ID)
			}
		}
	}

	return lists(context, ".sources", actual.Sources, expected.Sources, cardsAt)
}

// Disputes asserts the dispute comparable field set.
func Disputes(actual, expected *dispute.Dispute, context string) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: nil dispute (actual=%v expected=%v)", context, actual, expected)
	}

	return checkFields(context, "", []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"amount", actual.Amount, expected.Amount},
		{"currency", actual.Currency, expected.Currency},
		{"reason", actual.Reason, expected.Reason},
		{"status", actual.Status, expected.Status},
	})
}

// Refunds asserts the refund comparable field set.
func Refunds(actual, expected *refund.Refund, context string) error {
	return refundsAt(context, "", actual, expected)
}

func refundsAt(context, path string, actual, expected *refund.Refund) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: %s: nil refund (actual=%v expected=%v)", context, orRoot(path), actual, expected)
	}

	return checkFields(context, path, []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"amount", actual.Amount, expected.Amount},
		{"currency", actual.Currency, expected.Currency},
		{"reason", actual.Reason, expected.Reason},
		{"status", actual.Status, expected.Status},
	})
}

// Lists asserts two list envelopes agree on envelope metadata and length,
// then recurses element-wise in order using the Equivalent dispatch.
func Lists[T types.Object](actual, expected *types.List[T], context string) error {
	return lists(context, "", actual, expected, func(ctx, path string, a, b T) error {
		if err := Equivalent(a, b, ctx); err != nil {
			return fmt.Errorf("%s: %w", orRoot(path), err)
		}
		return nil
	})
}

// lists checks the envelope fields shared by every list comparison, then
// hands each element pair to elem.
func lists[T types.Object](context, path string, actual, expected *types.List[T], elem func(ctx, path string, a, b T) error) error {
	if actual == nil || expected == nil {
		return fmt.Errorf("compare: %s: %s: nil list (actual=%v expected=%v)", context, orRoot(path), actual, expected)
	}

	checks := []fieldCheck{
		{"object", actual.Object, expected.Object},
		{"has_more", actual.HasMore, expected.HasMore},
		{"total_count", actual.TotalCount, expected.TotalCount},
		{"data.length", len(actual.Data), len(expected.Data)},
	}
	if err := checkFields(context, path, checks); err != nil {
		return err
	}

	for i := range actual.Data {
		elemPath := fmt.Sprintf("%s.data[%d]", path, i)
		if err := elem(context, elemPath, actual.Data[i], expected.Data[i]); err != nil {
			return err
		}
	}

	return nil
}

// ──────────────────────────────────────────────────
// Failure reporting
// ──────────────────────────────────────────────────

type fieldCheck struct {
	field string
	a, b  any
}

func checkFields(context, path string, checks []fieldCheck) error {
	for _, c := range checks {
		if c.a != c.b {
			return fmt.Errorf("compare: %s: %s.%s: got %v, want %v", context, orRoot(path), c.field, c.a, c.b)
		}
	}

	return nil
}

func orRoot(path string) string {
	if path == "" {
		return "$"
	}

	return "$" + path
}
