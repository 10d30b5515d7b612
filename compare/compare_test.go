package compare

import (
	"errors"
	"strings"
	"testing"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/types"
)

func testCharge(chargeID string) *charge.Charge {
	return &charge.Charge{
		ID:       chargeID,
		Object:   charge.ObjectName,
		Amount:   2000,
		Captured: true,
		Created:  1700000000,
		Currency: "usd",
		Customer: types.Ref[customer.Customer]("cus_aaa"),
		Metadata: types.Metadata{},
		Outcome:  charge.ApprovedOutcome(),
		Paid:     true,
		Refunds:  types.NewList[*refund.Refund]("/v1/charges/"+chargeID+"/refunds", nil),
		Status:   charge.StatusSucceeded,
	}
}

func testCard(cardID, customerID string) *card.Card {
	return &card.Card{
		ID:          cardID,
		Object:      card.ObjectName,
		Brand:       "Visa",
		Country:     "US",
		Customer:    customerID,
		CVCCheck:    "pass",
		ExpMonth:    12,
		ExpYear:     2030,
		Fingerprint: "fp" + cardID,
		Funding:     "credit",
		Last4:       "4242",
	}
}

func testCustomer(customerID string) *customer.Customer {
	c := &customer.Customer{
		ID:       customerID,
		Object:   customer.ObjectName,
		Created:  1700000000,
		Email:    "jenny@example.com",
		Metadata: types.Metadata{},
		Sources:  types.NewList[*card.Card]("/v1/customers/"+customerID+"/sources", nil),
	}
	src := testCard("card_"+customerID, customerID)
	c.Sources.Append(src)
	c.DefaultSource = src.ID
	return c
}

func testRefund(refundID string) *refund.Refund {
	return &refund.Refund{
		ID:       refundID,
		Object:   refund.ObjectName,
		Amount:   500,
		Currency: "usd",
		Status:   refund.StatusSucceeded,
	}
}

// wantFailure asserts err is non-nil and mentions every fragment.
func wantFailure(t *testing.T, err error, fragments ...string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a comparison failure, got nil")
	}
	for _, frag := range fragments {
		if !strings.Contains(err.Error(), frag) {
			t.Fatalf("failure %q does not mention %q", err.Error(), frag)
		}
	}
}

func TestEquivalentDispatch(t *testing.T) {
	t.Run("unsupported kind is fatal", func(t *testing.T) {
		err := Equivalent("not an object", "not an object", "dispatch")
		if !errors.Is(err, ErrUnsupportedKind) {
			t.Fatalf("expected ErrUnsupportedKind, got %v", err)
		}
	})

	t.Run("kind mismatch fails loudly", func(t *testing.T) {
		err := Equivalent(testCharge("ch_a"), testCustomer("cus_a"), "dispatch")
		wantFailure(t, err, "kind mismatch")
	})

	t.Run("dispatches per kind", func(t *testing.T) {
		if err := Equivalent(testRefund("re_a"), testRefund("re_b"), "dispatch"); err != nil {
			t.Fatalf("refund dispatch: %v", err)
		}
		if err := Equivalent(testCustomer("cus_a"), testCustomer("cus_b"), "dispatch"); err != nil {
			t.Fatalf("customer dispatch: %v", err)
		}
	})
}

func TestCharges(t *testing.T) {
	t.Run("ignores untracked fields", func(t *testing.T) {
		a := testCharge("ch_mock111")
		b := testCharge("ch_live222")
		b.Created = 1800000000
		b.Description = "only on the live side"
		b.Metadata = types.Metadata{"order": "6735"}
		b.Customer = types.Ref[customer.Customer]("cus_other")

		if err := Charges(a, b, "untracked"); err != nil {
			t.Fatalf("untracked differences must pass: %v", err)
		}
	})

	tracked := []struct {
		name   string
		mutate func(*charge.Charge)
	}{
		{"amount", func(c *charge.Charge) { c.Amount = 50 }},
		{"amount_refunded", func(c *charge.Charge) { c.AmountRefunded = 100 }},
		{"captured", func(c *charge.Charge) { c.Captured = false }},
		{"currency", func(c *charge.Charge) { c.Currency = "eur" }},
		{"paid", func(c *charge.Charge) { c.Paid = false }},
		{"refunded", func(c *charge.Charge) { c.Refunded = true }},
		{"status", func(c *charge.Charge) { c.Status = charge.StatusFailed }},
	}
	for _, tc := range tracked {
		t.Run("tracked field "+tc.name, func(t *testing.T) {
			a := testCharge("ch_a")
			b := testCharge("ch_b")
			tc.mutate(b)
			wantFailure(t, Charges(a, b, "tracked"), tc.name)
		})
	}

	t.Run("id must carry the charge prefix", func(t *testing.T) {
		a := testCharge("ch_ok")
		b := testCharge("py_nope")
		wantFailure(t, Charges(a, b, "prefix"), "charge prefix", "py_nope")
	})

	t.Run("outcome is recursed", func(t *testing.T) {
		a := testCharge("ch_a")
		b := testCharge("ch_b")
		b.Outcome.SellerMessage = "Payment declined."
		wantFailure(t, Charges(a, b, "outcome"), ".outcome", "seller_message")
	})

	t.Run("truncated refunds list is rejected", func(t *testing.T) {
		a := testCharge("ch_a")
		b := testCharge("ch_b")
		b.Refunds.TotalCount = 3
		wantFailure(t, Charges(a, b, "refunds"), "truncated")
	})

	t.Run("refund elements are recursed", func(t *testing.T) {
		a := testCharge("ch_a")
		b := testCharge("ch_b")
		a.Refunds.Append(testRefund("re_mock"))
		b.Refunds.Append(testRefund("re_live"))
		b.Refunds.Data[0].Amount = 9
		wantFailure(t, Charges(a, b, "refunds"), ".refunds.data[0]", "amount")
	})
}

func TestCustomers(t *testing.T) {
	t.Run("ignores untracked fields", func(t *testing.T) {
		a := testCustomer("cus_mock")
		b := testCustomer("cus_live")
		b.Created = 1800000000
		b.Metadata = types.Metadata{"tier": "gold"}

		if err := Customers(a, b, "untracked"); err != nil {
			t.Fatalf("untracked differences must pass: %v", err)
		}
	})

	t.Run("tracked field email", func(t *testing.T) {
		a := testCustomer("cus_a")
		b := testCustomer("cus_b")
		b.Email = "tommy@example.com"
		wantFailure(t, Customers(a, b, "tracked"), "email")
	})

	t.Run("default source compares presence not value", func(t *testing.T) {
		a := testCustomer("cus_a")
		b := testCustomer("cus_b")
		if a.DefaultSource == b.DefaultSource {
			t.Fatal("fixture should give each side a distinct default source")
		}
		if err := Customers(a, b, "presence"); err != nil {
			t.Fatalf("distinct default source values must pass: %v", err)
		}

		b.DefaultSource = ""
		wantFailure(t, Customers(a, b, "presence"), "default_source", "presence")
	})

	t.Run("source back-reference must equal owning customer", func(t *testing.T) {
		a := testCustomer("cus_a")
		b := testCustomer("cus_b")
		b.Sources.Data[0].Customer = "cus_somebody_else"
		wantFailure(t, Customers(a, b, "backref"), ".sources.data[0].customer", "cus_somebody_else")
	})

	t.Run("non-card sources are rejected", func(t *testing.T) {
		a := testCustomer("cus_a")
		b := testCustomer("cus_b")
		b.Sources.Data[0].Object = "bank_account"
		wantFailure(t, Customers(a, b, "kinds"), "not supported")
	})

	t.Run("source elements are recursed", func(t *testing.T) {
		a := testCustomer("cus_a")
		b := testCustomer("cus_b")
		b.Sources.Data[0].Last4 = "1881"
		wantFailure(t, Customers(a, b, "sources"), ".sources.data[0]", "last4")
	})
}

func TestErrors(t *testing.T) {
	missing := func() *types.Error { return types.NewNotFoundError("customer", "id", "cus_gone") }

	t.Run("equal contracts pass", func(t *testing.T) {
		if err := Errors(missing(), missing(), "equal"); err != nil {
			t.Fatalf("identical errors must pass: %v", err)
		}
	})

	t.Run("message differences are ignored", func(t *testing.T) {
		a := missing()
		b := missing()
		b.Message = "No such customer: 'cus_other'"
		if err := Errors(a, b, "message"); err != nil {
			t.Fatalf("message wording must not be compared: %v", err)
		}
	})

	t.Run("code difference fails", func(t *testing.T) {
		a := missing()
		b := types.NewAlreadyExistsError("customer", "cus_gone")
		wantFailure(t, Errors(a, b, "code"), "code")
	})

	t.Run("raw param difference fails", func(t *testing.T) {
		a := types.NewNotFoundError("customer", "id", "cus_gone")
		b := types.NewNotFoundError("customer", "customer", "cus_gone")
		wantFailure(t, Errors(a, b, "param"), ".raw", "param")
	})

	t.Run("missing raw payload is fatal", func(t *testing.T) {
		a := missing()
		b := missing()
		b.Raw = nil
		wantFailure(t, Errors(a, b, "raw"), "raw payload")
	})
}

func TestDisputes(t *testing.T) {
	base := func() *dispute.Dispute {
		return &dispute.Dispute{
			ID:       "dp_a",
			Object:   dispute.ObjectName,
			Amount:   2000,
			Currency: "usd",
			Reason:   dispute.ReasonGeneral,
			Status:   dispute.StatusNeedsResponse,
		}
	}

	t.Run("equal disputes pass", func(t *testing.T) {
		a, b := base(), base()
		b.ID = "dp_other"
		b.Charge = "ch_other"
		if err := Disputes(a, b, "equal"); err != nil {
			t.Fatalf("untracked differences must pass: %v", err)
		}
	})

	t.Run("status difference fails", func(t *testing.T) {
		a, b := base(), base()
		b.Status = dispute.StatusLost
		wantFailure(t, Disputes(a, b, "status"), "status")
	})
}

func TestLists(t *testing.T) {
	page := func(refundIDs ...string) *types.List[*refund.Refund] {
		l := types.NewList[*refund.Refund]("/v1/refunds", nil)
		for _, rid := range refundIDs {
			l.Append(testRefund(rid))
		}
		return l
	}

	t.Run("equal pages pass", func(t *testing.T) {
		if err := Lists(page("re_1", "re_2"), page("re_x", "re_y"), "pages"); err != nil {
			t.Fatalf("equivalent pages must pass: %v", err)
		}
	})

	t.Run("envelope mismatch fails", func(t *testing.T) {
		a := page("re_1")
		b := page("re_1")
		b.HasMore = true
		wantFailure(t, Lists(a, b, "envelope"), "has_more")
	})

	t.Run("length mismatch fails before elements", func(t *testing.T) {
		a := page("re_1", "re_2")
		b := page("re_1")
		b.TotalCount = 2
		wantFailure(t, Lists(a, b, "length"), "data.length")
	})

	t.Run("element mismatch names the position", func(t *testing.T) {
		a := page("re_1", "re_2")
		b := page("re_1", "re_2")
		b.Data[1].Currency = "eur"
		wantFailure(t, Lists(a, b, "elements"), ".data[1]", "currency")
	})
}
