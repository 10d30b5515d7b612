package paymock_test

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/xraph/paymock"
	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/event"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

func testBackend(opts ...paymock.Option) *paymock.Backend {
	base := []paymock.Option{
		paymock.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	return paymock.New(append(base, opts...)...)
}

// seedCustomer creates a customer carrying one Visa card as its default
// source.
func seedCustomer(t *testing.T, b *paymock.Backend, account string) *customer.Customer {
	t.Helper()
	cust, err := b.CreateCustomer(account, &customer.Params{
		Email: "jenny@example.com",
		Source: card.SpecCard(&card.Params{
			Number:   "4242424242424242",
			ExpMonth: 12,
			ExpYear:  2030,
		}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return cust
}

func seedCharge(t *testing.T, b *paymock.Backend, account, customerID string) *charge.Charge {
	t.Helper()
	ch, err := b.CreateCharge(account, &charge.Params{
		Amount:   2000,
		Currency: "usd",
		Customer: customerID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ch
}

func TestNewAccountID(t *testing.T) {
	a := paymock.NewAccountID()
	if !strings.HasPrefix(a, "acct_") {
		t.Fatalf("expected acct_ prefix, got %q", a)
	}
	if a == paymock.NewAccountID() {
		t.Fatal("account ids must not collide")
	}
}

func TestAccountIsolation(t *testing.T) {
	b := testBackend()
	acctA := paymock.NewAccountID()
	acctB := paymock.NewAccountID()

	cust := seedCustomer(t, b, acctA)
	ch := seedCharge(t, b, acctA, cust.ID)

	t.Run("objects are invisible to other accounts", func(t *testing.T) {
		if _, err := b.GetCustomer(acctB, cust.ID, "id"); !types.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}
		if _, err := b.GetCharge(acctB, ch.ID, "id"); !types.IsNotFound(err) {
			t.Fatalf("expected not found, got %v", err)
		}

		page, err := b.ListCustomers(acctB, nil)
		if err != nil {
			t.Fatal(err)
		}
		if page.TotalCount != 0 || len(page.Data) != 0 {
			t.Fatalf("account B must be empty: %+v", page)
		}
	})

	t.Run("id uniqueness is per account", func(t *testing.T) {
		for _, acct := range []string{acctA, acctB} {
			if _, err := b.CreateCustomer(acct, &customer.Params{ID: "cus_pinned"}); err != nil {
				t.Fatalf("account %s: %v", acct, err)
			}
		}
	})
}

func TestPinnedIDCollisions(t *testing.T) {
	b := testBackend()
	acct := paymock.NewAccountID()
	cust := seedCustomer(t, b, acct)
	ch := seedCharge(t, b, acct, cust.ID)

	creators := []struct {
		name   string
		create func() error
	}{
		{"customer", func() error {
			_, err := b.CreateCustomer(acct, &customer.Params{ID: "cus_fixed1"})
			return err
		}},
		{"card", func() error {
			_, err := b.CreateCard(acct, cust.ID, &card.Params{ID: "card_fixed1", Number: "4000000000000077"})
			return err
		}},
		{"subscription", func() error {
			_, err := b.CreateSubscription(acct, &subscription.Params{
				ID: "sub_fixed1", Customer: cust.ID, Plan: "plan_a",
			})
			return err
		}},
		{"charge", func() error {
			_, err := b.CreateCharge(acct, &charge.Params{
				ID: "ch_fixed1", Amount: 100, Currency: "usd", Customer: cust.ID,
			})
			return err
		}},
		{"refund", func() error {
			_, err := b.CreateRefund(acct, &refund.Params{ID: "re_fixed1", Charge: ch.ID})
			return err
		}},
		{"dispute", func() error {
			_, err := b.CreateDispute(acct, &dispute.Params{ID: "dp_fixed1", Charge: ch.ID})
			return err
		}},
	}

	for _, tc := range creators {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.create(); err != nil {
				t.Fatalf("first create: %v", err)
			}
			err := tc.create()
			if !types.IsAlreadyExists(err) {
				t.Fatalf("expected resource_already_exists, got %v", err)
			}
			e := err.(*types.Error)
			if e.StatusCode != 400 || e.Param != "id" {
				t.Fatalf("unexpected collision error: %+v", e)
			}
		})
	}
}

func TestNotFoundParamAttribution(t *testing.T) {
	b := testBackend()
	acct := paymock.NewAccountID()
	cust := seedCustomer(t, b, acct)

	// each operation names the parameter it was resolving when the lookup
	// failed, so client-side error handling stays field-attributable
	tests := []struct {
		name  string
		op    func() error
		param string
	}{
		{"direct retrieval", func() error {
			_, err := b.GetCustomer(acct, "cus_gone", "id")
			return err
		}, "id"},
		{"subscription create customer ref", func() error {
			_, err := b.CreateSubscription(acct, &subscription.Params{Customer: "cus_gone", Plan: "plan_a"})
			return err
		}, "customer"},
		{"charge create customer ref", func() error {
			_, err := b.CreateCharge(acct, &charge.Params{Amount: 100, Currency: "usd", Customer: "cus_gone"})
			return err
		}, "customer"},
		{"refund create charge ref", func() error {
			_, err := b.CreateRefund(acct, &refund.Params{Charge: "ch_gone"})
			return err
		}, "charge"},
		{"dispute create charge ref", func() error {
			_, err := b.CreateDispute(acct, &dispute.Params{Charge: "ch_gone"})
			return err
		}, "charge"},
		{"forward cursor", func() error {
			_, err := b.ListCustomers(acct, &customer.ListParams{
				ListParams: types.ListParams{StartingAfter: "cus_gone"},
			})
			return err
		}, "starting_after"},
		{"backward cursor", func() error {
			_, err := b.ListCustomers(acct, &customer.ListParams{
				ListParams: types.ListParams{EndingBefore: "cus_gone"},
			})
			return err
		}, "ending_before"},
		{"charge source ref", func() error {
			_, err := b.CreateCharge(acct, &charge.Params{
				Amount: 100, Currency: "usd", Customer: cust.ID,
				Source: card.SpecID("card_gone"),
			})
			return err
		}, "source"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			if !types.IsNotFound(err) {
				t.Fatalf("expected not found, got %v", err)
			}
			if e := err.(*types.Error); e.Param != tc.param {
				t.Fatalf("expected param %q, got %q", tc.param, e.Param)
			}
		})
	}
}

func TestEventsFeed(t *testing.T) {
	b := testBackend()
	acct := paymock.NewAccountID()

	cust := seedCustomer(t, b, acct)
	seedCharge(t, b, acct, cust.ID)

	t.Run("records lifecycle events in order", func(t *testing.T) {
		page, err := b.ListEvents(acct, nil)
		if err != nil {
			t.Fatal(err)
		}
		var kinds []string
		for _, e := range page.Data {
			kinds = append(kinds, e.Type)
		}
		want := []string{"customer.created", "customer.source.created", "charge.succeeded"}
		if len(kinds) != len(want) {
			t.Fatalf("got %v, want %v", kinds, want)
		}
		for i := range want {
			if kinds[i] != want[i] {
				t.Fatalf("position %d: got %s, want %s", i, kinds[i], want[i])
			}
		}
	})

	t.Run("type filter narrows the feed", func(t *testing.T) {
		page, err := b.ListEvents(acct, &event.ListParams{Type: "charge.succeeded"})
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Data) != 1 || page.Data[0].Type != "charge.succeeded" {
			t.Fatalf("unexpected filtered feed: %+v", page.Data)
		}
	})

	t.Run("feed is account-scoped", func(t *testing.T) {
		page, err := b.ListEvents(paymock.NewAccountID(), nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Data) != 0 {
			t.Fatalf("fresh account must have an empty feed: %+v", page.Data)
		}
	})
}

type countingHook struct {
	customers int
	charges   int
	canceled  int
}

func (h *countingHook) Name() string { return "counting" }

func (h *countingHook) OnCustomerCreated(*customer.Customer) error {
	h.customers++
	return nil
}

func (h *countingHook) OnChargeCreated(*charge.Charge) error {
	h.charges++
	return nil
}

func (h *countingHook) OnSubscriptionCanceled(*subscription.Subscription) error {
	h.canceled++
	return nil
}

func TestBackendHookWiring(t *testing.T) {
	h := &countingHook{}
	b := testBackend(paymock.WithHook(h))
	acct := paymock.NewAccountID()

	cust := seedCustomer(t, b, acct)
	seedCharge(t, b, acct, cust.ID)
	sub, err := b.CreateSubscription(acct, &subscription.Params{Customer: cust.ID, Plan: "plan_a"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.CancelSubscription(acct, sub.ID); err != nil {
		t.Fatal(err)
	}

	if h.customers != 1 || h.charges != 1 || h.canceled != 1 {
		t.Fatalf("unexpected hook counts: %+v", h)
	}
}

func TestWithClockPinsTimestamps(t *testing.T) {
	at := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	b := testBackend(paymock.WithClock(func() time.Time { return at }))
	acct := paymock.NewAccountID()

	cust := seedCustomer(t, b, acct)
	if cust.Created != at.Unix() {
		t.Fatalf("created %d, want %d", cust.Created, at.Unix())
	}
}
