// Package paymock provides an in-memory, multi-tenant emulator of a
// payments API for Go test suites.
//
// Paymock is designed as a library, not a service. Import it directly into
// your tests, or serve it over HTTP with the httpapi package and point your
// payment client's base URL at it. It provides:
//
//   - Account-scoped object stores for customers, cards, subscriptions,
//     charges, refunds, and disputes
//   - Cursor pagination with Stripe's list envelope and semantics
//   - Referential consistency across the object graph (a customer's cards,
//     a subscription's items, a charge's refunds)
//   - Domain errors carrying the real service's status codes, error codes,
//     and raw payloads
//   - A structural comparator (package compare) for asserting that mocked
//     and live responses are equivalent
//   - A local event feed and lifecycle hooks for test introspection
//
// # Quick Start
//
// Create a backend and drive it directly:
//
//	backend := paymock.New(paymock.WithLogger(slog.Default()))
//	account := paymock.NewAccountID()
//
//	cust, err := backend.CreateCustomer(account, &customer.Params{
//	    Email:  "jenny@example.com",
//	    Source: card.SpecCard(&card.Params{Number: "4242424242424242", ExpMonth: 12, ExpYear: 2030}),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sub, err := backend.CreateSubscription(account, &subscription.Params{
//	    Customer: cust.ID,
//	    Plan:     "plan_gold",
//	})
//
// # Tenancy
//
// Every operation takes an account id as its first argument. Accounts need
// no registration; any opaque string keys an isolated object universe, and
// NewAccountID hands out ids that cannot collide across test runs. Objects
// created under one account are invisible to every other account.
//
// # Determinism
//
// Tests that assert on timestamps pin the clock:
//
//	backend := paymock.New(paymock.WithClock(func() time.Time {
//	    return time.Unix(1700000000, 0)
//	}))
//
// Tests that assert on ids pin them at creation time via the ID field on
// create params; colliding pins fail with resource_already_exists.
package paymock
