package paymock

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/event"
	"github.com/xraph/paymock/hook"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/store"
	"github.com/xraph/paymock/subscription"
)

// Backend is the in-memory payments API emulator. All state is partitioned
// by account id and lives only for the lifetime of the Backend; independent
// Backends never share state, so each test run can hold its own.
//
// The Backend is driven by one test process at a time: cross-account
// isolation is a keying property, and concurrent mutation of the same
// account from multiple goroutines is unsupported.
type Backend struct {
	customers     *store.Collection[*customer.Customer]
	cards         *store.Collection[*card.Card]
	subscriptions *store.Collection[*subscription.Subscription]
	charges       *store.Collection[*charge.Charge]
	refunds       *store.Collection[*refund.Refund]
	disputes      *store.Collection[*dispute.Dispute]
	events        *store.Collection[*event.Event]

	hooks    *hook.Registry
	logger   *slog.Logger
	clock    func() time.Time
	idLength int
}

// New creates a new Backend instance.
func New(opts ...Option) *Backend {
	b := &Backend{
		customers:     store.NewCollection[*customer.Customer](),
		cards:         store.NewCollection[*card.Card](),
		subscriptions: store.NewCollection[*subscription.Subscription](),
		charges:       store.NewCollection[*charge.Charge](),
		refunds:       store.NewCollection[*refund.Refund](),
		disputes:      store.NewCollection[*dispute.Dispute](),
		events:        store.NewCollection[*event.Event](),
		hooks:         hook.NewRegistry(),
		logger:        slog.Default(),
		clock:         time.Now,
		idLength:      id.DefaultLength,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Option configures a Backend instance.
type Option func(*Backend)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
		b.hooks.WithLogger(logger)
	}
}

// WithClock sets the time source, letting tests pin timestamps.
func WithClock(clock func() time.Time) Option {
	return func(b *Backend) {
		b.clock = clock
	}
}

// WithIDLength sets the random-suffix length of generated object ids.
func WithIDLength(length int) Option {
	return func(b *Backend) {
		if length > 0 {
			b.idLength = length
		}
	}
}

// WithHook registers a lifecycle hook.
func WithHook(h hook.Hook) Option {
	return func(b *Backend) {
		_ = b.hooks.Register(h) //nolint:errcheck // best-effort hook registration during init
	}
}

// Hooks returns the hook registry, for registration after construction.
func (b *Backend) Hooks() *hook.Registry {
	return b.hooks
}

// NewAccountID returns a fresh opaque account id. Accounts need no
// registration: any opaque string works as a tenancy key, this helper just
// hands out ids that cannot collide across test runs.
func NewAccountID() string {
	return string(id.PrefixAccount) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// now returns the current time as unix seconds, the timestamp form every
// mocked object carries.
func (b *Backend) now() int64 {
	return b.clock().Unix()
}

func (b *Backend) newID(prefix id.Prefix) string {
	return id.NewWithLength(prefix, b.idLength)
}
