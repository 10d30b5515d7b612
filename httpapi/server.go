// Package httpapi exposes the emulator over HTTP with the real service's
// path, header, and payload conventions: form-encoded request bodies, JSON
// responses, the Stripe-Account header for tenancy, and the error envelope
// {"error": {...}} with the matching status code.
//
// The shim adds no semantics of its own. Every decision that matters
// (validation, referential checks, pagination) lives in the domain layer;
// the shim only decodes forms and renders results.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/samber/lo"
	"go.jetify.com/typeid/v2"

	"github.com/xraph/paymock"
	"github.com/xraph/paymock/charge"
	"github.com/xraph/paymock/customer"
	"github.com/xraph/paymock/dispute"
	"github.com/xraph/paymock/event"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/refund"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

// DefaultAccount is the tenant used when a request carries no
// Stripe-Account header. Single-tenant test suites never need to set the
// header at all.
const DefaultAccount = "acct_default"

// Server adapts a Backend to HTTP.
type Server struct {
	backend *paymock.Backend
	log     *slog.Logger
}

// New builds a server around backend. A nil logger falls back to
// slog.Default.
func New(backend *paymock.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{backend: backend, log: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/customers", s.createCustomer)
	mux.HandleFunc("GET /v1/customers", s.listCustomers)
	mux.HandleFunc("GET /v1/customers/{id}", s.getCustomer)
	mux.HandleFunc("POST /v1/customers/{id}", s.updateCustomer)
	mux.HandleFunc("POST /v1/customers/{id}/sources", s.createCard)
	mux.HandleFunc("GET /v1/customers/{id}/sources/{source}", s.getCard)

	mux.HandleFunc("POST /v1/subscriptions", s.createSubscription)
	mux.HandleFunc("GET /v1/subscriptions", s.listSubscriptions)
	mux.HandleFunc("GET /v1/subscriptions/{id}", s.getSubscription)
	mux.HandleFunc("POST /v1/subscriptions/{id}", s.updateSubscription)
	mux.HandleFunc("DELETE /v1/subscriptions/{id}", s.cancelSubscription)

	mux.HandleFunc("POST /v1/charges", s.createCharge)
	mux.HandleFunc("GET /v1/charges", s.listCharges)
	mux.HandleFunc("GET /v1/charges/{id}", s.getCharge)
	mux.HandleFunc("POST /v1/charges/{id}", s.updateCharge)

	mux.HandleFunc("POST /v1/refunds", s.createRefund)
	mux.HandleFunc("GET /v1/refunds", s.listRefunds)
	mux.HandleFunc("GET /v1/refunds/{id}", s.getRefund)
	mux.HandleFunc("POST /v1/refunds/{id}", s.updateRefund)

	mux.HandleFunc("POST /v1/disputes", s.createDispute)
	mux.HandleFunc("GET /v1/disputes", s.listDisputes)
	mux.HandleFunc("GET /v1/disputes/{id}", s.getDispute)
	mux.HandleFunc("POST /v1/disputes/{id}", s.updateDispute)
	mux.HandleFunc("POST /v1/disputes/{id}/close", s.closeDispute)

	mux.HandleFunc("GET /v1/events", s.listEvents)
	mux.HandleFunc("GET /v1/events/{id}", s.getEvent)

	return s.logRequests(mux)
}

func accountOf(r *http.Request) string {
	if acct := r.Header.Get("Stripe-Account"); acct != "" {
		return acct
	}

	return DefaultAccount
}

// ──────────────────────────────────────────────────
// Customers and cards
// ──────────────────────────────────────────────────

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	src, err := f.sourceSpec("source")
	if err != nil {
		s.writeError(w, err)
		return
	}

	cust, err := s.backend.CreateCustomer(accountOf(r), &customer.Params{
		ID:          f.get("id"),
		Description: f.get("description"),
		Email:       f.get("email"),
		Source:      src,
		Metadata:    f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cust)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	cust, err := s.backend.GetCustomer(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cust)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	params := &customer.UpdateParams{
		DefaultSource: f.get("default_source"),
		Metadata:      f.metadata(),
	}
	if f.has("description") {
		params.Description = lo.ToPtr(f.get("description"))
	}
	if f.has("email") {
		params.Email = lo.ToPtr(f.get("email"))
	}

	cust, err := s.backend.UpdateCustomer(accountOf(r), r.PathValue("id"), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cust)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListCustomers(accountOf(r), &customer.ListParams{ListParams: lp})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) createCard(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Inline details may arrive under source[...] or card[...].
	field := "card"
	if f.hasPrefix("source[") {
		field = "source"
	}
	params, err := f.cardParams(field)
	if err != nil {
		s.writeError(w, err)
		return
	}
	params.Metadata = f.metadata()

	c, err := s.backend.CreateCard(accountOf(r), r.PathValue("id"), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	// The owning customer must exist before the card is looked up, so a
	// wrong customer id names its own parameter.
	acct := accountOf(r)
	if _, err := s.backend.GetCustomer(acct, r.PathValue("id"), "customer"); err != nil {
		s.writeError(w, err)
		return
	}

	c, err := s.backend.GetCard(acct, r.PathValue("source"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

// ──────────────────────────────────────────────────
// Subscriptions
// ──────────────────────────────────────────────────

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	items, err := f.items()
	if err != nil {
		s.writeError(w, err)
		return
	}
	src, err := f.sourceSpec("default_source")
	if err != nil {
		s.writeError(w, err)
		return
	}

	sub, err := s.backend.CreateSubscription(accountOf(r), &subscription.Params{
		ID:            f.get("id"),
		Customer:      f.get("customer"),
		Plan:          f.get("plan"),
		Items:         items,
		DefaultSource: src,
		Metadata:      f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sub)
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.backend.GetSubscription(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sub)
}

func (s *Server) updateSubscription(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	items, err := f.items()
	if err != nil {
		s.writeError(w, err)
		return
	}

	sub, err := s.backend.UpdateSubscription(accountOf(r), r.PathValue("id"), &subscription.UpdateParams{
		Items:    items,
		Metadata: f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sub)
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := s.backend.CancelSubscription(accountOf(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sub)
}

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListSubscriptions(accountOf(r), &subscription.ListParams{
		ListParams: lp,
		Customer:   f.get("customer"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// ──────────────────────────────────────────────────
// Charges and refunds
// ──────────────────────────────────────────────────

func (s *Server) createCharge(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := f.int64("amount")
	if err != nil {
		s.writeError(w, err)
		return
	}
	src, err := f.sourceSpec("source")
	if err != nil {
		s.writeError(w, err)
		return
	}

	ch, err := s.backend.CreateCharge(accountOf(r), &charge.Params{
		ID:          f.get("id"),
		Amount:      amount,
		Currency:    f.get("currency"),
		Customer:    f.get("customer"),
		Source:      src,
		Description: f.get("description"),
		Metadata:    f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ch)
}

func (s *Server) getCharge(w http.ResponseWriter, r *http.Request) {
	ch, err := s.backend.GetCharge(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ch)
}

func (s *Server) updateCharge(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	params := &charge.UpdateParams{Metadata: f.metadata()}
	if f.has("description") {
		params.Description = lo.ToPtr(f.get("description"))
	}

	ch, err := s.backend.UpdateCharge(accountOf(r), r.PathValue("id"), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ch)
}

func (s *Server) listCharges(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListCharges(accountOf(r), &charge.ListParams{
		ListParams: lp,
		Customer:   f.get("customer"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) createRefund(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := f.int64Ptr("amount")
	if err != nil {
		s.writeError(w, err)
		return
	}

	ref, err := s.backend.CreateRefund(accountOf(r), &refund.Params{
		ID:       f.get("id"),
		Charge:   f.get("charge"),
		Amount:   amount,
		Reason:   f.get("reason"),
		Metadata: f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ref)
}

func (s *Server) getRefund(w http.ResponseWriter, r *http.Request) {
	ref, err := s.backend.GetRefund(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ref)
}

func (s *Server) updateRefund(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ref, err := s.backend.UpdateRefund(accountOf(r), r.PathValue("id"), &refund.UpdateParams{
		Metadata: f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ref)
}

func (s *Server) listRefunds(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListRefunds(accountOf(r), &refund.ListParams{
		ListParams: lp,
		Charge:     f.get("charge"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// ──────────────────────────────────────────────────
// Disputes
// ──────────────────────────────────────────────────

func (s *Server) createDispute(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := f.int64Ptr("amount")
	if err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.backend.CreateDispute(accountOf(r), &dispute.Params{
		ID:       f.get("id"),
		Charge:   f.get("charge"),
		Amount:   amount,
		Reason:   f.get("reason"),
		Metadata: f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) getDispute(w http.ResponseWriter, r *http.Request) {
	d, err := s.backend.GetDispute(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) updateDispute(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	d, err := s.backend.UpdateDispute(accountOf(r), r.PathValue("id"), &dispute.UpdateParams{
		Evidence: f.stringMap("evidence"),
		Metadata: f.metadata(),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) closeDispute(w http.ResponseWriter, r *http.Request) {
	d, err := s.backend.CloseDispute(accountOf(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) listDisputes(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListDisputes(accountOf(r), &dispute.ListParams{
		ListParams: lp,
		Charge:     f.get("charge"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// ──────────────────────────────────────────────────
// Events
// ──────────────────────────────────────────────────

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	evt, err := s.backend.GetEvent(accountOf(r), r.PathValue("id"), "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, evt)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	f, err := parseForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	lp, err := f.listParams()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.backend.ListEvents(accountOf(r), &event.ListParams{
		ListParams: lp,
		Type:       f.get("type"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// ──────────────────────────────────────────────────
// Rendering and middleware
// ──────────────────────────────────────────────────

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Request-Id", requestID())
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// writeError renders a domain error with its status code and raw payload.
// Anything that is not a domain error is a bug in the emulator and surfaces
// as a 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var domainErr *types.Error
	if errors.As(err, &domainErr) {
		s.writeJSON(w, domainErr.StatusCode, map[string]any{"error": domainErr.Raw})
		return
	}

	s.log.Error("unhandled error", "error", err)
	s.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": map[string]string{
			"type":    types.ErrorTypeAPI,
			"message": "Internal server error.",
		},
	})
}

func requestID() string {
	tid, err := typeid.Generate(string(id.PrefixRequest))
	if err != nil {
		panic(fmt.Sprintf("httpapi: invalid request id prefix: %v", err))
	}

	return tid.String()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"account", accountOf(r),
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
