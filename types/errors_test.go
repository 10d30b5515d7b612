package types

import (
	"fmt"
	"net/http"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		status     int
		code       string
		param      string
		message    string
		docURL     string
	}{
		{
			name:    "not found",
			err:     NewNotFoundError("customer", "customer", "cus_gone"),
			status:  http.StatusNotFound,
			code:    CodeResourceMissing,
			param:   "customer",
			message: "No such customer: 'cus_gone'",
			docURL:  "https://stripe.com/docs/error-codes/resource-missing",
		},
		{
			name:    "already exists",
			err:     NewAlreadyExistsError("subscription", "sub_fixed1"),
			status:  http.StatusBadRequest,
			code:    CodeResourceAlreadyExists,
			param:   "id",
			message: "A subscription with ID 'sub_fixed1' already exists in this account.",
			docURL:  "https://stripe.com/docs/error-codes/resource-already-exists",
		},
		{
			name:    "invalid integer",
			err:     NewInvalidIntegerError("limit", -3),
			status:  http.StatusBadRequest,
			code:    CodeParameterInvalidInteger,
			param:   "limit",
			message: "Invalid integer: -3",
			docURL:  "https://stripe.com/docs/error-codes/parameter-invalid-integer",
		},
		{
			name:    "generic invalid request",
			err:     NewInvalidRequestError("Received 3 items but the subscription has 1.", "items"),
			status:  http.StatusBadRequest,
			param:   "items",
			message: "Received 3 items but the subscription has 1.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.err
			if e.StatusCode != tc.status || e.Code != tc.code || e.Param != tc.param {
				t.Fatalf("unexpected error: %+v", e)
			}
			if e.Message != tc.message {
				t.Fatalf("message %q, want %q", e.Message, tc.message)
			}
			if e.DocURL != tc.docURL {
				t.Fatalf("doc_url %q, want %q", e.DocURL, tc.docURL)
			}
			if e.Type != ErrorTypeInvalidRequest || e.RawType != ErrorTypeInvalidRequest {
				t.Fatalf("unexpected type fields: %+v", e)
			}
			if e.Raw == nil {
				t.Fatal("raw payload missing")
			}
			if e.Raw.Code != e.Code || e.Raw.Param != e.Param || e.Raw.Message != e.Message || e.Raw.DocURL != e.DocURL {
				t.Fatalf("raw payload does not mirror the error: %+v vs %+v", e.Raw, e)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := NewNotFoundError("charge", "id", "ch_gone")
	exists := NewAlreadyExistsError("charge", "ch_dup")

	if !IsNotFound(notFound) || IsNotFound(exists) {
		t.Fatal("IsNotFound misclassifies")
	}
	if !IsAlreadyExists(exists) || IsAlreadyExists(notFound) {
		t.Fatal("IsAlreadyExists misclassifies")
	}
	if !IsInvalidRequest(exists) || IsInvalidRequest(notFound) {
		t.Fatal("IsInvalidRequest misclassifies")
	}

	// predicates see through wrapping
	wrapped := fmt.Errorf("list customers: %w", notFound)
	if !IsNotFound(wrapped) {
		t.Fatal("IsNotFound must unwrap")
	}
}

func TestErrorString(t *testing.T) {
	withParam := NewNotFoundError("customer", "customer", "cus_gone").Error()
	if withParam != "paymock: invalid_request_error: No such customer: 'cus_gone' (param: customer)" {
		t.Fatalf("unexpected string: %q", withParam)
	}

	without := NewInvalidRequestError("Currency is required.", "").Error()
	if without != "paymock: invalid_request_error: Currency is required." {
		t.Fatalf("unexpected string: %q", without)
	}
}
