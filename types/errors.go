package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error type strings mirroring the real API's public error taxonomy.
const (
	ErrorTypeInvalidRequest = "invalid_request_error"
	ErrorTypeAPI            = "api_error"
	ErrorTypeCard           = "card_error"
)

// Machine-readable error codes mirroring the real API's public contract.
const (
	CodeResourceMissing         = "resource_missing"
	CodeResourceAlreadyExists   = "resource_already_exists"
	CodeParameterInvalidInteger = "parameter_invalid_integer"
)

// RawError is the raw payload nested inside Error, mirroring the "error"
// object the real API returns on the wire.
type RawError struct {
	Code        string `json:"code,omitempty"`
	DeclineCode string `json:"decline_code,omitempty"`
	DocURL      string `json:"doc_url,omitempty"`
	Message     string `json:"message,omitempty"`
	Param       string `json:"param,omitempty"`
	Type        string `json:"type"`
}

// Error is a domain error shaped like the real API's error contract, so
// client error-handling code written against the live service behaves
// identically against the mock. All domain errors surface to the caller
// unmodified; the mock never retries or recovers internally.
type Error struct {
	StatusCode int       `json:"statusCode"`
	Code       string    `json:"code,omitempty"`
	Type       string    `json:"type"`
	RawType    string    `json:"rawType"`
	Message    string    `json:"message"`
	Param      string    `json:"param,omitempty"`
	DocURL     string    `json:"doc_url,omitempty"`
	Raw        *RawError `json:"raw"`
}

func (e *Error) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("paymock: %s: %s (param: %s)", e.Type, e.Message, e.Param)
	}

	return fmt.Sprintf("paymock: %s: %s", e.Type, e.Message)
}

func newError(status int, code, message, param string) *Error {
	docURL := ""
	if code != "" {
		docURL = "https://stripe.com/docs/error-codes/" + dashed(code)
	}

	return &Error{
		StatusCode: status,
		Code:       code,
		Type:       ErrorTypeInvalidRequest,
		RawType:    ErrorTypeInvalidRequest,
		Message:    message,
		Param:      param,
		DocURL:     docURL,
		Raw: &RawError{
			Code:    code,
			DocURL:  docURL,
			Message: message,
			Param:   param,
			Type:    ErrorTypeInvalidRequest,
		},
	}
}

// NewNotFoundError builds the 404 "resource_missing" error returned when a
// retrieval, update, or cursor resolution references an id that does not
// exist in the account. param carries the caller-supplied parameter name so
// failures stay field-attributable.
func NewNotFoundError(kind, param, value string) *Error {
	return newError(
		http.StatusNotFound,
		CodeResourceMissing,
		fmt.Sprintf("No such %s: '%s'", kind, value),
		param,
	)
}

// NewAlreadyExistsError builds the 400 "resource_already_exists" error
// returned when creation supplies an explicit id that collides with an
// existing entity in the same account.
func NewAlreadyExistsError(kind, value string) *Error {
	return newError(
		http.StatusBadRequest,
		CodeResourceAlreadyExists,
		fmt.Sprintf("A %s with ID '%s' already exists in this account.", kind, value),
		"id",
	)
}

// NewInvalidIntegerError builds the 400 "parameter_invalid_integer" error
// for numeric parameters that fail validation (e.g. a non-positive list
// limit). The mock fails fast instead of clamping, matching the real API.
func NewInvalidIntegerError(param string, value int64) *Error {
	return newError(
		http.StatusBadRequest,
		CodeParameterInvalidInteger,
		fmt.Sprintf("Invalid integer: %d", value),
		param,
	)
}

// NewInvalidRequestError builds a generic 400 invalid_request_error with no
// machine code.
func NewInvalidRequestError(message, param string) *Error {
	return newError(http.StatusBadRequest, "", message, param)
}

// IsNotFound reports whether err is a 404 "resource_missing" domain error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeResourceMissing
}

// IsAlreadyExists reports whether err is a 400 "resource_already_exists"
// domain error.
func IsAlreadyExists(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeResourceAlreadyExists
}

// IsInvalidRequest reports whether err is any 400-status domain error.
func IsInvalidRequest(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest
}

// dashed converts a snake_case error code to the dashed form used in doc
// URLs ("resource_missing" -> "resource-missing").
func dashed(code string) string {
	out := make([]byte, len(code))
	for i := 0; i < len(code); i++ {
		if code[i] == '_' {
			out[i] = '-'
		} else {
			out[i] = code[i]
		}
	}

	return string(out)
}
