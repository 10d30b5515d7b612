package paymock

import "github.com/xraph/paymock/types"

// Re-export the shared error and list surface for convenience so users
// don't have to import the types package.

// Error is re-exported from the types package.
type Error = types.Error

// RawError is re-exported from the types package.
type RawError = types.RawError

// Metadata is re-exported from the types package.
type Metadata = types.Metadata

// ListParams is re-exported from the types package.
type ListParams = types.ListParams

// Error taxonomy constants.
const (
	ErrorTypeInvalidRequest = types.ErrorTypeInvalidRequest
	ErrorTypeAPI            = types.ErrorTypeAPI
	ErrorTypeCard           = types.ErrorTypeCard

	CodeResourceMissing         = types.CodeResourceMissing
	CodeResourceAlreadyExists   = types.CodeResourceAlreadyExists
	CodeParameterInvalidInteger = types.CodeParameterInvalidInteger
)

// Re-export error constructors and classifiers.
var (
	NewNotFoundError       = types.NewNotFoundError
	NewAlreadyExistsError  = types.NewAlreadyExistsError
	NewInvalidIntegerError = types.NewInvalidIntegerError
	NewInvalidRequestError = types.NewInvalidRequestError

	IsNotFound       = types.IsNotFound
	IsAlreadyExists  = types.IsAlreadyExists
	IsInvalidRequest = types.IsInvalidRequest
)

// StringifyMetadata is re-exported from the types package.
var StringifyMetadata = types.StringifyMetadata
