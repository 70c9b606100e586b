package certificate

import "fmt"

// Error represents a structured error from the certificate package
type Error interface {
	error
	Code() ErrorCode
	Message() string
	Unwrap() error
}

type ErrorCode string

const (
	// ErrCodeValidation is used for malformed or missing input. These errors never reach the ledger.
	ErrCodeValidation ErrorCode = "validation"

	// ErrCodeNotFound is used when the ledger reports that the requested certificate does not exist.
	// This is a valid negative result rather than a failed ledger call.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeLedger is used when a ledger call reverted or a transaction failed.
	ErrCodeLedger ErrorCode = "ledger"

	// ErrCodeInfrastructure is used for connectivity, timeout and configuration failures.
	ErrCodeInfrastructure ErrorCode = "infrastructure"
)

// CertError represents a structured error from the certificate package
type CertError struct {

	// code is the error code
	code ErrorCode

	// message is the stable message returned to the client
	message string

	// field names the offending request field (validation errors only)
	field string

	// wrapped is the optional underlying error
	wrapped error
}

func (e *CertError) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrapped)
	}
	return e.message
}

func (e *CertError) Code() ErrorCode { return e.code }
func (e *CertError) Message() string { return e.message }
func (e *CertError) Field() string   { return e.field }
func (e *CertError) Unwrap() error   { return e.wrapped }

// Detail returns the raw underlying error message, or an empty string if there is none.
func (e *CertError) Detail() string {
	if e.wrapped == nil {
		return ""
	}
	return e.wrapped.Error()
}

// NewValidationError creates a validation error for the named request field.
//
// The returned error will have code ErrCodeValidation.
func NewValidationError(field, msg string) error {
	return &CertError{code: ErrCodeValidation, message: msg, field: field}
}

// NewNotFoundError creates an error for a certificate the ledger does not know about.
//
// The returned error will have code ErrCodeNotFound.
func NewNotFoundError(msg string) error {
	return &CertError{code: ErrCodeNotFound, message: msg}
}

// WrapLedgerError wraps a failed ledger call.
// The client facing message is derived from the raw error using TranslateLedgerError.
//
// The returned error will have code ErrCodeLedger.
func WrapLedgerError(err error) error {
	return &CertError{code: ErrCodeLedger, message: TranslateLedgerError(err.Error()), wrapped: err}
}

// NewLedgerError creates a ledger error from a message.
//
// The returned error will have code ErrCodeLedger.
func NewLedgerError(msg string) error {
	return &CertError{code: ErrCodeLedger, message: TranslateLedgerError(msg)}
}

// NewInfrastructureError creates an infrastructure error.
// Use this for failures talking to the ledger node or loading startup configuration.
//
// The returned error will have code ErrCodeInfrastructure.
func NewInfrastructureError(msg string) error {
	return &CertError{code: ErrCodeInfrastructure, message: msg}
}

// WrapInfrastructureError wraps an existing error as an infrastructure error.
//
// The returned error will have code ErrCodeInfrastructure.
func WrapInfrastructureError(err error, msg string) error {
	return &CertError{code: ErrCodeInfrastructure, message: msg, wrapped: err}
}
