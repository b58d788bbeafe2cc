// Package errors provides standardized error handling for the customer submission workflow.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidCustomerCount ErrorCode = "INVALID_CUSTOMER_COUNT"

	ErrCodeRequestBuildFailed    ErrorCode = "REQUEST_BUILD_FAILED"
	ErrCodeTransportFailed       ErrorCode = "TRANSPORT_FAILED"
	ErrCodeLocationHeaderMissing ErrorCode = "LOCATION_HEADER_MISSING"

	ErrCodePayloadEncodingFailed ErrorCode = "PAYLOAD_ENCODING_FAILED"
	ErrCodePayloadInvalid        ErrorCode = "PAYLOAD_INVALID"

	ErrCodeRunCancelled ErrorCode = "RUN_CANCELLED"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Stage names the workflow step a customer failed in.
type Stage string

const (
	StageBuildCustomer  Stage = "build_customer"
	StageCreateCustomer Stage = "create_customer"
	StageBuildContacts  Stage = "build_contacts"
	StageSubmitContacts Stage = "submit_contacts"
	StageUnknown        Stage = "unknown"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// CustomerError ties a failure to the customer being processed and the step it failed in.
type CustomerError struct {
	Index    int
	Stage    Stage
	Location string
	Err      error
}

func (e *CustomerError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("customer %d (%s) failed at %s: %v", e.Index, e.Location, e.Stage, e.Err)
	}
	return fmt.Sprintf("customer %d failed at %s: %v", e.Index, e.Stage, e.Err)
}

func (e *CustomerError) Unwrap() error {
	return e.Err
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidCustomerCountError reports a count argument that could not be used.
func NewInvalidCustomerCountError(raw string, err error) *StandardError {
	details := fmt.Sprintf("argument: %q", raw)
	if err != nil {
		details = fmt.Sprintf("%s, error: %s", details, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeInvalidCustomerCount,
		Message:   "Customer count is not a non-negative integer",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRequestBuildFailedError reports a request that could not be constructed, usually a bad URL.
func NewRequestBuildFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestBuildFailed,
		Message:   "Failed to build HTTP request",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"target": target},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewTransportFailedError reports a connection, I/O or timeout failure talking to the service.
func NewTransportFailedError(target string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTransportFailed,
		Message:   "HTTP call to customer service failed",
		Details:   fmt.Sprintf("target: %s, error: %s", target, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"target": target},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewLocationHeaderMissingError reports a creation response without a location header.
func NewLocationHeaderMissingError(target string, statusCode int) *StandardError {
	return &StandardError{
		Code:      ErrCodeLocationHeaderMissing,
		Message:   "Customer creation response has no location header",
		Details:   fmt.Sprintf("target: %s, status: %d", target, statusCode),
		Retryable: false,
		Metadata: map[string]interface{}{
			"target":     target,
			"statusCode": statusCode,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewPayloadEncodingFailedError reports a payload that could not be serialized to JSON.
func NewPayloadEncodingFailedError(payload string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadEncodingFailed,
		Message:   "Failed to encode payload",
		Details:   fmt.Sprintf("payload: %s, error: %s", payload, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewPayloadInvalidError reports a payload rejected by its JSON schema.
func NewPayloadInvalidError(payload string, violations []string) *StandardError {
	return &StandardError{
		Code:      ErrCodePayloadInvalid,
		Message:   "Payload does not match its schema",
		Details:   fmt.Sprintf("payload: %s, violations: %s", payload, strings.Join(violations, "; ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"violations": violations},
		Timestamp: time.Now().UTC(),
	}
}

// NewRunCancelledError reports a run stopped by context cancellation.
func NewRunCancelledError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRunCancelled,
		Message:   "Run cancelled",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ExtractErrorCode returns the code used as a metric label for err.
func ExtractErrorCode(err error) string {
	if err == nil {
		return ""
	}
	return string(AsStandardError(err).Code)
}

// ExtractStage returns the workflow stage a customer error happened in.
func ExtractStage(err error) Stage {
	var custErr *CustomerError
	if stderrors.As(err, &custErr) {
		return custErr.Stage
	}
	return StageUnknown
}

// IsRetryable reports whether err is worth retrying by the caller. The workflow itself never retries.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// As re-exports the standard library helper so callers need a single errors import.
func As(err error, target any) bool { return stderrors.As(err, target) }

// HasCode reports whether any error combined in err carries code. Each combined
// error is checked through its own chain.
func HasCode(err error, code ErrorCode) bool {
	for _, e := range multierr.Errors(err) {
		var stdErr *StandardError
		if stderrors.As(e, &stdErr) && stdErr.Code == code {
			return true
		}
	}
	return false
}
