package tracker

import (
	"errors"
	"fmt"
)

// CarrierError is an error from a carrier API. It only travels inside the
// carrier packages (APIClient layer); the public Track operations convert
// it into a failure-shaped result at the boundary.
type CarrierError struct {
	Carrier    Carrier
	Code       string
	Message    string
	StatusCode int
	Cause      error
}

// Error implements the error interface.
func (e *CarrierError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Carrier, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Carrier, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *CarrierError) Unwrap() error {
	return e.Cause
}

// NewCarrierError creates a new CarrierError.
func NewCarrierError(c Carrier, code, message string) *CarrierError {
	return &CarrierError{Carrier: c, Code: code, Message: message}
}

// WithCause attaches the underlying error.
func (e *CarrierError) WithCause(err error) *CarrierError {
	e.Cause = err
	return e
}

// WithStatusCode attaches the upstream HTTP status code.
func (e *CarrierError) WithStatusCode(code int) *CarrierError {
	e.StatusCode = code
	return e
}

// Sentinel errors for the carrier layer.
var (
	// ErrCarrierNotFound indicates the requested carrier is not registered.
	ErrCarrierNotFound = errors.New("carrier not found")

	// ErrCredentialsMissing indicates a required carrier credential is not
	// configured. Detected before any network call.
	ErrCredentialsMissing = errors.New("carrier credentials not configured")

	// ErrTokenExchange indicates the OAuth token exchange failed.
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrNoTrackingData indicates the carrier accepted the request but had
	// nothing to report for the tracking number.
	ErrNoTrackingData = errors.New("no tracking data")

	// ErrUnsupportedOperation indicates the carrier does not support the
	// requested operation (e.g. batch lookup on a domestic carrier).
	ErrUnsupportedOperation = errors.New("operation not supported by carrier")
)
