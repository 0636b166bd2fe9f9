package errors

import "fmt"

// ConfigError reports missing or invalid required input. It is the only
// error class that aborts a run before the poll loop starts.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

func NewConfigError(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Message: fmt.Sprintf(format, args...)}
}

// TimeoutError marks a bounded wait that expired. Inside the poll loop it is
// downgraded to a warning and the cycle is treated as "no centers found".
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

func NewTimeoutError(op string, err error) *TimeoutError {
	return &TimeoutError{Op: op, Err: err}
}

// APIError carries a bad status code or malformed payload from the upstream
// API. Non-fatal inside the loop.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Body)
}

func NewAPIError(op string, status int, body string) *APIError {
	return &APIError{Op: op, Status: status, Body: body}
}

// AuthError means the bearer token was rejected. Advisory only: the loop
// warns and keeps going, recovery is a manual re-login.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth rejected (status %d): %s", e.Status, e.Body)
}

func NewAuthError(status int, body string) *AuthError {
	return &AuthError{Status: status, Body: body}
}

// BookingError is a rejected booking attempt. The body is kept verbatim so
// the user can see why the server said no.
type BookingError struct {
	Status int
	Body   string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("booking rejected (status %d): %s", e.Status, e.Body)
}

func NewBookingError(status int, body string) *BookingError {
	return &BookingError{Status: status, Body: body}
}
