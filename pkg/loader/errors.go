package loader

import (
	"fmt"
	"net/http"
)

// RedirectError signals that a loader wants the request redirected
// instead of rendered. Return it (or an error wrapping it) from a
// loader; the invoker converts it to a Redirect result.
type RedirectError struct {
	To     string
	Status int
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirect to %s (%d)", e.To, e.Status)
}

// Redirect returns an error that converts to a Redirect result.
// A zero status defaults to 302.
func Redirect(to string, status int) error {
	if status == 0 {
		status = http.StatusFound
	}
	return &RedirectError{To: to, Status: status}
}

// StatusCodeError signals a response status override without failing
// the request, e.g. 404 from a loader whose route matched but whose
// record does not exist.
type StatusCodeError struct {
	Code int
}

func (e *StatusCodeError) Error() string {
	return fmt.Sprintf("change status code to %d", e.Code)
}

// StatusCode returns an error that converts to a ChangeStatusCode result.
func StatusCode(code int) error {
	return &StatusCodeError{Code: code}
}

// StatusError is a loader failure carrying its own HTTP status. Plain
// errors default to 500.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("loader failed with status %d: %v", e.Status, e.Err)
}

func (e *StatusError) Unwrap() error { return e.Err }

// WithStatus wraps err so the resulting Error result carries status.
func WithStatus(status int, err error) error {
	return &StatusError{Status: status, Err: err}
}
