package loader

import (
	"encoding/json"
	"net/http"
)

// ResultType discriminates the closed set of loader outcomes.
type ResultType string

const (
	// TypeSuccess carries the loader's data payload.
	TypeSuccess ResultType = "success"

	// TypeRedirect short-circuits the request with an HTTP redirect.
	TypeRedirect ResultType = "redirect"

	// TypeError carries a loader failure and its HTTP status.
	TypeError ResultType = "error"

	// TypeChangeStatusCode overrides the response status without
	// failing the request.
	TypeChangeStatusCode ResultType = "changeStatusCode"

	// TypeUnchanged marks a route the client already has data for.
	// Produced only by LoadDataDiff, never by a fresh load.
	TypeUnchanged ResultType = "unchanged"
)

// Result is the outcome of exactly one loader invocation. It is created
// by the invoker, consumed immediately by the dispatcher and context
// assembly, and never persisted.
type Result struct {
	Type     ResultType
	Data     any
	Location string
	Status   int
	Err      error
}

// Success builds a Success result. A nil payload is valid and is what
// routes without a loader produce.
func Success(data any) Result {
	return Result{Type: TypeSuccess, Data: data}
}

// RedirectTo builds a Redirect result. A zero status defaults to 302.
func RedirectTo(location string, status int) Result {
	if status == 0 {
		status = http.StatusFound
	}
	return Result{Type: TypeRedirect, Location: location, Status: status}
}

// Failure builds an Error result. A zero status defaults to 500.
func Failure(status int, err error) Result {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Result{Type: TypeError, Status: status, Err: err}
}

// ChangeStatus builds a ChangeStatusCode result.
func ChangeStatus(status int) Result {
	return Result{Type: TypeChangeStatusCode, Status: status}
}

// Unchanged is the diff-load sentinel.
func Unchanged() Result {
	return Result{Type: TypeUnchanged}
}

// resultWire is the serialized shape consumed by the client runtime.
type resultWire struct {
	Type     ResultType `json:"type"`
	Data     any        `json:"data,omitempty"`
	Location string     `json:"location,omitempty"`
	Status   int        `json:"status,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// MarshalJSON serializes the result with enough structure for the
// client to distinguish success, redirect, error and status-change.
func (r Result) MarshalJSON() ([]byte, error) {
	wire := resultWire{
		Type:     r.Type,
		Data:     r.Data,
		Location: r.Location,
		Status:   r.Status,
	}
	if r.Err != nil {
		wire.Error = r.Err.Error()
	}
	return json.Marshal(wire)
}
