package server

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-uispec/pkg/orchestrator"
	"github.com/goliatone/go-uispec/pkg/validation"
)

// HTTPError is an error that knows its HTTP status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError attaches an HTTP status to an error.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func statusOf(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		return httpErr.StatusCode()
	}
	var upstream *orchestrator.UpstreamError
	if errors.As(err, &upstream) {
		return http.StatusBadGateway
	}
	var invalid *validation.ValidationError
	if errors.As(err, &invalid) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error     string                   `json:"error"`
	RequestID string                   `json:"requestId,omitempty"`
	Issues    []validation.SchemaIssue `json:"issues,omitempty"`
}
