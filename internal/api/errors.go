package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/store"
)

// APIError is the JSON body of every failed API call.
type APIError struct { //nolint:revive // exported name is part of the OpenAPI schema
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string               { return e.Message }
func (e *APIError) GetStatus() int              { return e.status }
func (e *APIError) ContentType(_ string) string { return "application/json" }

// RegisterErrorHandler makes huma build APIErrors, including for its own
// request validation failures. It replaces the package-level huma.NewError.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		var details []string
		for _, err := range errs {
			if err == nil {
				continue
			}
			if known := toAPIError(err); known != nil {
				return known
			}
			details = append(details, err.Error())
		}

		e := &APIError{status: status, Code: codeFor(status), Message: message}
		if len(details) > 0 {
			e.Details = details
		}
		return e
	}
}

// toAPIError translates coded domain and store errors. Anything else yields nil.
func toAPIError(err error) *APIError {
	if de, ok := errors.AsType[*domainerrors.Error](err); ok {
		return &APIError{status: de.HTTPStatus(), Code: string(de.Code), Message: de.Message, Details: de.Details}
	}
	if se, ok := errors.AsType[*store.Error](err); ok {
		return &APIError{status: se.HTTPCode(), Code: codeFor(se.HTTPCode()), Message: se.Message}
	}
	return nil
}

var codeByStatus = map[int]domainerrors.Code{
	http.StatusBadRequest:          domainerrors.CodeValidation,
	http.StatusUnprocessableEntity: domainerrors.CodeValidation,
	http.StatusNotFound:            domainerrors.CodeNotFound,
	http.StatusConflict:            domainerrors.CodeAlreadyExists,
	http.StatusTooManyRequests:     domainerrors.CodeTooManyRequests,
}

func codeFor(status int) string {
	if c, ok := codeByStatus[status]; ok {
		return string(c)
	}
	return string(domainerrors.CodeInternal)
}

// apiError is toAPIError with a generic 500 fallback.
func apiError(err error) error {
	if e := toAPIError(err); e != nil {
		return e
	}
	return huma.Error500InternalServerError("internal server error")
}
