package api

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/agentraghav/local-library/internal/http/response"
)

// EnvelopeTransformer wraps successful huma response bodies in the same
// envelope the operational endpoints use. Errors pass through unchanged so
// clients always see the APIError shape on failure.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if _, ok := v.(error); ok {
		return v, nil
	}
	if len(status) > 0 && status[0] != '2' {
		return v, nil
	}
	return response.Envelope{Success: true, Data: v}, nil
}
