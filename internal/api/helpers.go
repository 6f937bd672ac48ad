package api

import (
	"context"
	"strings"

	"github.com/agentraghav/local-library/internal/store"
)

// sort converts the query parameters to a store sort.
func (in *ListInput) sort() store.Sort {
	return store.Sort{
		Field:      in.Sort,
		Descending: strings.EqualFold(in.Order, "desc"),
	}
}

// jsonError converts a service error for huma and logs it when it is not a
// known client error.
func (s *Server) jsonError(ctx context.Context, err error) error {
	if apiErr := toAPIError(err); apiErr != nil {
		return apiErr
	}
	s.logger.ErrorContext(ctx, "API request failed", "error", err)
	return apiError(err)
}
