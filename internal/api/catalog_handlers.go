package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/agentraghav/local-library/internal/search"
	"github.com/agentraghav/local-library/internal/service"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/summary",
		Summary:     "Catalog summary",
		Description: "Returns the record counts shown on the catalog home page",
		Tags:        []string{"Catalog"},
	}, s.handleCatalogSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search catalog",
		Description: "Full-text search across authors, books and genres",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SummaryOutput wraps the home counts for Huma.
type SummaryOutput struct {
	Body service.HomeView
}

// SearchInput contains parameters for searching the catalog.
type SearchInput struct {
	Query string `query:"q" required:"true" minLength:"1" maxLength:"200" doc:"Search query"`
	Types string `query:"types" maxLength:"100" doc:"Comma-separated types to search (author,book,genre). Omit for all."`
	Limit int    `query:"limit" minimum:"0" maximum:"100" doc:"Max results (default 20)"`
}

// SearchOutput wraps the search result for Huma.
type SearchOutput struct {
	Body search.SearchResult
}

// === Handlers ===

func (s *Server) handleCatalogSummary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	view, err := s.services.Catalog.Home(ctx)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}
	return &SummaryOutput{Body: *view}, nil
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if s.services.Search == nil {
		return nil, huma.Error503ServiceUnavailable("search is disabled")
	}

	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Types = parseDocTypes(input.Types)
	if input.Limit > 0 {
		params.Limit = input.Limit
	}

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}
	return &SearchOutput{Body: *result}, nil
}
