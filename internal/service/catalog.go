package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/search"
	"github.com/agentraghav/local-library/internal/store"
)

// HomeView holds the record counts shown on the catalog home page.
type HomeView struct {
	BookCount          int `json:"book_count"`
	CopyCount          int `json:"book_instance_count"`
	AvailableCopyCount int `json:"book_instance_available_count"`
	AuthorCount        int `json:"author_count"`
	GenreCount         int `json:"genre_count"`
}

// SearchView is the catalog search page. Result is nil before a query is
// entered or when search is disabled.
type SearchView struct {
	Query   string
	Enabled bool
	Result  *search.SearchResult
}

// CatalogService serves the catalog home page and search.
type CatalogService struct {
	store  store.Store
	search *SearchService
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service. search may be nil.
func NewCatalogService(store store.Store, search *SearchService, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		search: search,
		logger: logger,
	}
}

// Home counts every collection concurrently.
func (s *CatalogService) Home(ctx context.Context) (*HomeView, error) {
	var view HomeView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.BookCount, err = s.store.CountBooks(gctx)
		return err
	})
	g.Go(func() (err error) {
		view.CopyCount, err = s.store.CountBookCopies(gctx, store.CopyFilter{})
		return err
	})
	g.Go(func() (err error) {
		view.AvailableCopyCount, err = s.store.CountBookCopies(gctx, store.CopyFilter{Status: domain.StatusAvailable})
		return err
	})
	g.Go(func() (err error) {
		view.AuthorCount, err = s.store.CountAuthors(gctx)
		return err
	})
	g.Go(func() (err error) {
		view.GenreCount, err = s.store.CountGenres(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &view, nil
}

// Search runs a full-text query over authors, books and genres.
func (s *CatalogService) Search(ctx context.Context, query string, types ...search.DocType) (*SearchView, error) {
	view := &SearchView{Query: strings.TrimSpace(query), Enabled: s.search != nil}
	if !view.Enabled || view.Query == "" {
		return view, nil
	}

	params := search.DefaultSearchParams()
	params.Query = view.Query
	params.Types = types

	result, err := s.search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	view.Result = result
	return view, nil
}
