package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/search"
	"github.com/agentraghav/local-library/internal/store"
)

// Indexer keeps the search index in sync with catalog writes.
type Indexer interface {
	IndexAuthor(ctx context.Context, a *domain.Author) error
	IndexGenre(ctx context.Context, g *domain.Genre) error
	IndexBook(ctx context.Context, b *domain.Book) error
	Remove(ctx context.Context, id string) error
}

// NoopIndexer is used when search is disabled.
type NoopIndexer struct{}

// IndexAuthor is a no-op.
func (NoopIndexer) IndexAuthor(context.Context, *domain.Author) error { return nil }

// IndexGenre is a no-op.
func (NoopIndexer) IndexGenre(context.Context, *domain.Genre) error { return nil }

// IndexBook is a no-op.
func (NoopIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// Remove is a no-op.
func (NoopIndexer) Remove(context.Context, string) error { return nil }

// SearchService bridges the search index with the store, building
// denormalized documents and running queries.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	logger *slog.Logger
}

var _ Indexer = (*SearchService)(nil)

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a query across authors, books and genres.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexAuthor indexes an author and refreshes its books, whose documents
// carry the author's name.
func (s *SearchService) IndexAuthor(ctx context.Context, a *domain.Author) error {
	if err := s.index.IndexDocument(search.AuthorToSearchDocument(a)); err != nil {
		return fmt.Errorf("index author: %w", err)
	}

	books, err := s.store.ListBooksByAuthor(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("list author books: %w", err)
	}
	if err := s.indexBooks(ctx, books); err != nil {
		return err
	}

	s.logger.Debug("indexed author", "id", a.ID, "name", a.Name(), "books", len(books))
	return nil
}

// IndexGenre indexes a genre and refreshes the books shelved under it.
func (s *SearchService) IndexGenre(ctx context.Context, g *domain.Genre) error {
	if err := s.index.IndexDocument(search.GenreToSearchDocument(g)); err != nil {
		return fmt.Errorf("index genre: %w", err)
	}

	books, err := s.store.ListBooksByGenre(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("list genre books: %w", err)
	}
	if err := s.indexBooks(ctx, books); err != nil {
		return err
	}

	s.logger.Debug("indexed genre", "id", g.ID, "name", g.Name)
	return nil
}

// IndexBook indexes a single book.
func (s *SearchService) IndexBook(ctx context.Context, b *domain.Book) error {
	doc, err := s.buildBookDocument(ctx, b)
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}
	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index book: %w", err)
	}

	s.logger.Debug("indexed book", "id", b.ID, "title", b.Title)
	return nil
}

// Remove deletes a document from the index.
func (s *SearchService) Remove(_ context.Context, id string) error {
	return s.index.DeleteDocument(id)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the entire search index from the store.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	authors, err := s.store.ListAuthors(ctx, store.Sort{})
	if err != nil {
		return fmt.Errorf("list authors: %w", err)
	}
	genres, err := s.store.ListGenres(ctx, store.Sort{})
	if err != nil {
		return fmt.Errorf("list genres: %w", err)
	}
	books, err := s.store.ListBooks(ctx, store.Sort{})
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	docs := make([]*search.SearchDocument, 0, len(authors)+len(genres)+len(books))
	for _, a := range authors {
		docs = append(docs, search.AuthorToSearchDocument(a))
	}
	for _, g := range genres {
		docs = append(docs, search.GenreToSearchDocument(g))
	}

	// Resolve names from the lists already loaded rather than per book.
	authorNames := make(map[string]string, len(authors))
	for _, a := range authors {
		authorNames[a.ID] = a.Name()
	}
	genreNames := make(map[string]string, len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
	}
	for _, b := range books {
		var names []string
		for _, gid := range b.GenreIDs {
			if n, ok := genreNames[gid]; ok {
				names = append(names, n)
			}
		}
		docs = append(docs, search.BookToSearchDocument(b, authorNames[b.AuthorID], names))
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	s.logger.Info("full reindex complete",
		"authors", len(authors),
		"genres", len(genres),
		"books", len(books),
	)
	return nil
}

func (s *SearchService) indexBooks(ctx context.Context, books []*domain.Book) error {
	if len(books) == 0 {
		return nil
	}
	docs := make([]*search.SearchDocument, 0, len(books))
	for _, b := range books {
		doc, err := s.buildBookDocument(ctx, b)
		if err != nil {
			return fmt.Errorf("build document: %w", err)
		}
		docs = append(docs, doc)
	}
	return s.index.IndexDocuments(docs)
}

// buildBookDocument resolves the author and genre names denormalized into
// a book document. Dangling references are left out.
func (s *SearchService) buildBookDocument(ctx context.Context, b *domain.Book) (*search.SearchDocument, error) {
	var authorName string
	author, err := s.store.GetAuthor(ctx, b.AuthorID)
	switch {
	case err == nil:
		authorName = author.Name()
	case !store.IsNotFound(err):
		return nil, err
	}

	genres, err := s.store.GetGenresByIDs(ctx, b.GenreIDs)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}

	return search.BookToSearchDocument(b, authorName, names), nil
}
