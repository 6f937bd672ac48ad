package service

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

type testEnv struct {
	store   store.Store
	authors *AuthorService
	genres  *GenreService
	books   *BookService
	copies  *BookCopyService
	catalog *CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.NewBadger(filepath.Join(t.TempDir(), "badger"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	return &testEnv{
		store:   s,
		authors: NewAuthorService(s, NoopIndexer{}, logger),
		genres:  NewGenreService(s, NoopIndexer{}, logger),
		books:   NewBookService(s, NoopIndexer{}, logger),
		copies:  NewBookCopyService(s, logger),
		catalog: NewCatalogService(s, nil, logger),
	}
}

func form(kv ...string) validation.Form {
	f := validation.Form{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[kv[i]] = append(f[kv[i]], kv[i+1])
	}
	return f
}

func (e *testEnv) author(t *testing.T, first, family string) *domain.Author {
	t.Helper()
	a := &domain.Author{FirstName: first, FamilyName: family}
	require.NoError(t, e.store.CreateAuthor(context.Background(), a))
	return a
}

func (e *testEnv) genre(t *testing.T, name string) *domain.Genre {
	t.Helper()
	g := &domain.Genre{Name: name}
	require.NoError(t, e.store.CreateGenre(context.Background(), g))
	return g
}

func (e *testEnv) book(t *testing.T, title, authorID string, genreIDs ...string) *domain.Book {
	t.Helper()
	b := &domain.Book{Title: title, Summary: "About " + title, ISBN: "978" + title, AuthorID: authorID, GenreIDs: genreIDs}
	require.NoError(t, e.store.CreateBook(context.Background(), b))
	return b
}

func (e *testEnv) copy(t *testing.T, bookID string, status domain.CopyStatus) *domain.BookCopy {
	t.Helper()
	c := &domain.BookCopy{BookID: bookID, Imprint: "Ace, 1990", Status: status}
	require.NoError(t, e.store.CreateBookCopy(context.Background(), c))
	return c
}

// idFromURL returns the last path segment of a detail locator.
func idFromURL(url string) string {
	return path.Base(url)
}
