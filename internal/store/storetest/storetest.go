// Package storetest holds the behavioral contract every store.Store
// implementation must satisfy. Backends call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/store"
)

// Factory opens an empty store. Implementations register cleanup on t.
type Factory func(t *testing.T) store.Store

// Run executes the full contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("AuthorRoundTrip", func(t *testing.T) { testAuthorRoundTrip(t, newStore(t)) })
	t.Run("AuthorUpdateKeepsID", func(t *testing.T) { testAuthorUpdate(t, newStore(t)) })
	t.Run("AuthorSort", func(t *testing.T) { testAuthorSort(t, newStore(t)) })
	t.Run("MissingRecords", func(t *testing.T) { testMissing(t, newStore(t)) })
	t.Run("GenreNameUnique", func(t *testing.T) { testGenreUnique(t, newStore(t)) })
	t.Run("GenreSortCaseInsensitive", func(t *testing.T) { testGenreSort(t, newStore(t)) })
	t.Run("BookReferences", func(t *testing.T) { testBookReferences(t, newStore(t)) })
	t.Run("BookTitlesProjection", func(t *testing.T) { testBookTitles(t, newStore(t)) })
	t.Run("GetByIDsSkipsMissing", func(t *testing.T) { testGetByIDs(t, newStore(t)) })
	t.Run("CopyFilters", func(t *testing.T) { testCopyFilters(t, newStore(t)) })
	t.Run("InvalidSortField", func(t *testing.T) { testInvalidSort(t, newStore(t)) })
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func mustAuthor(t *testing.T, s store.Store, first, family string) *domain.Author {
	t.Helper()
	a := &domain.Author{FirstName: first, FamilyName: family}
	require.NoError(t, s.CreateAuthor(context.Background(), a))
	return a
}

func mustGenre(t *testing.T, s store.Store, name string) *domain.Genre {
	t.Helper()
	g := &domain.Genre{Name: name}
	require.NoError(t, s.CreateGenre(context.Background(), g))
	return g
}

func mustBook(t *testing.T, s store.Store, title, authorID string, genreIDs ...string) *domain.Book {
	t.Helper()
	b := &domain.Book{Title: title, Summary: "summary of " + title, ISBN: "isbn-" + title, AuthorID: authorID, GenreIDs: genreIDs}
	require.NoError(t, s.CreateBook(context.Background(), b))
	return b
}

func mustCopy(t *testing.T, s store.Store, bookID, imprint string, status domain.CopyStatus) *domain.BookCopy {
	t.Helper()
	c := &domain.BookCopy{BookID: bookID, Imprint: imprint, Status: status}
	require.NoError(t, s.CreateBookCopy(context.Background(), c))
	return c
}

func testAuthorRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	a := &domain.Author{
		FirstName:   "Patrick",
		FamilyName:  "Rothfuss",
		DateOfBirth: date(1973, time.June, 6),
	}
	require.NoError(t, s.CreateAuthor(ctx, a))
	require.NotEmpty(t, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	got, err := s.GetAuthor(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Patrick", got.FirstName)
	assert.Equal(t, "Rothfuss", got.FamilyName)
	require.NotNil(t, got.DateOfBirth)
	assert.True(t, a.DateOfBirth.Equal(*got.DateOfBirth))
	assert.Nil(t, got.DateOfDeath)

	n, err := s.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testAuthorUpdate(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := mustAuthor(t, s, "Ben", "Bova")
	original := a.ID

	a.FirstName = "Benjamin"
	a.DateOfDeath = date(2020, time.November, 29)
	require.NoError(t, s.UpdateAuthor(ctx, a))

	got, err := s.GetAuthor(ctx, original)
	require.NoError(t, err)
	assert.Equal(t, original, got.ID)
	assert.Equal(t, "Benjamin", got.FirstName)
	require.NotNil(t, got.DateOfDeath)

	// Update replaces every field, so clearing a date removes it.
	got.DateOfDeath = nil
	require.NoError(t, s.UpdateAuthor(ctx, got))
	got, err = s.GetAuthor(ctx, original)
	require.NoError(t, err)
	assert.Nil(t, got.DateOfDeath)

	n, err := s.CountAuthors(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func testAuthorSort(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustAuthor(t, s, "Isaac", "Asimov")
	mustAuthor(t, s, "Bob", "billings")
	mustAuthor(t, s, "Jim", "Jones")

	authors, err := s.ListAuthors(ctx, store.Sort{})
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, []string{"Asimov", "billings", "Jones"}, familyNames(authors))

	authors, err = s.ListAuthors(ctx, store.Sort{Field: "family_name", Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jones", "billings", "Asimov"}, familyNames(authors))
}

func familyNames(authors []*domain.Author) []string {
	out := make([]string, len(authors))
	for i, a := range authors {
		out[i] = a.FamilyName
	}
	return out
}

func testMissing(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.GetAuthor(ctx, "author-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetGenre(ctx, "genre-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetBook(ctx, "book-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetBookCopy(ctx, "copy-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetGenreByName(ctx, "Nothing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = s.UpdateAuthor(ctx, &domain.Author{Record: domain.Record{ID: "author-missing"}, FirstName: "X", FamilyName: "Y"})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBook(ctx, "book-missing"), store.ErrNotFound)
	assert.ErrorIs(t, s.DeleteBookCopy(ctx, "copy-missing"), store.ErrNotFound)
}

func testGenreUnique(t *testing.T, s store.Store) {
	ctx := context.Background()
	fantasy := mustGenre(t, s, "Fantasy")
	poetry := mustGenre(t, s, "Poetry")

	err := s.CreateGenre(ctx, &domain.Genre{Name: "Fantasy"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.GetGenreByName(ctx, "Fantasy")
	require.NoError(t, err)
	assert.Equal(t, fantasy.ID, got.ID)

	// Renaming onto an existing name is rejected, renaming to itself is not.
	poetry.Name = "Fantasy"
	assert.ErrorIs(t, s.UpdateGenre(ctx, poetry), store.ErrAlreadyExists)
	fantasy.Name = "Fantasy"
	assert.NoError(t, s.UpdateGenre(ctx, fantasy))

	// Deleting frees the name.
	require.NoError(t, s.DeleteGenre(ctx, fantasy.ID))
	assert.NoError(t, s.CreateGenre(ctx, &domain.Genre{Name: "Fantasy"}))
}

func testGenreSort(t *testing.T, s store.Store) {
	ctx := context.Background()
	mustGenre(t, s, "science fiction")
	mustGenre(t, s, "Fantasy")
	mustGenre(t, s, "Poetry")

	genres, err := s.ListGenres(ctx, store.Sort{})
	require.NoError(t, err)
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"Fantasy", "Poetry", "science fiction"}, names)
}

func testBookReferences(t *testing.T, s store.Store) {
	ctx := context.Background()
	author := mustAuthor(t, s, "Patrick", "Rothfuss")
	other := mustAuthor(t, s, "Ben", "Bova")
	fantasy := mustGenre(t, s, "Fantasy")
	poetry := mustGenre(t, s, "Poetry")

	wise := mustBook(t, s, "The Wise Man's Fear", author.ID, fantasy.ID)
	mustBook(t, s, "The Name of the Wind", author.ID, fantasy.ID, poetry.ID)
	mustBook(t, s, "Apes and Angels", other.ID)

	books, err := s.ListBooksByAuthor(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "The Name of the Wind", books[0].Title)

	books, err = s.ListBooksByGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// Moving a book re-points its indexes.
	wise.AuthorID = other.ID
	wise.GenreIDs = []string{poetry.ID}
	require.NoError(t, s.UpdateBook(ctx, wise))

	books, err = s.ListBooksByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	books, err = s.ListBooksByGenre(ctx, fantasy.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)
	books, err = s.ListBooksByGenre(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	got, err := s.GetBook(ctx, wise.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{poetry.ID}, got.GenreIDs)

	require.NoError(t, s.DeleteBook(ctx, wise.ID))
	books, err = s.ListBooksByGenre(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Len(t, books, 1)

	n, err := s.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func testBookTitles(t *testing.T, s store.Store) {
	ctx := context.Background()
	author := mustAuthor(t, s, "Isaac", "Asimov")
	mustBook(t, s, "Foundation", author.ID)
	mustBook(t, s, "a Fall of Moondust", author.ID)

	titles, err := s.ListBookTitles(ctx)
	require.NoError(t, err)
	require.Len(t, titles, 2)
	assert.Equal(t, "a Fall of Moondust", titles[0].Title)
	assert.NotEmpty(t, titles[0].ID)
	assert.Empty(t, titles[0].Summary)
	assert.Empty(t, titles[0].AuthorID)
}

func testGetByIDs(t *testing.T, s store.Store) {
	ctx := context.Background()
	a := mustGenre(t, s, "A")
	b := mustGenre(t, s, "B")

	genres, err := s.GetGenresByIDs(ctx, []string{b.ID, "genre-gone", a.ID})
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, b.ID, genres[0].ID)
	assert.Equal(t, a.ID, genres[1].ID)

	authors, err := s.GetAuthorsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func testCopyFilters(t *testing.T, s store.Store) {
	ctx := context.Background()
	author := mustAuthor(t, s, "Isaac", "Asimov")
	foundation := mustBook(t, s, "Foundation", author.ID)
	robots := mustBook(t, s, "I, Robot", author.ID)

	mustCopy(t, s, foundation.ID, "Gnome Press, 1951", domain.StatusAvailable)
	loaned := mustCopy(t, s, foundation.ID, "Bantam, 1991", domain.StatusLoaned)
	mustCopy(t, s, robots.ID, "Gnome Press, 1950", domain.StatusAvailable)

	tests := []struct {
		name   string
		filter store.CopyFilter
		want   int
	}{
		{"all", store.CopyFilter{}, 3},
		{"available", store.CopyFilter{Status: domain.StatusAvailable}, 2},
		{"by book", store.CopyFilter{BookID: foundation.ID}, 2},
		{"by book and status", store.CopyFilter{BookID: foundation.ID, Status: domain.StatusLoaned}, 1},
		{"no match", store.CopyFilter{Status: domain.StatusReserved}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := s.CountBookCopies(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	copies, err := s.ListBookCopiesByBook(ctx, foundation.ID)
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, "Bantam, 1991", copies[0].Imprint)

	loaned.Status = domain.StatusAvailable
	loaned.DueBack = date(2026, time.January, 2)
	require.NoError(t, s.UpdateBookCopy(ctx, loaned))

	n, err := s.CountBookCopies(ctx, store.CopyFilter{Status: domain.StatusAvailable})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	got, err := s.GetBookCopy(ctx, loaned.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DueBack)
	assert.Equal(t, "2026-01-02", domain.ISODate(got.DueBack))

	all, err := s.ListBookCopies(ctx, store.Sort{Field: "imprint", Descending: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Gnome Press, 1951", all[0].Imprint)
}

func testInvalidSort(t *testing.T, s store.Store) {
	_, err := s.ListBooks(context.Background(), store.Sort{Field: "summary"})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}
