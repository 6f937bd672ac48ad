package search

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
)

// setupTestIndex creates a temporary search index for testing.
func setupTestIndex(t *testing.T) (*SearchIndex, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "search-test-*")
	require.NoError(t, err)

	index, err := NewSearchIndex(Options{
		DataPath: tmpDir,
		Logger:   nil,
	})
	require.NoError(t, err)

	cleanup := func() {
		_ = index.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return index, cleanup
}

func TestNewSearchIndex(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	doc := &SearchDocument{
		ID:     "book-123",
		Type:   DocTypeBook,
		Name:   "The Hobbit",
		Author: "Tolkien, John",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexDocuments_Batch(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "book-1", Type: DocTypeBook, Name: "Book One"},
		{ID: "book-2", Type: DocTypeBook, Name: "Book Two"},
		{ID: "book-3", Type: DocTypeBook, Name: "Book Three"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexDocument(&SearchDocument{ID: "book-123", Type: DocTypeBook, Name: "Test Book"})
	require.NoError(t, err)

	err = index.DeleteDocument("book-123")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_ByAuthor(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "book-1", Type: DocTypeBook, Name: "The Hobbit", Author: "Tolkien, John"},
		{ID: "book-2", Type: DocTypeBook, Name: "The Lord of the Rings", Author: "Tolkien, John"},
		{ID: "book-3", Type: DocTypeBook, Name: "A Wizard of Earthsea", Author: "LeGuin, Ursula"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query: "Tolkien",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	assert.Len(t, result.Hits, 2)
	for _, hit := range result.Hits {
		assert.Equal(t, "Tolkien, John", hit.Author)
	}
}

func TestSearchIndex_Search_ByType(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "book-1", Type: DocTypeBook, Name: "Fantasy Classics"},
		{ID: "author-1", Type: DocTypeAuthor, Name: "Fantasy, Frank"},
		{ID: "genre-1", Type: DocTypeGenre, Name: "Fantasy"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:         "",
		Types:         []DocType{DocTypeBook},
		Limit:         10,
		IncludeFacets: true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "book-1", result.Hits[0].ID)
	assert.Equal(t, "/catalog/book/book-1", result.Hits[0].URL())

	result, err = index.Search(ctx, SearchParams{
		Query:         "fantasy",
		Types:         []DocType{DocTypeAuthor, DocTypeGenre},
		Limit:         10,
		IncludeFacets: true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	assert.Len(t, result.Types, 2)
}

func TestSearchIndex_Search_GenresAndISBN(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "book-1", Type: DocTypeBook, Name: "Dune", ISBN: "9780441013593", Genres: []string{"Science Fiction"}},
		{ID: "book-2", Type: DocTypeBook, Name: "Emma", ISBN: "9780141439587", Genres: []string{"Romance"}},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{Query: "fiction", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "book-1", result.Hits[0].ID)

	result, err = index.Search(ctx, SearchParams{Query: "9780141439587", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "book-2", result.Hits[0].ID)
	assert.Equal(t, "9780141439587", result.Hits[0].ISBN)
}

func TestSearchIndex_Search_Prefix(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexDocument(&SearchDocument{ID: "book-1", Type: DocTypeBook, Name: "The Hobbit"})
	require.NoError(t, err)

	result, err := index.Search(context.Background(), SearchParams{
		Query: "Hobb", // Prefix of Hobbit
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Search_SortByName(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	docs := []*SearchDocument{
		{ID: "genre-1", Type: DocTypeGenre, Name: "poetry"},
		{ID: "genre-2", Type: DocTypeGenre, Name: "fantasy"},
		{ID: "genre-3", Type: DocTypeGenre, Name: "horror"},
	}
	require.NoError(t, index.IndexDocuments(docs))

	result, err := index.Search(context.Background(), SearchParams{
		Limit:     10,
		SortBy:    "name",
		SortOrder: "asc",
	})
	require.NoError(t, err)
	require.Len(t, result.Hits, 3)
	assert.Equal(t, "genre-2", result.Hits[0].ID)
	assert.Equal(t, "genre-1", result.Hits[2].ID)
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index, cleanup := setupTestIndex(t)
	defer cleanup()

	err := index.IndexDocument(&SearchDocument{ID: "book-1", Type: DocTypeBook, Name: "Test"})
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Rebuild - should clear the index
	err = index.Rebuild()
	require.NoError(t, err)

	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Persistence(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "search-persist-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	index1, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)

	err = index1.IndexDocument(&SearchDocument{ID: "book-1", Type: DocTypeBook, Name: "Test Book"})
	require.NoError(t, err)

	err = index1.Close()
	require.NoError(t, err)

	// Reopen index and verify document is still there
	index2, err := NewSearchIndex(Options{DataPath: tmpDir})
	require.NoError(t, err)
	defer index2.Close()

	count, err := index2.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	result, err := index2.Search(context.Background(), SearchParams{Query: "Test", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}

func TestBookToSearchDocument(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	book := &domain.Book{
		Record:   domain.Record{ID: "book-123", CreatedAt: created, UpdatedAt: created},
		Title:    "Dune",
		Summary:  "A desert planet",
		ISBN:     "9780441013593",
		AuthorID: "author-1",
		GenreIDs: []string{"genre-1"},
	}

	doc := BookToSearchDocument(book, "Herbert, Frank", []string{"Science Fiction"})

	assert.Equal(t, "book-123", doc.ID)
	assert.Equal(t, DocTypeBook, doc.Type)
	assert.Equal(t, "Dune", doc.Name)
	assert.Equal(t, "Herbert, Frank", doc.Author)
	assert.Equal(t, []string{"Science Fiction"}, doc.Genres)
	assert.Equal(t, created.UnixMilli(), doc.CreatedAt)

	m := doc.ToMap()
	assert.Equal(t, "9780441013593", m["isbn"])
	assert.Equal(t, "book", m["type"])
}

func TestAuthorAndGenreToSearchDocument(t *testing.T) {
	author := &domain.Author{Record: domain.Record{ID: "author-1"}, FirstName: "Ursula", FamilyName: "LeGuin"}
	doc := AuthorToSearchDocument(author)
	assert.Equal(t, DocTypeAuthor, doc.Type)
	assert.Equal(t, "LeGuin, Ursula", doc.Name)

	m := doc.ToMap()
	_, hasAuthor := m["author"]
	assert.False(t, hasAuthor)

	genre := &domain.Genre{Record: domain.Record{ID: "genre-1"}, Name: "Poetry"}
	doc = GenreToSearchDocument(genre)
	assert.Equal(t, DocTypeGenre, doc.Type)
	assert.Equal(t, "Poetry", doc.Name)
}

func TestSearchIndex_LargeBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large batch test in short mode")
	}

	index, cleanup := setupTestIndex(t)
	defer cleanup()

	// Batch size is 500, so this spans several batches.
	docs := make([]*SearchDocument, 1000)
	for i := range docs {
		docs[i] = &SearchDocument{
			ID:   fmt.Sprintf("book-%04d", i),
			Type: DocTypeBook,
			Name: fmt.Sprintf("Book Number %d", i),
		}
	}

	start := time.Now()
	err := index.IndexDocuments(docs)
	require.NoError(t, err)
	t.Logf("Indexed 1000 documents in %v", time.Since(start))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), count)
}
