// Package search provides full-text search over the catalog using Bleve.
// Authors, books and genres share one index and are told apart by type.
package search

import (
	"github.com/agentraghav/local-library/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeAuthor DocType = "author"
	DocTypeBook   DocType = "book"
	DocTypeGenre  DocType = "genre"
)

// SearchDocument is the unified document structure for the Bleve index.
// Author and genre names are denormalized into book documents so a single
// query can match a book by who wrote it or how it is shelved.
type SearchDocument struct {
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// Book: title, Author: "family, first", Genre: name
	Name string `json:"name"`

	// Book-only fields.
	Summary string   `json:"summary,omitempty"`
	ISBN    string   `json:"isbn,omitempty"`
	Author  string   `json:"author,omitempty"`
	Genres  []string `json:"genres,omitempty"`

	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map whose keys match the index mapping.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"type":       string(d.Type),
		"name":       d.Name,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Summary != "" {
		m["summary"] = d.Summary
	}
	if d.ISBN != "" {
		m["isbn"] = d.ISBN
	}
	if d.Author != "" {
		m["author"] = d.Author
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}

	return m
}

// BookToSearchDocument converts a Book. The author and genre names are
// resolved by the caller; the search package does not read the store.
func BookToSearchDocument(book *domain.Book, author string, genres []string) *SearchDocument {
	return &SearchDocument{
		ID:        book.ID,
		Type:      DocTypeBook,
		Name:      book.Title,
		Summary:   book.Summary,
		ISBN:      book.ISBN,
		Author:    author,
		Genres:    genres,
		CreatedAt: book.CreatedAt.UnixMilli(),
		UpdatedAt: book.UpdatedAt.UnixMilli(),
	}
}

// AuthorToSearchDocument converts an Author.
func AuthorToSearchDocument(a *domain.Author) *SearchDocument {
	return &SearchDocument{
		ID:        a.ID,
		Type:      DocTypeAuthor,
		Name:      a.Name(),
		CreatedAt: a.CreatedAt.UnixMilli(),
		UpdatedAt: a.UpdatedAt.UnixMilli(),
	}
}

// GenreToSearchDocument converts a Genre.
func GenreToSearchDocument(g *domain.Genre) *SearchDocument {
	return &SearchDocument{
		ID:        g.ID,
		Type:      DocTypeGenre,
		Name:      g.Name,
		CreatedAt: g.CreatedAt.UnixMilli(),
		UpdatedAt: g.UpdatedAt.UnixMilli(),
	}
}
