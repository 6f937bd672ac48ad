// Package store defines the persistence contract for the catalog and its
// badger-backed implementation. A SQLite implementation lives in store/sqlite.
package store

import (
	"context"

	"github.com/agentraghav/local-library/internal/domain"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_store.go -package=mocks

// Store defines every persistence operation the catalog needs.
//
// Get/Update/Delete return ErrNotFound when the record is absent.
// Create assigns the ID and timestamps. Update replaces every stored field
// and keeps the ID. *ByIDs lookups skip IDs that no longer exist.
type Store interface {
	Close() error

	// Authors
	CreateAuthor(ctx context.Context, a *domain.Author) error
	GetAuthor(ctx context.Context, id string) (*domain.Author, error)
	GetAuthorsByIDs(ctx context.Context, ids []string) ([]*domain.Author, error)
	UpdateAuthor(ctx context.Context, a *domain.Author) error
	DeleteAuthor(ctx context.Context, id string) error
	ListAuthors(ctx context.Context, sort Sort) ([]*domain.Author, error)
	CountAuthors(ctx context.Context) (int, error)

	// Genres
	CreateGenre(ctx context.Context, g *domain.Genre) error
	GetGenre(ctx context.Context, id string) (*domain.Genre, error)
	GetGenreByName(ctx context.Context, name string) (*domain.Genre, error)
	GetGenresByIDs(ctx context.Context, ids []string) ([]*domain.Genre, error)
	UpdateGenre(ctx context.Context, g *domain.Genre) error
	DeleteGenre(ctx context.Context, id string) error
	ListGenres(ctx context.Context, sort Sort) ([]*domain.Genre, error)
	CountGenres(ctx context.Context) (int, error)

	// Books
	CreateBook(ctx context.Context, b *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error)
	UpdateBook(ctx context.Context, b *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, sort Sort) ([]*domain.Book, error)
	ListBookTitles(ctx context.Context) ([]*domain.Book, error)
	ListBooksByAuthor(ctx context.Context, authorID string) ([]*domain.Book, error)
	ListBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error)
	CountBooks(ctx context.Context) (int, error)

	// Book copies
	CreateBookCopy(ctx context.Context, c *domain.BookCopy) error
	GetBookCopy(ctx context.Context, id string) (*domain.BookCopy, error)
	UpdateBookCopy(ctx context.Context, c *domain.BookCopy) error
	DeleteBookCopy(ctx context.Context, id string) error
	ListBookCopies(ctx context.Context, sort Sort) ([]*domain.BookCopy, error)
	ListBookCopiesByBook(ctx context.Context, bookID string) ([]*domain.BookCopy, error)
	CountBookCopies(ctx context.Context, filter CopyFilter) (int, error)
}

// CopyFilter is an exact-match conjunction over copy fields.
// Empty fields are ignored.
type CopyFilter struct {
	BookID string
	Status domain.CopyStatus
}
