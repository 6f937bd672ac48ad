package store

import (
	"context"
	"fmt"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
)

// CreateBook persists a new book.
func (s *BadgerStore) CreateBook(ctx context.Context, b *domain.Book) error {
	if err := newRecord(&b.Record, id.PrefixBook); err != nil {
		return err
	}
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}
	if err := s.books.Create(ctx, b.ID, b); err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
func (s *BadgerStore) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.Get(ctx, id)
}

// GetBooksByIDs retrieves books in the order of ids.
func (s *BadgerStore) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	return s.books.GetMany(ctx, ids)
}

// UpdateBook replaces the stored book and re-points its author and genre indexes.
func (s *BadgerStore) UpdateBook(ctx context.Context, b *domain.Book) error {
	existing, err := s.books.Get(ctx, b.ID)
	if err != nil {
		return err
	}
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}
	carryRecord(&b.Record, existing.CreatedAt)
	return s.books.Update(ctx, b.ID, b)
}

// DeleteBook removes a book. Callers check for dependent copies first.
func (s *BadgerStore) DeleteBook(ctx context.Context, id string) error {
	return s.books.Delete(ctx, id)
}

// ListBooks returns every book ordered by sort.
func (s *BadgerStore) ListBooks(ctx context.Context, sort Sort) ([]*domain.Book, error) {
	sort, err := sort.Resolve(BookSortFields)
	if err != nil {
		return nil, err
	}

	books, err := s.books.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	sortBy(books, sort, bookSortKey, bookID)
	return books, nil
}

// ListBookTitles returns every book projected to ID and title,
// ordered by title.
func (s *BadgerStore) ListBookTitles(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.ListBooks(ctx, Sort{})
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Book, len(books))
	for i, b := range books {
		out[i] = &domain.Book{Record: domain.Record{ID: b.ID}, Title: b.Title}
	}
	return out, nil
}

// ListBooksByAuthor returns the author's books ordered by title.
func (s *BadgerStore) ListBooksByAuthor(ctx context.Context, authorID string) ([]*domain.Book, error) {
	books, err := s.books.ListByRef(ctx, indexBookAuthor, authorID)
	if err != nil {
		return nil, fmt.Errorf("list books by author: %w", err)
	}
	sortBy(books, Sort{Field: "title"}, bookSortKey, bookID)
	return books, nil
}

// ListBooksByGenre returns the books tagged with genreID ordered by title.
func (s *BadgerStore) ListBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error) {
	books, err := s.books.ListByRef(ctx, indexBookGenre, genreID)
	if err != nil {
		return nil, fmt.Errorf("list books by genre: %w", err)
	}
	sortBy(books, Sort{Field: "title"}, bookSortKey, bookID)
	return books, nil
}

// CountBooks returns the number of books.
func (s *BadgerStore) CountBooks(ctx context.Context) (int, error) {
	return s.books.Count(ctx)
}

func bookSortKey(b *domain.Book, field string) string {
	if field == "isbn" {
		return b.ISBN
	}
	return b.Title
}

func bookID(b *domain.Book) string { return b.ID }
