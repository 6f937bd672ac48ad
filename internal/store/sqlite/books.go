package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
	"github.com/agentraghav/local-library/internal/store"
)

// bookColumns must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, summary, isbn, author_id`

func scanBook(sc scanner) (*domain.Book, error) {
	var (
		b                    domain.Book
		createdAt, updatedAt string
	)
	err := sc.Scan(&b.ID, &createdAt, &updatedAt, &b.Title, &b.Summary, &b.ISBN, &b.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := timestamps(&b.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	b.GenreIDs = []string{}
	return &b, nil
}

// CreateBook inserts a book and its genre links in one transaction.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	if err := newRecord(&b.Record, id.PrefixBook); err != nil {
		return err
	}
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
		b.Title,
		b.Summary,
		b.ISBN,
		b.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	if err := setBookGenres(ctx, tx, b.ID, b.GenreIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func setBookGenres(ctx context.Context, tx *sql.Tx, bookID string, genreIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("clear book genres: %w", err)
	}
	for i, g := range genreIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO book_genres (book_id, genre_id, position) VALUES (?, ?, ?)`,
			bookID, g, i)
		if err != nil {
			return fmt.Errorf("link book genre: %w", err)
		}
	}
	return nil
}

// loadGenreIDs fills GenreIDs for books in link order.
func (s *Store) loadGenreIDs(ctx context.Context, books []*domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Book, len(books))
	ids := make([]string, len(books))
	for i, b := range books {
		byID[b.ID] = b
		ids[i] = b.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, genre_id FROM book_genres WHERE book_id IN (`+placeholders(len(ids))+`)
		ORDER BY book_id, position`, anyArgs(ids)...)
	if err != nil {
		return fmt.Errorf("load book genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, genreID string
		if err := rows.Scan(&bookID, &genreID); err != nil {
			return err
		}
		if b, ok := byID[bookID]; ok {
			b.GenreIDs = append(b.GenreIDs, genreID)
		}
	}
	return rows.Err()
}

func (s *Store) queryBooks(ctx context.Context, query string, args ...any) ([]*domain.Book, error) {
	books, err := queryRows(ctx, s.db, scanBook, query, args...)
	if err != nil {
		return nil, err
	}
	if err := s.loadGenreIDs(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadGenreIDs(ctx, []*domain.Book{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBooksByIDs retrieves books in the order of ids, skipping missing ones.
func (s *Store) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return []*domain.Book{}, nil
	}

	books, err := s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id IN (`+placeholders(len(ids))+`)`, anyArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return reorder(ids, books, func(b *domain.Book) string { return b.ID }), nil
}

// UpdateBook replaces the stored book and its genre links.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	b.Touch()
	if b.GenreIDs == nil {
		b.GenreIDs = []string{}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE books SET updated_at = ?, title = ?, summary = ?, isbn = ?, author_id = ?
		WHERE id = ?`,
		formatTime(b.UpdatedAt), b.Title, b.Summary, b.ISBN, b.AuthorID, b.ID)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return err
	}

	if err := setBookGenres(ctx, tx, b.ID, b.GenreIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteBook removes a book. Its genre links cascade.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return checkAffected(res)
}

// ListBooks returns every book ordered by sort.
func (s *Store) ListBooks(ctx context.Context, sort store.Sort) ([]*domain.Book, error) {
	sort, err := sort.Resolve(store.BookSortFields)
	if err != nil {
		return nil, err
	}
	return s.queryBooks(ctx, `SELECT `+bookColumns+` FROM books`+orderBy(sort))
}

// ListBookTitles returns every book projected to ID and title, ordered by title.
func (s *Store) ListBookTitles(ctx context.Context) ([]*domain.Book, error) {
	return queryRows(ctx, s.db, func(sc scanner) (*domain.Book, error) {
		var b domain.Book
		if err := sc.Scan(&b.ID, &b.Title); err != nil {
			return nil, err
		}
		return &b, nil
	}, `SELECT id, title FROM books`+orderBy(store.Sort{Field: "title"}))
}

// ListBooksByAuthor returns the author's books ordered by title.
func (s *Store) ListBooksByAuthor(ctx context.Context, authorID string) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books WHERE author_id = ?`+orderBy(store.Sort{Field: "title"}), authorID)
}

// ListBooksByGenre returns the books linked to genreID ordered by title.
func (s *Store) ListBooksByGenre(ctx context.Context, genreID string) ([]*domain.Book, error) {
	return s.queryBooks(ctx,
		`SELECT `+bookColumns+` FROM books
		WHERE id IN (SELECT book_id FROM book_genres WHERE genre_id = ?)`+orderBy(store.Sort{Field: "title"}), genreID)
}

// CountBooks returns the number of books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM books`)
}
