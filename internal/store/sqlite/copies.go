package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
	"github.com/agentraghav/local-library/internal/store"
)

// copyColumns must match the scan order in scanCopy.
const copyColumns = `id, created_at, updated_at, book_id, imprint, status, due_back`

func scanCopy(sc scanner) (*domain.BookCopy, error) {
	var (
		c                    domain.BookCopy
		createdAt, updatedAt string
		status               string
		dueBack              sql.NullString
	)
	err := sc.Scan(&c.ID, &createdAt, &updatedAt, &c.BookID, &c.Imprint, &status, &dueBack)
	if err != nil {
		return nil, err
	}
	if err := timestamps(&c.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	c.Status = domain.CopyStatus(status)
	if c.DueBack, err = parseNullableDate(dueBack); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateBookCopy inserts a new copy.
func (s *Store) CreateBookCopy(ctx context.Context, c *domain.BookCopy) error {
	if err := newRecord(&c.Record, id.PrefixBookCopy); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO book_copies (`+copyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
		c.BookID,
		c.Imprint,
		string(c.Status),
		nullDate(c.DueBack),
	)
	if err != nil {
		return fmt.Errorf("create book copy: %w", err)
	}
	return nil
}

// GetBookCopy retrieves a copy by ID.
// Returns store.ErrNotFound if the copy does not exist.
func (s *Store) GetBookCopy(ctx context.Context, id string) (*domain.BookCopy, error) {
	c, err := scanCopy(s.db.QueryRowContext(ctx, `SELECT `+copyColumns+` FROM book_copies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateBookCopy replaces the stored copy.
func (s *Store) UpdateBookCopy(ctx context.Context, c *domain.BookCopy) error {
	c.Touch()

	res, err := s.db.ExecContext(ctx, `
		UPDATE book_copies SET updated_at = ?, book_id = ?, imprint = ?, status = ?, due_back = ?
		WHERE id = ?`,
		formatTime(c.UpdatedAt), c.BookID, c.Imprint, string(c.Status), nullDate(c.DueBack), c.ID)
	if err != nil {
		return fmt.Errorf("update book copy: %w", err)
	}
	return checkAffected(res)
}

// DeleteBookCopy removes a copy.
func (s *Store) DeleteBookCopy(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM book_copies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete book copy: %w", err)
	}
	return checkAffected(res)
}

// ListBookCopies returns every copy ordered by sort.
func (s *Store) ListBookCopies(ctx context.Context, sort store.Sort) ([]*domain.BookCopy, error) {
	sort, err := sort.Resolve(store.CopySortFields)
	if err != nil {
		return nil, err
	}
	return queryRows(ctx, s.db, scanCopy, `SELECT `+copyColumns+` FROM book_copies`+orderBy(sort))
}

// ListBookCopiesByBook returns the copies of bookID ordered by imprint.
func (s *Store) ListBookCopiesByBook(ctx context.Context, bookID string) ([]*domain.BookCopy, error) {
	return queryRows(ctx, s.db, scanCopy,
		`SELECT `+copyColumns+` FROM book_copies WHERE book_id = ?`+orderBy(store.Sort{Field: "imprint"}), bookID)
}

// CountBookCopies counts copies matching every non-empty field of filter.
func (s *Store) CountBookCopies(ctx context.Context, filter store.CopyFilter) (int, error) {
	var (
		where []string
		args  []any
	)
	if filter.BookID != "" {
		where = append(where, "book_id = ?")
		args = append(args, filter.BookID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT COUNT(*) FROM book_copies`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return s.count(ctx, query, args...)
}
