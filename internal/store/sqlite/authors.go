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

// authorColumns must match the scan order in scanAuthor.
const authorColumns = `id, created_at, updated_at, first_name, family_name, date_of_birth, date_of_death`

func scanAuthor(sc scanner) (*domain.Author, error) {
	var (
		a                    domain.Author
		createdAt, updatedAt string
		born, died           sql.NullString
	)

	err := sc.Scan(&a.ID, &createdAt, &updatedAt, &a.FirstName, &a.FamilyName, &born, &died)
	if err != nil {
		return nil, err
	}
	if err := timestamps(&a.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	if a.DateOfBirth, err = parseNullableDate(born); err != nil {
		return nil, err
	}
	if a.DateOfDeath, err = parseNullableDate(died); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAuthor inserts a new author.
func (s *Store) CreateAuthor(ctx context.Context, a *domain.Author) error {
	if err := newRecord(&a.Record, id.PrefixAuthor); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO authors (`+authorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
		a.FirstName,
		a.FamilyName,
		nullDate(a.DateOfBirth),
		nullDate(a.DateOfDeath),
	)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

// GetAuthor retrieves an author by ID.
// Returns store.ErrNotFound if the author does not exist.
func (s *Store) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = ?`, id)

	a, err := scanAuthor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetAuthorsByIDs retrieves authors in the order of ids, skipping missing ones.
func (s *Store) GetAuthorsByIDs(ctx context.Context, ids []string) ([]*domain.Author, error) {
	if len(ids) == 0 {
		return []*domain.Author{}, nil
	}

	authors, err := queryRows(ctx, s.db, scanAuthor,
		`SELECT `+authorColumns+` FROM authors WHERE id IN (`+placeholders(len(ids))+`)`, anyArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return reorder(ids, authors, func(a *domain.Author) string { return a.ID }), nil
}

// UpdateAuthor replaces every stored field of an existing author.
func (s *Store) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	a.Touch()

	res, err := s.db.ExecContext(ctx, `
		UPDATE authors SET updated_at = ?, first_name = ?, family_name = ?,
			date_of_birth = ?, date_of_death = ?
		WHERE id = ?`,
		formatTime(a.UpdatedAt),
		a.FirstName,
		a.FamilyName,
		nullDate(a.DateOfBirth),
		nullDate(a.DateOfDeath),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return checkAffected(res)
}

// DeleteAuthor removes an author.
func (s *Store) DeleteAuthor(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return checkAffected(res)
}

// ListAuthors returns every author ordered by sort.
func (s *Store) ListAuthors(ctx context.Context, sort store.Sort) ([]*domain.Author, error) {
	sort, err := sort.Resolve(store.AuthorSortFields)
	if err != nil {
		return nil, err
	}
	return queryRows(ctx, s.db, scanAuthor, `SELECT `+authorColumns+` FROM authors`+orderBy(sort))
}

// CountAuthors returns the number of authors.
func (s *Store) CountAuthors(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM authors`)
}
