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

// genreColumns must match the scan order in scanGenre.
const genreColumns = `id, created_at, updated_at, name`

func scanGenre(sc scanner) (*domain.Genre, error) {
	var (
		g                    domain.Genre
		createdAt, updatedAt string
	)
	if err := sc.Scan(&g.ID, &createdAt, &updatedAt, &g.Name); err != nil {
		return nil, err
	}
	if err := timestamps(&g.Record, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGenre inserts a new genre.
// Returns store.ErrAlreadyExists if the name is taken.
func (s *Store) CreateGenre(ctx context.Context, g *domain.Genre) error {
	if err := newRecord(&g.Record, id.PrefixGenre); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO genres (`+genreColumns+`) VALUES (?, ?, ?, ?)`,
		g.ID, formatTime(g.CreatedAt), formatTime(g.UpdatedAt), g.Name)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("genre " + g.Name + " already exists")
	}
	if err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

// GetGenre retrieves a genre by ID.
// Returns store.ErrNotFound if the genre does not exist.
func (s *Store) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.getGenre(ctx, `SELECT `+genreColumns+` FROM genres WHERE id = ?`, id)
}

// GetGenreByName looks up a genre by its exact name.
func (s *Store) GetGenreByName(ctx context.Context, name string) (*domain.Genre, error) {
	return s.getGenre(ctx, `SELECT `+genreColumns+` FROM genres WHERE name = ?`, name)
}

func (s *Store) getGenre(ctx context.Context, query string, arg string) (*domain.Genre, error) {
	g, err := scanGenre(s.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// GetGenresByIDs retrieves genres in the order of ids, skipping missing ones.
func (s *Store) GetGenresByIDs(ctx context.Context, ids []string) ([]*domain.Genre, error) {
	if len(ids) == 0 {
		return []*domain.Genre{}, nil
	}

	genres, err := queryRows(ctx, s.db, scanGenre,
		`SELECT `+genreColumns+` FROM genres WHERE id IN (`+placeholders(len(ids))+`)`, anyArgs(ids)...)
	if err != nil {
		return nil, err
	}
	return reorder(ids, genres, func(g *domain.Genre) string { return g.ID }), nil
}

// UpdateGenre renames a genre.
// Returns store.ErrAlreadyExists if another genre holds the name.
func (s *Store) UpdateGenre(ctx context.Context, g *domain.Genre) error {
	g.Touch()

	res, err := s.db.ExecContext(ctx,
		`UPDATE genres SET updated_at = ?, name = ? WHERE id = ?`,
		formatTime(g.UpdatedAt), g.Name, g.ID)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists.WithMessage("genre " + g.Name + " already exists")
	}
	if err != nil {
		return fmt.Errorf("update genre: %w", err)
	}
	return checkAffected(res)
}

// DeleteGenre removes a genre. Books keep the dangling reference.
func (s *Store) DeleteGenre(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	return checkAffected(res)
}

// ListGenres returns every genre ordered by sort.
func (s *Store) ListGenres(ctx context.Context, sort store.Sort) ([]*domain.Genre, error) {
	sort, err := sort.Resolve(store.GenreSortFields)
	if err != nil {
		return nil, err
	}
	return queryRows(ctx, s.db, scanGenre, `SELECT `+genreColumns+` FROM genres`+orderBy(sort))
}

// CountGenres returns the number of genres.
func (s *Store) CountGenres(ctx context.Context) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM genres`)
}
