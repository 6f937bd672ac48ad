package store

import (
	"context"
	"fmt"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
)

// CreateGenre persists a new genre. Names are unique;
// a duplicate returns ErrAlreadyExists.
func (s *BadgerStore) CreateGenre(ctx context.Context, g *domain.Genre) error {
	if err := newRecord(&g.Record, id.PrefixGenre); err != nil {
		return err
	}
	if err := s.genres.Create(ctx, g.ID, g); err != nil {
		return fmt.Errorf("create genre: %w", err)
	}
	return nil
}

// GetGenre retrieves a genre by ID.
func (s *BadgerStore) GetGenre(ctx context.Context, id string) (*domain.Genre, error) {
	return s.genres.Get(ctx, id)
}

// GetGenreByName looks up a genre by its exact name.
func (s *BadgerStore) GetGenreByName(ctx context.Context, name string) (*domain.Genre, error) {
	return s.genres.GetByIndex(ctx, indexGenreName, name)
}

// GetGenresByIDs retrieves genres in the order of ids.
func (s *BadgerStore) GetGenresByIDs(ctx context.Context, ids []string) ([]*domain.Genre, error) {
	return s.genres.GetMany(ctx, ids)
}

// UpdateGenre replaces the stored genre.
func (s *BadgerStore) UpdateGenre(ctx context.Context, g *domain.Genre) error {
	existing, err := s.genres.Get(ctx, g.ID)
	if err != nil {
		return err
	}
	carryRecord(&g.Record, existing.CreatedAt)
	if err := s.genres.Update(ctx, g.ID, g); err != nil {
		return fmt.Errorf("update genre: %w", err)
	}
	return nil
}

// DeleteGenre removes a genre. Books that reference it keep the dangling ID.
func (s *BadgerStore) DeleteGenre(ctx context.Context, id string) error {
	return s.genres.Delete(ctx, id)
}

// ListGenres returns every genre ordered by sort.
func (s *BadgerStore) ListGenres(ctx context.Context, sort Sort) ([]*domain.Genre, error) {
	sort, err := sort.Resolve(GenreSortFields)
	if err != nil {
		return nil, err
	}

	genres, err := s.genres.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	sortBy(genres, sort,
		func(g *domain.Genre, _ string) string { return g.Name },
		func(g *domain.Genre) string { return g.ID })
	return genres, nil
}

// CountGenres returns the number of genres.
func (s *BadgerStore) CountGenres(ctx context.Context) (int, error) {
	return s.genres.Count(ctx)
}
