package store

import (
	"context"
	"fmt"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
)

// CreateAuthor assigns an ID and persists a new author.
func (s *BadgerStore) CreateAuthor(ctx context.Context, a *domain.Author) error {
	if err := newRecord(&a.Record, id.PrefixAuthor); err != nil {
		return err
	}
	if err := s.authors.Create(ctx, a.ID, a); err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

// GetAuthor retrieves an author by ID.
func (s *BadgerStore) GetAuthor(ctx context.Context, id string) (*domain.Author, error) {
	return s.authors.Get(ctx, id)
}

// GetAuthorsByIDs retrieves authors in the order of ids.
func (s *BadgerStore) GetAuthorsByIDs(ctx context.Context, ids []string) ([]*domain.Author, error) {
	return s.authors.GetMany(ctx, ids)
}

// UpdateAuthor replaces every stored field of an existing author.
func (s *BadgerStore) UpdateAuthor(ctx context.Context, a *domain.Author) error {
	existing, err := s.authors.Get(ctx, a.ID)
	if err != nil {
		return err
	}
	carryRecord(&a.Record, existing.CreatedAt)
	return s.authors.Update(ctx, a.ID, a)
}

// DeleteAuthor removes an author. Callers check for dependent books first.
func (s *BadgerStore) DeleteAuthor(ctx context.Context, id string) error {
	return s.authors.Delete(ctx, id)
}

// ListAuthors returns every author ordered by sort.
func (s *BadgerStore) ListAuthors(ctx context.Context, sort Sort) ([]*domain.Author, error) {
	sort, err := sort.Resolve(AuthorSortFields)
	if err != nil {
		return nil, err
	}

	authors, err := s.authors.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	sortBy(authors, sort, authorSortKey, func(a *domain.Author) string { return a.ID })
	return authors, nil
}

// CountAuthors returns the number of authors.
func (s *BadgerStore) CountAuthors(ctx context.Context) (int, error) {
	return s.authors.Count(ctx)
}

func authorSortKey(a *domain.Author, field string) string {
	switch field {
	case "first_name":
		return a.FirstName
	case "date_of_birth":
		return domain.ISODate(a.DateOfBirth)
	case "date_of_death":
		return domain.ISODate(a.DateOfDeath)
	default:
		return a.FamilyName
	}
}
