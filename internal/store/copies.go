package store

import (
	"context"
	"fmt"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
)

// CreateBookCopy persists a new copy.
func (s *BadgerStore) CreateBookCopy(ctx context.Context, c *domain.BookCopy) error {
	if err := newRecord(&c.Record, id.PrefixBookCopy); err != nil {
		return err
	}
	if err := s.copies.Create(ctx, c.ID, c); err != nil {
		return fmt.Errorf("create book copy: %w", err)
	}
	return nil
}

// GetBookCopy retrieves a copy by ID.
func (s *BadgerStore) GetBookCopy(ctx context.Context, id string) (*domain.BookCopy, error) {
	return s.copies.Get(ctx, id)
}

// UpdateBookCopy replaces the stored copy.
func (s *BadgerStore) UpdateBookCopy(ctx context.Context, c *domain.BookCopy) error {
	existing, err := s.copies.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	carryRecord(&c.Record, existing.CreatedAt)
	return s.copies.Update(ctx, c.ID, c)
}

// DeleteBookCopy removes a copy. Copies have no dependents.
func (s *BadgerStore) DeleteBookCopy(ctx context.Context, id string) error {
	return s.copies.Delete(ctx, id)
}

// ListBookCopies returns every copy ordered by sort.
func (s *BadgerStore) ListBookCopies(ctx context.Context, sort Sort) ([]*domain.BookCopy, error) {
	sort, err := sort.Resolve(CopySortFields)
	if err != nil {
		return nil, err
	}

	copies, err := s.copies.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list book copies: %w", err)
	}

	sortBy(copies, sort, copySortKey, copyID)
	return copies, nil
}

// ListBookCopiesByBook returns the copies of bookID ordered by imprint.
func (s *BadgerStore) ListBookCopiesByBook(ctx context.Context, bookID string) ([]*domain.BookCopy, error) {
	copies, err := s.copies.ListByRef(ctx, indexCopyBook, bookID)
	if err != nil {
		return nil, fmt.Errorf("list copies by book: %w", err)
	}
	sortBy(copies, Sort{Field: "imprint"}, copySortKey, copyID)
	return copies, nil
}

// CountBookCopies counts copies matching every non-empty field of filter.
func (s *BadgerStore) CountBookCopies(ctx context.Context, filter CopyFilter) (int, error) {
	switch {
	case filter.BookID == "" && filter.Status == "":
		return s.copies.Count(ctx)
	case filter.BookID == "":
		ids, err := s.copies.RefIDs(ctx, indexCopyStatus, string(filter.Status))
		return len(ids), err
	}

	copies, err := s.copies.ListByRef(ctx, indexCopyBook, filter.BookID)
	if err != nil {
		return 0, err
	}
	if filter.Status == "" {
		return len(copies), nil
	}

	n := 0
	for _, c := range copies {
		if c.Status == filter.Status {
			n++
		}
	}
	return n, nil
}

func copySortKey(c *domain.BookCopy, field string) string {
	switch field {
	case "status":
		return string(c.Status)
	case "due_back":
		return domain.ISODate(c.DueBack)
	default:
		return c.Imprint
	}
}

func copyID(c *domain.BookCopy) string { return c.ID }
