package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/id"
)

// Entity key prefixes.
const (
	authorPrefix = "author:"
	genrePrefix  = "genre:"
	bookPrefix   = "book:"
	copyPrefix   = "copy:"
)

// Index names.
const (
	indexGenreName  = "name"
	indexBookAuthor = "author"
	indexBookGenre  = "genre"
	indexCopyBook   = "book"
	indexCopyStatus = "status"
)

// BadgerStore implements Store on top of an embedded Badger database.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger

	authors *Entity[domain.Author]
	genres  *Entity[domain.Genre]
	books   *Entity[domain.Book]
	copies  *Entity[domain.BookCopy]
}

var _ Store = (*BadgerStore)(nil)

// NewBadger opens (or creates) a Badger database at path.
func NewBadger(path string, logger *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &BadgerStore{
		db:     db,
		logger: logger,
	}
	s.initEntities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

func (s *BadgerStore) initEntities() {
	s.authors = NewEntity[domain.Author](s.db, authorPrefix)

	s.genres = NewEntity[domain.Genre](s.db, genrePrefix).
		WithUniqueIndex(indexGenreName, func(g *domain.Genre) []string {
			return []string{g.Name}
		})

	s.books = NewEntity[domain.Book](s.db, bookPrefix).
		WithRefIndex(indexBookAuthor, func(b *domain.Book) []string {
			if b.AuthorID == "" {
				return nil
			}
			return []string{b.AuthorID}
		}).
		WithRefIndex(indexBookGenre, func(b *domain.Book) []string {
			return b.GenreIDs
		})

	s.copies = NewEntity[domain.BookCopy](s.db, copyPrefix).
		WithRefIndex(indexCopyBook, func(c *domain.BookCopy) []string {
			if c.BookID == "" {
				return nil
			}
			return []string{c.BookID}
		}).
		WithRefIndex(indexCopyStatus, func(c *domain.BookCopy) []string {
			return []string{string(c.Status)}
		})
}

// Close gracefully closes the database connection.
func (s *BadgerStore) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// newRecord assigns a fresh ID and creation timestamps.
func newRecord(r *domain.Record, prefix string) error {
	v, err := id.Generate(prefix)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	r.ID = v
	r.InitTimestamps()
	return nil
}

// carryRecord keeps the stored creation time and bumps UpdatedAt.
func carryRecord(r *domain.Record, createdAt time.Time) {
	r.CreatedAt = createdAt
	r.Touch()
}
