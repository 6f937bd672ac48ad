package search

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

const (
	indexDirName    = "search.bleve"
	versionFileName = "search.version"

	// schemaVersion must change with buildIndexMapping so that stale
	// indexes are dropped on open.
	schemaVersion = "catalog-1"

	batchSize = 500
)

// SearchIndex is a Bleve full-text index over authors, genres and books.
// Rebuild takes the write lock; every other method shares the read lock.
type SearchIndex struct {
	mu      sync.RWMutex
	index   bleve.Index
	dir     string
	version string
	log     *slog.Logger
}

// Options configures the search index.
type Options struct {
	DataPath string
	Logger   *slog.Logger
}

// NewSearchIndex opens the index under opts.DataPath, creating it when it is
// missing, unreadable or was written with a different schema.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &SearchIndex{
		dir:     filepath.Join(opts.DataPath, indexDirName),
		version: filepath.Join(opts.DataPath, versionFileName),
		log:     log.With("component", "search"),
	}

	idx, err := s.openOrCreate()
	if err != nil {
		return nil, err
	}
	s.index = idx
	return s, nil
}

func (s *SearchIndex) openOrCreate() (bleve.Index, error) {
	if _, err := os.Stat(s.dir); err != nil {
		return s.create()
	}

	if v := s.storedVersion(); v != schemaVersion {
		s.log.Info("search schema changed, recreating index", "stored", v, "current", schemaVersion)
		return s.create()
	}

	idx, err := bleve.Open(s.dir)
	if err != nil {
		s.log.Warn("search index unreadable, recreating", "path", s.dir, "error", err)
		return s.create()
	}
	s.log.Info("opened search index", "path", s.dir)
	return idx, nil
}

func (s *SearchIndex) storedVersion() string {
	b, err := os.ReadFile(s.version)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// create wipes whatever is on disk and writes a fresh index plus its version file.
func (s *SearchIndex) create() (bleve.Index, error) {
	if err := os.RemoveAll(s.dir); err != nil {
		return nil, fmt.Errorf("remove search index: %w", err)
	}

	idx, err := bleve.New(s.dir, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	if err := os.WriteFile(s.version, []byte(schemaVersion), 0o644); err != nil {
		s.log.Warn("could not record search schema version", "error", err)
	}
	s.log.Info("created search index", "path", s.dir, "schema", schemaVersion)
	return idx, nil
}

func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexDocument adds or replaces a single document.
func (s *SearchIndex) IndexDocument(doc *SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexDocuments writes docs in batches of batchSize.
func (s *SearchIndex) IndexDocuments(docs []*SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for chunk := range slices.Chunk(docs, batchSize) {
		b := s.index.NewBatch()
		for _, doc := range chunk {
			if err := b.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(b); err != nil {
			return fmt.Errorf("commit %d documents: %w", len(chunk), err)
		}
	}
	return nil
}

// DeleteDocument removes id from the index. Unknown ids are not an error.
func (s *SearchIndex) DeleteDocument(id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}

func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild replaces the index with an empty one. Searches and writes block
// until it returns.
func (s *SearchIndex) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	closeErr := s.index.Close()

	idx, err := s.create()
	if err != nil {
		return errors.Join(closeErr, err)
	}
	s.index = idx
	if closeErr != nil {
		s.log.Warn("closing previous search index", "error", closeErr)
	}
	return nil
}
