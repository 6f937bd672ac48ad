package providers

import (
	"context"
	"sync"

	"github.com/samber/do/v2"
	"golang.org/x/sync/errgroup"

	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/search"
	"github.com/agentraghav/local-library/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// Index is nil when search is disabled.
type SearchIndexHandle struct {
	Index *search.SearchIndex

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	err    error
}

// Shutdown implements do.Shutdownable. A running background reindex is
// cancelled and awaited before the index is closed.
func (h *SearchIndexHandle) Shutdown() error {
	h.once.Do(func() {
		h.mu.Lock()
		if h.cancel != nil {
			h.cancel()
		}
		h.mu.Unlock()
		h.wg.Wait()

		if h.Index != nil {
			h.err = h.Index.Close()
		}
	})
	return h.err
}

// goBackground runs fn on its own goroutine with a context that Shutdown cancels.
func (h *SearchIndexHandle) goBackground(fn func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	h.cancel = cancel

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer cancel()
		fn(ctx)
	}()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Storage.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, err := index.DocumentCount()
	if err != nil {
		log.WithError(err).Warn("Could not count search documents")
	}
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service, or nil when search is disabled.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if indexHandle.Index == nil {
		return nil, nil
	}
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.Index, storeHandle.Store, log.Logger), nil
}

// ProvideIndexer provides the indexer the catalog services write through.
func ProvideIndexer(i do.Injector) (service.Indexer, error) {
	svc := do.MustInvoke[*service.SearchService](i)
	if svc == nil {
		return service.NoopIndexer{}, nil
	}
	return svc, nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index from the store in the background.
// Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	searchService := do.MustInvoke[*service.SearchService](i)
	if searchService == nil {
		return
	}
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i).WithComponent("search")

	docCount, err := searchService.DocumentCount()
	if err != nil {
		log.WithError(err).Warn("Could not count search documents, skipping initial reindex")
		return
	}
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	var authors, genres, books int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		authors, err = storeHandle.CountAuthors(gctx)
		return err
	})
	g.Go(func() (err error) {
		genres, err = storeHandle.CountGenres(gctx)
		return err
	})
	g.Go(func() (err error) {
		books, err = storeHandle.CountBooks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Warn("Could not count catalog records, skipping initial reindex")
		return
	}
	if authors+genres+books == 0 {
		return
	}

	log.Info("Search index is empty but catalog has records, triggering initial reindex",
		"authors", authors,
		"genres", genres,
		"books", books,
	)

	indexHandle.goBackground(func(ctx context.Context) {
		if err := searchService.ReindexAll(ctx); err != nil {
			if ctx.Err() != nil {
				log.Info("Initial search reindex cancelled")
				return
			}
			log.WithError(err).Error("Initial search reindex failed")
			return
		}
		count, err := searchService.DocumentCount()
		if err != nil {
			log.WithError(err).Warn("Could not count search documents")
		}
		log.Info("Initial search reindex completed", "documents", count)
	})
}
