// Package di provides dependency injection configuration for the catalog server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/agentraghav/local-library/internal/api"
	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/di/providers"
	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/metrics"
	"github.com/agentraghav/local-library/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideIndexer)

	// Business services
	do.Provide(injector, providers.ProvideAuthorService)
	do.Provide(injector, providers.ProvideGenreService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideBookCopyService)
	do.Provide(injector, providers.ProvideCatalogService)

	// Web
	do.Provide(injector, providers.ProvideRenderer)
	do.Provide(injector, providers.ProvideTemplateWatcher)

	// Server
	do.Provide(injector, providers.ProvideAPIServer)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Metrics](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[service.Indexer](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthorService](injector)
	_ = do.MustInvoke[*service.GenreService](injector)
	_ = do.MustInvoke[*service.BookService](injector)
	_ = do.MustInvoke[*service.BookCopyService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	// Web
	if _, err := do.Invoke[*api.Renderer](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*providers.TemplateWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.APIServerHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}
