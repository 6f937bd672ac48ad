package providers

import (
	"github.com/samber/do/v2"

	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/service"
)

// ProvideAuthorService provides the author workflow service.
func ProvideAuthorService(i do.Injector) (*service.AuthorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexer := do.MustInvoke[service.Indexer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthorService(storeHandle.Store, indexer, log.WithComponent("authors").Logger), nil
}

// ProvideGenreService provides the genre workflow service.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexer := do.MustInvoke[service.Indexer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGenreService(storeHandle.Store, indexer, log.WithComponent("genres").Logger), nil
}

// ProvideBookService provides the book workflow service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexer := do.MustInvoke[service.Indexer](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, indexer, log.WithComponent("books").Logger), nil
}

// ProvideBookCopyService provides the book instance workflow service.
func ProvideBookCopyService(i do.Injector) (*service.BookCopyService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookCopyService(storeHandle.Store, log.WithComponent("copies").Logger), nil
}

// ProvideCatalogService provides the home page and search service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(storeHandle.Store, searchService, log.WithComponent("catalog").Logger), nil
}
