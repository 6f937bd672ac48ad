package api

import (
	"github.com/agentraghav/local-library/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Authors *service.AuthorService
	Genres  *service.GenreService
	Books   *service.BookService
	Copies  *service.BookCopyService
	Catalog *service.CatalogService
	Search  *service.SearchService // nil when search is disabled
}
