package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/agentraghav/local-library/internal/domain"
)

const bookEntity = "book"

func (s *Server) bookRoutes(r chi.Router) {
	r.Get("/create", s.handleBookCreateForm)
	r.Post("/create", s.handleBookCreate)
	r.Get("/{id}", s.handleBookDetail)
	r.Get("/{id}/update", s.handleBookUpdateForm)
	r.Post("/{id}/update", s.handleBookUpdate)
	r.Get("/{id}/delete", s.handleBookDeleteForm)
	r.Post("/{id}/delete", s.handleBookDelete)
}

// === HTML handlers ===

func (s *Server) handleBookList(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Books.List(r.Context(), sortFrom(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "book_list", "Book List", view)
}

func (s *Server) handleBookDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Books.Detail(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "book_detail", view.Book.Title, view)
}

func (s *Server) handleBookCreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Books.CreateForm(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "book_form", view.Title, view)
}

func (s *Server) handleBookCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Books.Create(r.Context(), form)
	respond(s, w, r, bookEntity, res, err, "book_form", "Create Book")
}

func (s *Server) handleBookUpdateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Books.UpdateForm(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "book_form", view.Title, view)
}

func (s *Server) handleBookUpdate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Books.Update(r.Context(), urlID(r), form)
	respond(s, w, r, bookEntity, res, err, "book_form", "Update Book")
}

func (s *Server) handleBookDeleteForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Books.DeleteForm(r.Context(), urlID(r))
	respond(s, w, r, bookEntity, res, err, "book_delete", "Delete Book")
}

func (s *Server) handleBookDelete(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Books.Delete(r.Context(), urlID(r))
	respond(s, w, r, bookEntity, res, err, "book_delete", "Delete Book")
}

// === JSON API ===

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns every book with its author, ordered by title unless another sort is requested",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book with its author, genres and copies",
		Tags:        []string{"Books"},
	}, s.handleGetBook)
}

// === DTOs ===

// BookRef is a compact book embedded in other responses.
type BookRef struct {
	ID    string `json:"id" doc:"Book ID"`
	Title string `json:"title" doc:"Title"`
	URL   string `json:"url" doc:"Catalog page"`
}

// BookResponse is the JSON form of a book in listings.
type BookResponse struct {
	ID      string     `json:"id" doc:"Book ID"`
	Title   string     `json:"title" doc:"Title"`
	Summary string     `json:"summary" doc:"Short description"`
	ISBN    string     `json:"isbn" doc:"ISBN"`
	Author  *AuthorRef `json:"author,omitempty" doc:"Author; absent when the reference no longer resolves"`
	URL     string     `json:"url" doc:"Catalog page"`
}

// BookDetailResponse is a book with its genres and copies.
type BookDetailResponse struct {
	BookResponse
	Genres []GenreResponse `json:"genres" doc:"Genres"`
	Copies []CopyResponse  `json:"copies" doc:"Physical copies"`
}

// BookListResponse contains every book.
type BookListResponse struct {
	Books []BookResponse `json:"books" doc:"Books"`
	Total int            `json:"total" doc:"Number of books"`
}

// BookListOutput wraps the book list for Huma.
type BookListOutput struct {
	Body BookListResponse
}

// BookOutput wraps a single book for Huma.
type BookOutput struct {
	Body BookDetailResponse
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListInput) (*BookListOutput, error) {
	view, err := s.services.Books.List(ctx, input.sort())
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}

	books := make([]BookResponse, 0, len(view.Books))
	for _, b := range view.Books {
		books = append(books, toBookResponse(b.Book, b.Author))
	}
	return &BookListOutput{Body: BookListResponse{Books: books, Total: len(books)}}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *IDInput) (*BookOutput, error) {
	view, err := s.services.Books.Detail(ctx, input.ID)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}

	copies := make([]CopyResponse, 0, len(view.Copies))
	for _, c := range view.Copies {
		copies = append(copies, toCopyResponse(c, view.Book))
	}
	return &BookOutput{Body: BookDetailResponse{
		BookResponse: toBookResponse(view.Book, view.Author),
		Genres:       toGenreResponses(view.Genres),
		Copies:       copies,
	}}, nil
}

func toBookResponse(b *domain.Book, a *domain.Author) BookResponse {
	return BookResponse{
		ID:      b.ID,
		Title:   b.Title,
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Author:  authorRef(a),
		URL:     b.URL(),
	}
}

// bookRef returns nil for a dangling book reference.
func bookRef(b *domain.Book) *BookRef {
	if b == nil {
		return nil
	}
	return &BookRef{ID: b.ID, Title: b.Title, URL: b.URL()}
}

func toBookRefs(books []*domain.Book) []BookRef {
	out := make([]BookRef, 0, len(books))
	for _, b := range books {
		out = append(out, *bookRef(b))
	}
	return out
}
