package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/agentraghav/local-library/internal/domain"
)

// Copies are exposed as "bookinstance" in URLs.
const copyEntity = "bookinstance"

func (s *Server) copyRoutes(r chi.Router) {
	r.Get("/create", s.handleCopyCreateForm)
	r.Post("/create", s.handleCopyCreate)
	r.Get("/{id}", s.handleCopyDetail)
	r.Get("/{id}/update", s.handleCopyUpdateForm)
	r.Post("/{id}/update", s.handleCopyUpdate)
	r.Get("/{id}/delete", s.handleCopyDeleteForm)
	r.Post("/{id}/delete", s.handleCopyDelete)
}

// === HTML handlers ===

func (s *Server) handleCopyList(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Copies.List(r.Context(), sortFrom(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "bookinstance_list", "Book Instance List", view)
}

func (s *Server) handleCopyDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Copies.Detail(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "bookinstance_detail", "Book Instance Detail", view)
}

// handleCopyCreateForm pre-selects the book given as ?book=<id>.
func (s *Server) handleCopyCreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Copies.CreateForm(r.Context(), r.URL.Query().Get("book"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "bookinstance_form", view.Title, view)
}

func (s *Server) handleCopyCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Copies.Create(r.Context(), form)
	respond(s, w, r, copyEntity, res, err, "bookinstance_form", "Create BookInstance")
}

func (s *Server) handleCopyUpdateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Copies.UpdateForm(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "bookinstance_form", view.Title, view)
}

func (s *Server) handleCopyUpdate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Copies.Update(r.Context(), urlID(r), form)
	respond(s, w, r, copyEntity, res, err, "bookinstance_form", "Update BookInstance")
}

func (s *Server) handleCopyDeleteForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Copies.DeleteForm(r.Context(), urlID(r))
	respond(s, w, r, copyEntity, res, err, "bookinstance_delete", "Delete BookInstance")
}

func (s *Server) handleCopyDelete(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Copies.Delete(r.Context(), urlID(r))
	respond(s, w, r, copyEntity, res, err, "bookinstance_delete", "Delete BookInstance")
}

// === JSON API ===

func (s *Server) registerCopyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBookInstances",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookinstances",
		Summary:     "List book instances",
		Description: "Returns every physical copy with its book",
		Tags:        []string{"Book Instances"},
	}, s.handleListCopies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBookInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookinstances/{id}",
		Summary:     "Get book instance",
		Description: "Returns a physical copy with its book",
		Tags:        []string{"Book Instances"},
	}, s.handleGetCopy)
}

// === DTOs ===

// CopyResponse is the JSON form of a physical copy.
type CopyResponse struct {
	ID               string   `json:"id" doc:"Copy ID"`
	Imprint          string   `json:"imprint" doc:"Publisher and date information"`
	Status           string   `json:"status" enum:"Available,Maintenance,Loaned,Reserved" doc:"Circulation status"`
	DueBack          string   `json:"due_back,omitempty" doc:"Due-back date (YYYY-MM-DD)"`
	DueBackFormatted string   `json:"due_back_formatted" doc:"Due-back date for display"`
	Book             *BookRef `json:"book,omitempty" doc:"Book; absent when the reference no longer resolves"`
	URL              string   `json:"url" doc:"Catalog page"`
}

// CopyListResponse contains every copy.
type CopyListResponse struct {
	Copies []CopyResponse `json:"bookinstances" doc:"Physical copies"`
	Total  int            `json:"total" doc:"Number of copies"`
}

// CopyListOutput wraps the copy list for Huma.
type CopyListOutput struct {
	Body CopyListResponse
}

// CopyOutput wraps a single copy for Huma.
type CopyOutput struct {
	Body CopyResponse
}

// === Handlers ===

func (s *Server) handleListCopies(ctx context.Context, input *ListInput) (*CopyListOutput, error) {
	view, err := s.services.Copies.List(ctx, input.sort())
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}

	copies := make([]CopyResponse, 0, len(view.Copies))
	for _, c := range view.Copies {
		copies = append(copies, toCopyResponse(c.Copy, c.Book))
	}
	return &CopyListOutput{Body: CopyListResponse{Copies: copies, Total: len(copies)}}, nil
}

func (s *Server) handleGetCopy(ctx context.Context, input *IDInput) (*CopyOutput, error) {
	view, err := s.services.Copies.Detail(ctx, input.ID)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}
	return &CopyOutput{Body: toCopyResponse(view.Copy, view.Book)}, nil
}

func toCopyResponse(c *domain.BookCopy, b *domain.Book) CopyResponse {
	return CopyResponse{
		ID:               c.ID,
		Imprint:          c.Imprint,
		Status:           string(c.Status),
		DueBack:          c.DueBackISO(),
		DueBackFormatted: c.DueBackFormatted(),
		Book:             bookRef(b),
		URL:              c.URL(),
	}
}
