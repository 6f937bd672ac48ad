package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/agentraghav/local-library/internal/domain"
)

const authorEntity = "author"

func (s *Server) authorRoutes(r chi.Router) {
	r.Get("/create", s.handleAuthorCreateForm)
	r.Post("/create", s.handleAuthorCreate)
	r.Get("/{id}", s.handleAuthorDetail)
	r.Get("/{id}/update", s.handleAuthorUpdateForm)
	r.Post("/{id}/update", s.handleAuthorUpdate)
	r.Get("/{id}/delete", s.handleAuthorDeleteForm)
	r.Post("/{id}/delete", s.handleAuthorDelete)
}

// === HTML handlers ===

func (s *Server) handleAuthorList(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Authors.List(r.Context(), sortFrom(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "author_list", "Author List", view)
}

func (s *Server) handleAuthorDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Authors.Detail(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "author_detail", "Author Detail", view)
}

func (s *Server) handleAuthorCreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Authors.CreateForm(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "author_form", view.Title, view)
}

func (s *Server) handleAuthorCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Authors.Create(r.Context(), form)
	respond(s, w, r, authorEntity, res, err, "author_form", "Create Author")
}

func (s *Server) handleAuthorUpdateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Authors.UpdateForm(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "author_form", view.Title, view)
}

func (s *Server) handleAuthorUpdate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Authors.Update(r.Context(), urlID(r), form)
	respond(s, w, r, authorEntity, res, err, "author_form", "Update Author")
}

func (s *Server) handleAuthorDeleteForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Authors.DeleteForm(r.Context(), urlID(r))
	respond(s, w, r, authorEntity, res, err, "author_delete", "Delete Author")
}

func (s *Server) handleAuthorDelete(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Authors.Delete(r.Context(), urlID(r))
	respond(s, w, r, authorEntity, res, err, "author_delete", "Delete Author")
}

// === JSON API ===

func (s *Server) registerAuthorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listAuthors",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors",
		Summary:     "List authors",
		Description: "Returns every author, ordered by family name unless another sort is requested",
		Tags:        []string{"Authors"},
	}, s.handleListAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAuthor",
		Method:      http.MethodGet,
		Path:        "/api/v1/authors/{id}",
		Summary:     "Get author",
		Description: "Returns an author with their books",
		Tags:        []string{"Authors"},
	}, s.handleGetAuthor)
}

// === DTOs ===

// ListInput is the sort selection shared by the list endpoints.
type ListInput struct {
	Sort  string `query:"sort" doc:"Field to sort by; defaults to the collection's natural key"`
	Order string `query:"order" enum:"asc,desc" default:"asc" doc:"Sort direction"`
}

// IDInput addresses a single record.
type IDInput struct {
	ID string `path:"id" doc:"Record ID"`
}

// AuthorResponse is the JSON form of an author.
type AuthorResponse struct {
	ID          string `json:"id" doc:"Author ID"`
	FirstName   string `json:"first_name" doc:"First name"`
	FamilyName  string `json:"family_name" doc:"Family name"`
	Name        string `json:"name" doc:"Display name, family name first"`
	DateOfBirth string `json:"date_of_birth,omitempty" doc:"Date of birth (YYYY-MM-DD)"`
	DateOfDeath string `json:"date_of_death,omitempty" doc:"Date of death (YYYY-MM-DD)"`
	Lifespan    string `json:"lifespan" doc:"Formatted birth and death dates"`
	URL         string `json:"url" doc:"Catalog page"`
}

// AuthorDetailResponse is an author with their books.
type AuthorDetailResponse struct {
	AuthorResponse
	Books []BookRef `json:"books" doc:"Books by this author"`
}

// AuthorListResponse contains every author.
type AuthorListResponse struct {
	Authors []AuthorResponse `json:"authors" doc:"Authors"`
	Total   int              `json:"total" doc:"Number of authors"`
}

// AuthorListOutput wraps the author list for Huma.
type AuthorListOutput struct {
	Body AuthorListResponse
}

// AuthorOutput wraps a single author for Huma.
type AuthorOutput struct {
	Body AuthorDetailResponse
}

// === Handlers ===

func (s *Server) handleListAuthors(ctx context.Context, input *ListInput) (*AuthorListOutput, error) {
	view, err := s.services.Authors.List(ctx, input.sort())
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}

	out := &AuthorListOutput{}
	out.Body.Authors = make([]AuthorResponse, 0, len(view.Authors))
	for _, a := range view.Authors {
		out.Body.Authors = append(out.Body.Authors, toAuthorResponse(a))
	}
	out.Body.Total = len(out.Body.Authors)
	return out, nil
}

func (s *Server) handleGetAuthor(ctx context.Context, input *IDInput) (*AuthorOutput, error) {
	view, err := s.services.Authors.Detail(ctx, input.ID)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}
	return &AuthorOutput{Body: AuthorDetailResponse{
		AuthorResponse: toAuthorResponse(view.Author),
		Books:          toBookRefs(view.Books),
	}}, nil
}

func toAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		Name:        a.Name(),
		DateOfBirth: a.DateOfBirthISO(),
		DateOfDeath: a.DateOfDeathISO(),
		Lifespan:    a.Lifespan(),
		URL:         a.URL(),
	}
}

// authorRef returns nil for a dangling author reference.
func authorRef(a *domain.Author) *AuthorRef {
	if a == nil {
		return nil
	}
	return &AuthorRef{ID: a.ID, Name: a.Name(), URL: a.URL()}
}

// AuthorRef is a compact author embedded in other responses.
type AuthorRef struct {
	ID   string `json:"id" doc:"Author ID"`
	Name string `json:"name" doc:"Display name"`
	URL  string `json:"url" doc:"Catalog page"`
}
