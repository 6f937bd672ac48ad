package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/agentraghav/local-library/internal/domain"
)

const genreEntity = "genre"

func (s *Server) genreRoutes(r chi.Router) {
	r.Get("/create", s.handleGenreCreateForm)
	r.Post("/create", s.handleGenreCreate)
	r.Get("/{id}", s.handleGenreDetail)
	r.Get("/{id}/update", s.handleGenreUpdateForm)
	r.Post("/{id}/update", s.handleGenreUpdate)
	r.Get("/{id}/delete", s.handleGenreDeleteForm)
	r.Post("/{id}/delete", s.handleGenreDelete)
}

// === HTML handlers ===

func (s *Server) handleGenreList(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Genres.List(r.Context(), sortFrom(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "genre_list", "Genre List", view)
}

func (s *Server) handleGenreDetail(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Genres.Detail(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "genre_detail", "Genre Detail", view)
}

func (s *Server) handleGenreCreateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Genres.CreateForm(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "genre_form", view.Title, view)
}

func (s *Server) handleGenreCreate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Genres.Create(r.Context(), form)
	respond(s, w, r, genreEntity, res, err, "genre_form", "Create Genre")
}

func (s *Server) handleGenreUpdateForm(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Genres.UpdateForm(r.Context(), urlID(r))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "genre_form", view.Title, view)
}

func (s *Server) handleGenreUpdate(w http.ResponseWriter, r *http.Request) {
	form, err := parseForm(r)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	res, err := s.services.Genres.Update(r.Context(), urlID(r), form)
	respond(s, w, r, genreEntity, res, err, "genre_form", "Update Genre")
}

func (s *Server) handleGenreDeleteForm(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Genres.DeleteForm(r.Context(), urlID(r))
	respond(s, w, r, genreEntity, res, err, "genre_delete", "Delete Genre")
}

func (s *Server) handleGenreDelete(w http.ResponseWriter, r *http.Request) {
	res, err := s.services.Genres.Delete(r.Context(), urlID(r))
	respond(s, w, r, genreEntity, res, err, "genre_delete", "Delete Genre")
}

// === JSON API ===

func (s *Server) registerGenreRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGenres",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres",
		Summary:     "List genres",
		Description: "Returns every genre ordered by name",
		Tags:        []string{"Genres"},
	}, s.handleListGenres)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGenre",
		Method:      http.MethodGet,
		Path:        "/api/v1/genres/{id}",
		Summary:     "Get genre",
		Description: "Returns a genre with the books shelved under it",
		Tags:        []string{"Genres"},
	}, s.handleGetGenre)
}

// === DTOs ===

// GenreResponse is the JSON form of a genre.
type GenreResponse struct {
	ID   string `json:"id" doc:"Genre ID"`
	Name string `json:"name" doc:"Genre name"`
	URL  string `json:"url" doc:"Catalog page"`
}

// GenreDetailResponse is a genre with its books.
type GenreDetailResponse struct {
	GenreResponse
	Books []BookRef `json:"books" doc:"Books in this genre"`
}

// GenreListResponse contains every genre.
type GenreListResponse struct {
	Genres []GenreResponse `json:"genres" doc:"Genres"`
	Total  int             `json:"total" doc:"Number of genres"`
}

// GenreListOutput wraps the genre list for Huma.
type GenreListOutput struct {
	Body GenreListResponse
}

// GenreOutput wraps a single genre for Huma.
type GenreOutput struct {
	Body GenreDetailResponse
}

// === Handlers ===

func (s *Server) handleListGenres(ctx context.Context, input *ListInput) (*GenreListOutput, error) {
	view, err := s.services.Genres.List(ctx, input.sort())
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}

	genres := toGenreResponses(view.Genres)
	return &GenreListOutput{Body: GenreListResponse{Genres: genres, Total: len(genres)}}, nil
}

func (s *Server) handleGetGenre(ctx context.Context, input *IDInput) (*GenreOutput, error) {
	view, err := s.services.Genres.Detail(ctx, input.ID)
	if err != nil {
		return nil, s.jsonError(ctx, err)
	}
	return &GenreOutput{Body: GenreDetailResponse{
		GenreResponse: toGenreResponse(view.Genre),
		Books:         toBookRefs(view.Books),
	}}, nil
}

func toGenreResponse(g *domain.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name, URL: g.URL()}
}

func toGenreResponses(genres []*domain.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, toGenreResponse(g))
	}
	return out
}
