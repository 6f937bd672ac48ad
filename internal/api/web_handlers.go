package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/metrics"
	"github.com/agentraghav/local-library/internal/search"
	"github.com/agentraghav/local-library/internal/service"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

// errorPage is the data of the error template.
type errorPage struct {
	Message string
}

// searchPage is the data of the search template.
type searchPage struct {
	View  *service.SearchView
	Error string
}

// searchQuery bounds the free-text query accepted by the search page.
type searchQuery struct {
	Query string `json:"q" validate:"max=200"`
}

// render writes a full HTML page. The template is executed into a buffer
// first so a failing template still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, name, title, data); err != nil {
		s.logger.Error("Failed to render template", "template", name, "path", r.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError renders the error page with the status derived from err.
// Only server-side failures are logged.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var domainErr *domainerrors.Error
	var storeErr *store.Error
	switch {
	case errors.As(err, &domainErr):
		status = domainErr.HTTPStatus()
		message = domainErr.Message
	case errors.As(err, &storeErr):
		status = storeErr.HTTPCode()
		message = storeErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r),
			"error", err,
		)
		message = http.StatusText(status)
	}

	s.render(w, r, status, "error", http.StatusText(status), errorPage{Message: message})
}

// redirect answers a workflow redirect: 303 after a POST so the browser
// follows with a GET, 302 otherwise.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, url string) {
	status := http.StatusFound
	if r.Method == http.MethodPost {
		status = http.StatusSeeOther
	}
	http.Redirect(w, r, url, status)
}

// respond finishes a mutating workflow step: an error page, a redirect, or
// the view re-rendered with status 200.
func respond[T any](s *Server, w http.ResponseWriter, r *http.Request, entity string, res service.Result[T], err error, name, title string) {
	switch {
	case err != nil:
		s.formSubmitted(r, entity, metrics.OutcomeError)
		s.renderError(w, r, err)
	case res.IsRedirect():
		s.formSubmitted(r, entity, metrics.OutcomeRedirect)
		s.redirect(w, r, res.Redirect)
	default:
		s.formSubmitted(r, entity, metrics.OutcomeInvalid)
		s.render(w, r, http.StatusOK, name, title, res.View)
	}
}

func (s *Server) formSubmitted(r *http.Request, entity, outcome string) {
	if s.metrics != nil && r.Method == http.MethodPost {
		s.metrics.FormSubmitted(entity, outcome)
	}
}

// parseForm reads an urlencoded or multipart body into a validation.Form.
func parseForm(r *http.Request) (validation.Form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, domainerrors.Validation("malformed form submission").WithCause(err)
	}
	return validation.FromValues(r.PostForm), nil
}

// sortFrom reads ?sort=<field>&order=asc|desc.
func sortFrom(r *http.Request) store.Sort {
	q := r.URL.Query()
	return store.Sort{
		Field:      q.Get("sort"),
		Descending: strings.EqualFold(q.Get("order"), "desc"),
	}
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// handleHome renders the record counts.
// GET /catalog
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	view, err := s.services.Catalog.Home(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "index", "Local Library Home", view)
}

// handleSearchPage renders the search form and, for a non-empty query, its
// hits.
// GET /catalog/search?q=&types=
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	if err := s.validator.Validate(searchQuery{Query: q}); err != nil {
		view, err := s.services.Catalog.Search(r.Context(), "")
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		view.Query = q
		s.render(w, r, http.StatusBadRequest, "search", "Search", searchPage{
			View:  view,
			Error: "Search query must not exceed 200 characters.",
		})
		return
	}

	view, err := s.services.Catalog.Search(r.Context(), q, parseDocTypes(r.URL.Query().Get("types"))...)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "search", "Search", searchPage{View: view})
}

// parseDocTypes reads a comma-separated type filter, ignoring unknown names.
func parseDocTypes(raw string) []search.DocType {
	var types []search.DocType
	for _, t := range strings.Split(raw, ",") {
		switch dt := search.DocType(strings.TrimSpace(t)); dt {
		case search.DocTypeAuthor, search.DocTypeBook, search.DocTypeGenre:
			types = append(types, dt)
		}
	}
	return types
}
