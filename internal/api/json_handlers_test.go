package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
)

// testEnvelope mirrors response.Envelope with a typed payload.
type testEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func decodeEnvelope[T any](t *testing.T, body []byte) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	return env
}

func decodeAPIError(t *testing.T, body []byte) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(body, &apiErr), string(body))
	return apiErr
}

func TestAPI_ListAuthorsSorted(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)
	ts.author(t, "Isaac", "Asimov")
	ts.author(t, "Ursula", "le Guin")
	ts.author(t, "Frank", "Herbert")

	resp := api.Get("/api/v1/authors")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[AuthorListResponse](t, resp.Body.Bytes())
	assert.True(t, env.Success)
	require.Equal(t, 3, env.Data.Total)
	assert.Equal(t, "Asimov", env.Data.Authors[0].FamilyName)
	assert.Equal(t, "Herbert", env.Data.Authors[1].FamilyName)
	assert.Equal(t, "le Guin", env.Data.Authors[2].FamilyName)

	resp = api.Get("/api/v1/authors?sort=first_name&order=desc")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	env = decodeEnvelope[AuthorListResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Ursula", env.Data.Authors[0].FirstName)
}

func TestAPI_GetAuthorWithBooks(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	born := time.Date(1920, 10, 8, 0, 0, 0, 0, time.UTC)
	a := &domain.Author{FirstName: "Frank", FamilyName: "Herbert", DateOfBirth: &born}
	require.NoError(t, ts.st.CreateAuthor(context.Background(), a))
	b := ts.book(t, "Dune", a.ID)

	resp := api.Get("/api/v1/authors/" + a.ID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[AuthorDetailResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Herbert, Frank", env.Data.Name)
	assert.Equal(t, "1920-10-08", env.Data.DateOfBirth)
	assert.Equal(t, "Oct 8, 1920 - Alive", env.Data.Lifespan)
	assert.Equal(t, []BookRef{{ID: b.ID, Title: "Dune", URL: b.URL()}}, env.Data.Books)
}

func TestAPI_NotFound(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	for _, path := range []string{
		"/api/v1/authors/missing",
		"/api/v1/genres/missing",
		"/api/v1/books/missing",
		"/api/v1/bookinstances/missing",
	} {
		t.Run(path, func(t *testing.T) {
			resp := api.Get(path)
			require.Equal(t, http.StatusNotFound, resp.Code)

			apiErr := decodeAPIError(t, resp.Body.Bytes())
			assert.Equal(t, "NOT_FOUND", apiErr.Code)
			assert.Contains(t, apiErr.Message, "missing")
		})
	}
}

func TestAPI_InvalidSort(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	resp := api.Get("/api/v1/books?sort=price")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	apiErr := decodeAPIError(t, resp.Body.Bytes())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.Equal(t, "cannot sort by price", apiErr.Message)
}

func TestAPI_BookDetail(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)
	ctx := context.Background()

	a := ts.author(t, "Frank", "Herbert")
	g := &domain.Genre{Name: "Science Fiction"}
	require.NoError(t, ts.st.CreateGenre(ctx, g))
	b := ts.book(t, "Dune", a.ID, g.ID)
	c := &domain.BookCopy{BookID: b.ID, Imprint: "Chilton, 1965", Status: domain.StatusAvailable}
	require.NoError(t, ts.st.CreateBookCopy(ctx, c))

	resp := api.Get("/api/v1/books/" + b.ID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[BookDetailResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Dune", env.Data.Title)
	require.NotNil(t, env.Data.Author)
	assert.Equal(t, a.ID, env.Data.Author.ID)
	require.Len(t, env.Data.Genres, 1)
	assert.Equal(t, "Science Fiction", env.Data.Genres[0].Name)
	require.Len(t, env.Data.Copies, 1)
	assert.Equal(t, "Available", env.Data.Copies[0].Status)
	assert.Equal(t, "NA", env.Data.Copies[0].DueBackFormatted)
}

func TestAPI_ListCopiesWithDanglingBook(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	c := &domain.BookCopy{BookID: "book-gone", Imprint: "Ace, 1990", Status: domain.StatusMaintenance}
	require.NoError(t, ts.st.CreateBookCopy(context.Background(), c))

	resp := api.Get("/api/v1/bookinstances")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decodeEnvelope[CopyListResponse](t, resp.Body.Bytes())
	require.Equal(t, 1, env.Data.Total)
	assert.Nil(t, env.Data.Copies[0].Book)
	assert.Equal(t, c.URL(), env.Data.Copies[0].URL)
}

func TestAPI_CatalogSummary(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)
	ctx := context.Background()

	b := ts.book(t, "Dune", "")
	for _, status := range []domain.CopyStatus{domain.StatusAvailable, domain.StatusLoaned} {
		require.NoError(t, ts.st.CreateBookCopy(ctx, &domain.BookCopy{BookID: b.ID, Imprint: "x", Status: status}))
	}

	resp := api.Get("/api/v1/catalog/summary")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var env testEnvelope[map[string]int]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, map[string]int{
		"book_count":                    1,
		"book_instance_count":           2,
		"book_instance_available_count": 1,
		"author_count":                  0,
		"genre_count":                   0,
	}, env.Data)
}

func TestAPI_SearchDisabled(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	resp := api.Get("/api/v1/search?q=dune")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "search is disabled", decodeAPIError(t, resp.Body.Bytes()).Message)
}

func TestAPI_SearchRequiresQuery(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	resp := api.Get("/api/v1/search")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decodeAPIError(t, resp.Body.Bytes()).Code)
}

func TestAPI_Health(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decodeEnvelope[HealthResponse](t, resp.Body.Bytes())
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
	assert.Equal(t, "search disabled", env.Data.Components["search"].Message)
}

func TestEnvelopeTransformer(t *testing.T) {
	data := map[string]string{"id": "author-1"}

	out, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":"author-1"}}`, string(raw))

	apiErr := &APIError{status: http.StatusNotFound, Code: "NOT_FOUND", Message: "gone"}
	out, err = EnvelopeTransformer(nil, "404", apiErr)
	require.NoError(t, err)
	assert.Same(t, apiErr, out)
}

func TestAPI_ErrorsAreNotEnveloped(t *testing.T) {
	ts := setupTestServer(t, Options{})
	api := humatest.Wrap(t, ts.api)

	resp := api.Get("/api/v1/books/missing")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotContains(t, body, "success")
	assert.NotContains(t, body, "data")
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_CORS(t *testing.T) {
	ts := setupTestServer(t, Options{CORSOrigins: []string{"https://library.example"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
	req.Header.Set("Origin", "https://library.example")
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://library.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
