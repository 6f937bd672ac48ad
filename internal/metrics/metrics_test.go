package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsolatedRegistries(t *testing.T) {
	a := New()
	b := New()

	a.RateLimitedTotal.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.RateLimitedTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RateLimitedTotal))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/catalog/author/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/catalog", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/catalog/author/a1", "/catalog/author/a2", "/catalog"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/catalog/author/{id}", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/catalog", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInProgress))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestFormSubmitted(t *testing.T) {
	m := New()

	m.FormSubmitted("author", OutcomeRedirect)
	m.FormSubmitted("author", OutcomeRedirect)
	m.FormSubmitted("author", OutcomeInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FormSubmissionsTotal.WithLabelValues("author", OutcomeRedirect)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FormSubmissionsTotal.WithLabelValues("author", OutcomeInvalid)))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.FormSubmitted("genre", OutcomeError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `catalog_form_submissions_total{entity="genre",outcome="error"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
