package di

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/di/providers"
	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/service"
)

func newTestContainer(t *testing.T, extra ...string) *do.RootScope {
	t.Helper()
	dir := t.TempDir()
	args := append([]string{
		"--env-file", filepath.Join(dir, "missing.env"),
		"--data-path", filepath.Join(dir, "data"),
		"--log-level", "error",
	}, extra...)

	injector := NewContainer(args)
	t.Cleanup(func() { _ = injector.Shutdown() })
	return injector
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestContainer_SQLiteWithoutSearch(t *testing.T) {
	injector := newTestContainer(t, "--storage-driver", "sqlite", "--search-enabled", "false")

	indexer, err := do.Invoke[service.Indexer](injector)
	require.NoError(t, err)
	assert.IsType(t, service.NoopIndexer{}, indexer)

	handler, err := do.Invoke[*providers.APIServerHandle](injector)
	require.NoError(t, err)

	rec := serve(handler, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>Books:</strong> 0")

	rec = serve(handler, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "search disabled")
}

func TestContainer_BadgerWithSearch(t *testing.T) {
	injector := newTestContainer(t)

	searchService, err := do.Invoke[*service.SearchService](injector)
	require.NoError(t, err)
	require.NotNil(t, searchService)

	handler, err := do.Invoke[*providers.APIServerHandle](injector)
	require.NoError(t, err)

	form := url.Values{"first_name": {"Frank"}, "family_name": {"Herbert"}}
	req := httptest.NewRequest(http.MethodPost, "/catalog/author/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(handler, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	count, err := searchService.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	rec = serve(handler, httptest.NewRequest(http.MethodGet, "/catalog/search?q=herbert", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Herbert, Frank")
}

func TestContainer_InvalidConfig(t *testing.T) {
	injector := newTestContainer(t, "--storage-driver", "csv")

	err := Bootstrap(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid storage driver")
}

func TestContainer_ShutdownDuringInitialReindex(t *testing.T) {
	injector := newTestContainer(t)

	storeHandle, err := do.Invoke[*providers.StoreHandle](injector)
	require.NoError(t, err)
	for n := range 50 {
		a := &domain.Author{FirstName: fmt.Sprintf("First%d", n), FamilyName: "Family"}
		require.NoError(t, storeHandle.CreateAuthor(context.Background(), a))
	}

	indexHandle, err := do.Invoke[*providers.SearchIndexHandle](injector)
	require.NoError(t, err)
	count, err := indexHandle.Index.DocumentCount()
	require.NoError(t, err)
	require.Zero(t, count)

	providers.TriggerSearchReindexIfNeeded(injector)

	require.NoError(t, indexHandle.Shutdown())
	assert.NoError(t, indexHandle.Shutdown(), "second shutdown is a no-op")
}

func TestContainer_InitialReindexFillsEmptyIndex(t *testing.T) {
	injector := newTestContainer(t)

	storeHandle, err := do.Invoke[*providers.StoreHandle](injector)
	require.NoError(t, err)
	require.NoError(t, storeHandle.CreateAuthor(context.Background(),
		&domain.Author{FirstName: "Ursula", FamilyName: "Le Guin"}))

	searchService, err := do.Invoke[*service.SearchService](injector)
	require.NoError(t, err)

	providers.TriggerSearchReindexIfNeeded(injector)

	assert.Eventually(t, func() bool {
		n, err := searchService.DocumentCount()
		return err == nil && n == 1
	}, 5*time.Second, 20*time.Millisecond)
}
