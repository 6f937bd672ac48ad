package api

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
)

const testLayout = `{{define "layout"}}<title>{{.Title}}</title>{{template "content" .Data}}{{end}}`

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestRenderer_Embedded(t *testing.T) {
	r, err := NewRenderer("", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "error", "Not found", map[string]string{"Message": "no such book"}))
	assert.Contains(t, buf.String(), "<title>Not found</title>")
	assert.Contains(t, buf.String(), "no such book")

	assert.ErrorContains(t, r.Render(&buf, "missing", "x", nil), `unknown template "missing"`)
}

func TestRenderer_StatusClass(t *testing.T) {
	class := templateFuncs["statusClass"].(func(domain.CopyStatus) string)

	assert.Equal(t, "text-success", class(domain.StatusAvailable))
	assert.Equal(t, "text-danger", class(domain.StatusMaintenance))
	assert.Equal(t, "text-warning", class(domain.StatusLoaned))
	assert.Equal(t, "text-warning", class(domain.StatusReserved))
}

func TestRenderer_LoadKeepsPreviousSetOnError(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, layoutFile, testLayout)
	writeTemplate(t, dir, "hello.html", `{{define "content"}}hello {{.}}{{end}}`)

	r, err := NewRenderer(dir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	writeTemplate(t, dir, "hello.html", `{{define "content"}}{{.Broken{{end}}`)
	assert.Error(t, r.Load())

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "hello", "Hi", "world"))
	assert.Equal(t, "<title>Hi</title>hello world", buf.String())
}

func TestRenderer_WatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeTemplate(t, dir, layoutFile, testLayout)
	writeTemplate(t, dir, "hello.html", `{{define "content"}}v1{{end}}`)

	r, err := NewRenderer(dir, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	render := func() string {
		var buf bytes.Buffer
		if err := r.Render(&buf, "hello", "t", nil); err != nil {
			return err.Error()
		}
		return buf.String()
	}

	// The watch is registered asynchronously, so keep rewriting until it lands.
	assert.Eventually(t, func() bool {
		writeTemplate(t, dir, "hello.html", `{{define "content"}}v2{{end}}`)
		return render() == "<title>t</title>v2"
	}, 5*time.Second, 200*time.Millisecond)
}

func TestRenderer_WatchEmbeddedIsNoop(t *testing.T) {
	r, err := NewRenderer("", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	assert.NoError(t, r.Watch(context.Background()))
}
