package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, opts Options) *Watcher {
	t.Helper()

	w, err := New(slog.New(slog.DiscardHandler), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go w.Start(ctx) //nolint:errcheck // Test goroutine

	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case event := <-w.Events():
		return event
	case err := <-w.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
	return Event{}
}

func TestNew(t *testing.T) {
	w, err := New(slog.New(slog.DiscardHandler), Options{})
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "second Stop is a no-op")
}

func TestWatcher_WatchMissingPath(t *testing.T) {
	w, err := New(slog.New(slog.DiscardHandler), Options{})
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // Test cleanup

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "missing")))
}

func TestWatcher_FileCreation(t *testing.T) {
	tmpDir := t.TempDir()
	w := startWatcher(t, tmpDir, Options{SettleDelay: 50 * time.Millisecond})

	testFile := filepath.Join(tmpDir, "book_list.html")
	require.NoError(t, os.WriteFile(testFile, []byte("<ul></ul>"), 0o644))

	event := waitEvent(t, w)
	assert.Equal(t, EventAdded, event.Type)
	assert.Equal(t, testFile, event.Path)
	assert.Equal(t, int64(9), event.Size)
}

func TestWatcher_FileModification(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "layout.html")
	require.NoError(t, os.WriteFile(testFile, []byte("v1"), 0o644))

	w := startWatcher(t, tmpDir, Options{SettleDelay: 50 * time.Millisecond})

	require.NoError(t, os.WriteFile(testFile, []byte("version two"), 0o644))

	event := waitEvent(t, w)
	assert.Equal(t, EventModified, event.Type)
	assert.Equal(t, testFile, event.Path)
}

func TestWatcher_FileDeletion(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "genre_form.html")
	require.NoError(t, os.WriteFile(testFile, []byte("content"), 0o644))

	w := startWatcher(t, tmpDir, Options{SettleDelay: 50 * time.Millisecond})

	require.NoError(t, os.Remove(testFile))

	event := waitEvent(t, w)
	assert.Equal(t, EventRemoved, event.Type)
	assert.Equal(t, testFile, event.Path)
}

func TestWatcher_SkipsHiddenAndOtherExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	w := startWatcher(t, tmpDir, Options{Extensions: []string{".html"}, SettleDelay: 50 * time.Millisecond})

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".layout.html.swp"), []byte("swap"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("todo"), 0o644))
	normalFile := filepath.Join(tmpDir, "index.html")
	require.NoError(t, os.WriteFile(normalFile, []byte("content"), 0o644))

	event := waitEvent(t, w)
	assert.Equal(t, normalFile, event.Path)

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event: %+v", event)
	case <-time.After(200 * time.Millisecond):
	}
}
