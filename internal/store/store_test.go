package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/store/storetest"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := store.NewBadger(filepath.Join(t.TempDir(), "badger"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestBadgerStore(t *testing.T) {
	storetest.Run(t, newTestStore)
}
