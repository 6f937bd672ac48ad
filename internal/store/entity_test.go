package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/store"
)

type shelfItem struct {
	ID    string   `json:"id"`
	Code  string   `json:"code"`
	Rooms []string `json:"rooms"`
}

func setupEntity(t *testing.T) *store.Entity[shelfItem] {
	t.Helper()

	opts := badger.DefaultOptions(filepath.Join(t.TempDir(), "entity"))
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return store.NewEntity[shelfItem](db, "shelf:").
		WithUniqueIndex("code", func(s *shelfItem) []string { return []string{s.Code} }).
		WithRefIndex("room", func(s *shelfItem) []string { return s.Rooms })
}

func TestEntity_Create_Success(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	item := &shelfItem{ID: "1", Code: "A1", Rooms: []string{"north"}}
	require.NoError(t, e.Create(ctx, "1", item))

	got, err := e.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	require.NoError(t, e.Create(ctx, "1", &shelfItem{ID: "1", Code: "A1"}))

	err := e.Create(ctx, "1", &shelfItem{ID: "1", Code: "B2"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	err = e.Create(ctx, "2", &shelfItem{ID: "2", Code: "A1"})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_GetByIndex(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	require.NoError(t, e.Create(ctx, "1", &shelfItem{ID: "1", Code: "A1"}))

	got, err := e.GetByIndex(ctx, "code", "A1")
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)

	_, err = e.GetByIndex(ctx, "code", "Z9")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Update_RewritesIndexes(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	require.NoError(t, e.Create(ctx, "1", &shelfItem{ID: "1", Code: "A1", Rooms: []string{"north", "south"}}))
	require.NoError(t, e.Update(ctx, "1", &shelfItem{ID: "1", Code: "B2", Rooms: []string{"south"}}))

	_, err := e.GetByIndex(ctx, "code", "A1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	north, err := e.RefIDs(ctx, "room", "north")
	require.NoError(t, err)
	assert.Empty(t, north)

	south, err := e.ListByRef(ctx, "room", "south")
	require.NoError(t, err)
	require.Len(t, south, 1)
	assert.Equal(t, "B2", south[0].Code)

	err = e.Update(ctx, "2", &shelfItem{ID: "2"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	require.NoError(t, e.Create(ctx, "1", &shelfItem{ID: "1", Code: "A1", Rooms: []string{"north"}}))
	require.NoError(t, e.Delete(ctx, "1"))

	_, err := e.Get(ctx, "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, e.Delete(ctx, "1"), store.ErrNotFound)

	// Index keys are gone, so the code can be reused.
	assert.NoError(t, e.Create(ctx, "2", &shelfItem{ID: "2", Code: "A1"}))
}

func TestEntity_ListSkipsIndexKeys(t *testing.T) {
	e := setupEntity(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, e.Create(ctx, id, &shelfItem{ID: id, Code: "C" + id, Rooms: []string{"north"}}))
	}

	all, err := e.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := e.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEntity_ListHonorsCancelledContext(t *testing.T) {
	e := setupEntity(t)
	require.NoError(t, e.Create(context.Background(), "1", &shelfItem{ID: "1", Code: "A1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.All(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
