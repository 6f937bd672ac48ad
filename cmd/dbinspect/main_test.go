package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentraghav/local-library/internal/domain"
	"github.com/agentraghav/local-library/internal/store"
)

// seedDB writes a small catalog with one copy of a deleted book and returns its path.
func seedDB(t *testing.T) (path string, orphan *domain.BookCopy) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "db")
	ctx := context.Background()

	st, err := store.NewBadger(path, nil)
	require.NoError(t, err)

	a := &domain.Author{FirstName: "Frank", FamilyName: "Herbert"}
	require.NoError(t, st.CreateAuthor(ctx, a))
	g := &domain.Genre{Name: "Science Fiction"}
	require.NoError(t, st.CreateGenre(ctx, g))
	b := &domain.Book{Title: "Dune", Summary: "Spice", ISBN: "9780441013593", AuthorID: a.ID, GenreIDs: []string{g.ID}}
	require.NoError(t, st.CreateBook(ctx, b))
	require.NoError(t, st.CreateBookCopy(ctx, &domain.BookCopy{BookID: b.ID, Imprint: "Ace", Status: domain.StatusAvailable}))

	gone := &domain.Book{Title: "Children of Dune", Summary: "More spice", ISBN: "9780441104024", AuthorID: a.ID}
	require.NoError(t, st.CreateBook(ctx, gone))
	orphan = &domain.BookCopy{BookID: gone.ID, Imprint: "Ace", Status: domain.StatusLoaned}
	require.NoError(t, st.CreateBookCopy(ctx, orphan))
	require.NoError(t, st.DeleteBook(ctx, gone.ID))

	require.NoError(t, st.Close())
	return path, orphan
}

func TestInspect(t *testing.T) {
	path, orphan := seedDB(t)

	db, err := badger.Open(badger.DefaultOptions(path).WithReadOnly(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()

	r, err := inspect(db)
	require.NoError(t, err)

	assert.Equal(t, 1, r.Collections["author:"].Documents)
	assert.Equal(t, 1, r.Collections["genre:"].Documents)
	assert.Equal(t, 1, r.Collections["genre:"].IndexKeys)
	assert.Equal(t, 1, r.Collections["book:"].Documents)
	assert.Equal(t, 2, r.Collections["copy:"].Documents)
	assert.Equal(t, 1, r.CopiesByStatus[domain.StatusAvailable])
	assert.Equal(t, 1, r.CopiesByStatus[domain.StatusLoaned])
	assert.Empty(t, r.DanglingAuthors)
	assert.Empty(t, r.DanglingGenres)
	assert.Equal(t, []string{orphan.ID + " -> " + orphan.BookID}, r.DanglingBooks)
}

func TestRootCmd(t *testing.T) {
	path, _ := seedDB(t)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db", path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Catalog Inspection")
	assert.Contains(t, out.String(), "Copies with a missing book (1)")
}
