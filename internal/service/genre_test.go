package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/store"
)

func TestGenreService_CreateDuplicateRedirectsToExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.genres.Create(ctx, form("name", "Fantasy"))
	require.NoError(t, err)
	require.True(t, first.IsRedirect())

	second, err := env.genres.Create(ctx, form("name", "  Fantasy "))
	require.NoError(t, err)
	assert.Equal(t, first.Redirect, second.Redirect)

	n, err := env.store.CountGenres(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGenreService_CreateInvalid(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", "Genre name required"},
		{"too long", strings.Repeat("x", 101), "Genre name must not exceed 100 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.genres.Create(ctx, form("name", tt.in))
			require.NoError(t, err)
			require.False(t, res.IsRedirect())
			require.Len(t, res.View.Form.Errors, 1)
			assert.Equal(t, tt.want, res.View.Form.Errors[0].Message)
			assert.Equal(t, tt.in, res.View.Form.Value("name"))
		})
	}
}

func TestGenreService_UpdateOntoExistingName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fantasy := env.genre(t, "Fantasy")
	poetry := env.genre(t, "Poetry")

	res, err := env.genres.Update(ctx, poetry.ID, form("name", "Fantasy"))
	require.NoError(t, err)
	assert.Equal(t, fantasy.URL(), res.Redirect)

	g, err := env.genres.Get(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poetry", g.Name)

	// Renaming to its own name is a plain update.
	res, err = env.genres.Update(ctx, fantasy.ID, form("name", "Fantasy"))
	require.NoError(t, err)
	assert.Equal(t, fantasy.URL(), res.Redirect)
}

func TestGenreService_UpdateSameNameRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	poetry := env.genre(t, "Poetry")
	env.genre(t, "Fantasy")

	view, err := env.genres.UpdateForm(ctx, poetry.ID)
	require.NoError(t, err)

	res, err := env.genres.Update(ctx, poetry.ID, form("name", " "+view.Form.Value("name")+" "))
	require.NoError(t, err)
	assert.Equal(t, poetry.URL(), res.Redirect)

	g, err := env.genres.Get(ctx, poetry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poetry", g.Name)

	list, err := env.genres.List(ctx, store.Sort{})
	require.NoError(t, err)
	assert.Len(t, list.Genres, 2)
}

func TestGenreService_UpdateMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.genres.Update(context.Background(), "genre-missing", form("name", "Horror"))
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestGenreService_DeleteLeavesBooks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.author(t, "Frank", "Herbert")
	scifi := env.genre(t, "Science Fiction")
	b := env.book(t, "Dune", a.ID, scifi.ID)

	confirm, err := env.genres.DeleteForm(ctx, scifi.ID)
	require.NoError(t, err)
	require.False(t, confirm.IsRedirect())
	require.Len(t, confirm.View.Books, 1)

	res, err := env.genres.Delete(ctx, scifi.ID)
	require.NoError(t, err)
	assert.Equal(t, "/catalog/genres", res.Redirect)

	_, err = env.genres.Detail(ctx, scifi.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	detail, err := env.books.Detail(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Genres)
}

func TestGenreService_ListSortedIgnoringCase(t *testing.T) {
	env := newTestEnv(t)

	env.genre(t, "poetry")
	env.genre(t, "Fantasy")
	env.genre(t, "Horror")

	view, err := env.genres.List(context.Background(), store.Sort{})
	require.NoError(t, err)
	var names []string
	for _, g := range view.Genres {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Fantasy", "Horror", "poetry"}, names)
}
