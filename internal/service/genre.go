package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/agentraghav/local-library/internal/domain"
	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

const genreListURL = "/catalog/genres"

// GenreListView lists every genre by name.
type GenreListView struct {
	Genres []*domain.Genre
}

// GenreDetailView shows a genre with the books shelved under it.
type GenreDetailView struct {
	Genre *domain.Genre
	Books []*domain.Book
}

// GenreFormView backs the create and update forms.
type GenreFormView struct {
	Title string
	Form  FormState
}

// GenreDeleteView is the delete confirmation page. Books are listed for
// information only; genre deletion is never blocked.
type GenreDeleteView struct {
	Genre *domain.Genre
	Books []*domain.Book
}

// GenreService orchestrates genre workflows.
type GenreService struct {
	store     store.Store
	indexer   Indexer
	logger    *slog.Logger
	validator *validation.Validator
}

// NewGenreService creates a new genre service.
func NewGenreService(store store.Store, indexer Indexer, logger *slog.Logger) *GenreService {
	return &GenreService{
		store:     store,
		indexer:   indexer,
		logger:    logger,
		validator: validation.New(),
	}
}

func genreRules() []*validation.Rule {
	return []*validation.Rule{
		validation.Field("name").Trim().
			NotEmpty("Genre name required").
			MaxLen(100, "Genre name must not exceed 100 characters."),
	}
}

// List returns every genre ordered by sort.
func (s *GenreService) List(ctx context.Context, sort store.Sort) (*GenreListView, error) {
	genres, err := s.store.ListGenres(ctx, sort)
	if err != nil {
		return nil, err
	}
	return &GenreListView{Genres: genres}, nil
}

// Get returns one genre or a NotFound error.
func (s *GenreService) Get(ctx context.Context, id string) (*domain.Genre, error) {
	g, err := s.store.GetGenre(ctx, id)
	if store.IsNotFound(err) {
		return nil, domainerrors.NotFoundf("genre %s not found", id)
	}
	return g, err
}

// Detail fetches a genre and its books concurrently.
func (s *GenreService) Detail(ctx context.Context, id string) (*GenreDetailView, error) {
	genre, books, err := s.withBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if genre == nil {
		return nil, domainerrors.NotFoundf("genre %s not found", id)
	}
	return &GenreDetailView{Genre: genre, Books: books}, nil
}

func (s *GenreService) withBooks(ctx context.Context, id string) (*domain.Genre, []*domain.Book, error) {
	var (
		genre *domain.Genre
		books []*domain.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.store.GetGenre(gctx, id)
		if store.IsNotFound(err) {
			return nil
		}
		genre = v
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.store.ListBooksByGenre(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return genre, books, nil
}

// CreateForm returns an empty genre form.
func (s *GenreService) CreateForm(_ context.Context) (*GenreFormView, error) {
	return &GenreFormView{Title: "Create Genre"}, nil
}

// Create validates form and inserts a genre. A name that already exists
// redirects to the existing genre instead of creating a duplicate.
func (s *GenreService) Create(ctx context.Context, form validation.Form) (Result[*GenreFormView], error) {
	res := s.validator.Check(form, genreRules()...)
	if !res.Valid() {
		return render(genreFormWithErrors("Create Genre", form, res)), nil
	}

	name := res.Get("name")
	if existing, err := s.findByName(ctx, name); err != nil || existing != nil {
		if err != nil {
			return Result[*GenreFormView]{}, err
		}
		return redirectTo[*GenreFormView](existing.URL()), nil
	}

	genre := &domain.Genre{Name: name}
	if err := s.store.CreateGenre(ctx, genre); err != nil {
		// Lost a race with a concurrent create of the same name.
		if store.IsAlreadyExists(err) {
			if existing, ferr := s.findByName(ctx, name); ferr == nil && existing != nil {
				return redirectTo[*GenreFormView](existing.URL()), nil
			}
		}
		return Result[*GenreFormView]{}, err
	}

	s.index(ctx, genre)
	s.logger.Info("genre created", "id", genre.ID, "name", genre.Name)
	return redirectTo[*GenreFormView](genre.URL()), nil
}

// UpdateForm returns the form pre-filled with the stored genre.
func (s *GenreService) UpdateForm(ctx context.Context, id string) (*GenreFormView, error) {
	genre, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GenreFormView{
		Title: "Update Genre",
		Form:  FormState{Values: map[string]string{"name": genre.Name}},
	}, nil
}

// Update renames a genre. Renaming onto another genre's name redirects to
// that genre and leaves both unchanged.
func (s *GenreService) Update(ctx context.Context, id string, form validation.Form) (Result[*GenreFormView], error) {
	res := s.validator.Check(form, genreRules()...)
	if !res.Valid() {
		return render(genreFormWithErrors("Update Genre", form, res)), nil
	}

	name := res.Get("name")
	existing, err := s.findByName(ctx, name)
	if err != nil {
		return Result[*GenreFormView]{}, err
	}
	if existing != nil && existing.ID != id {
		return redirectTo[*GenreFormView](existing.URL()), nil
	}

	genre := &domain.Genre{Record: domain.Record{ID: id}, Name: name}
	if err := s.store.UpdateGenre(ctx, genre); err != nil {
		if store.IsNotFound(err) {
			return Result[*GenreFormView]{}, domainerrors.NotFoundf("genre %s not found", id)
		}
		return Result[*GenreFormView]{}, err
	}

	s.index(ctx, genre)
	s.logger.Info("genre updated", "id", genre.ID, "name", genre.Name)
	return redirectTo[*GenreFormView](genre.URL()), nil
}

// DeleteForm shows the confirmation page, or redirects to the list when
// the genre no longer exists.
func (s *GenreService) DeleteForm(ctx context.Context, id string) (Result[*GenreDeleteView], error) {
	genre, books, err := s.withBooks(ctx, id)
	if err != nil {
		return Result[*GenreDeleteView]{}, err
	}
	if genre == nil {
		return redirectTo[*GenreDeleteView](genreListURL), nil
	}
	return render(&GenreDeleteView{Genre: genre, Books: books}), nil
}

// Delete removes a genre unconditionally. Books keep the dangling
// reference, which is skipped when they are displayed.
func (s *GenreService) Delete(ctx context.Context, id string) (Result[*GenreDeleteView], error) {
	books, err := s.store.ListBooksByGenre(ctx, id)
	if err != nil {
		return Result[*GenreDeleteView]{}, err
	}
	if err := s.store.DeleteGenre(ctx, id); err != nil && !store.IsNotFound(err) {
		return Result[*GenreDeleteView]{}, err
	}

	if err := s.indexer.Remove(ctx, id); err != nil {
		s.logger.Warn("failed to remove genre from index", "id", id, "error", err)
	}
	for _, b := range books {
		if err := s.indexer.IndexBook(ctx, b); err != nil {
			s.logger.Warn("failed to reindex book", "id", b.ID, "error", err)
		}
	}

	s.logger.Info("genre deleted", "id", id)
	return redirectTo[*GenreDeleteView](genreListURL), nil
}

// findByName returns the genre with exactly name, or nil.
func (s *GenreService) findByName(ctx context.Context, name string) (*domain.Genre, error) {
	g, err := s.store.GetGenreByName(ctx, name)
	if store.IsNotFound(err) {
		return nil, nil
	}
	return g, err
}

func (s *GenreService) index(ctx context.Context, g *domain.Genre) {
	if err := s.indexer.IndexGenre(ctx, g); err != nil {
		s.logger.Warn("failed to index genre", "id", g.ID, "error", err)
	}
}

func genreFormWithErrors(title string, form validation.Form, res validation.Result) *GenreFormView {
	state := echoForm(form)
	state.Errors = res.Errors
	return &GenreFormView{Title: title, Form: state}
}
