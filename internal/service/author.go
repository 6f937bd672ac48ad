package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/agentraghav/local-library/internal/domain"
	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

const authorListURL = "/catalog/authors"

// AuthorListView lists every author by family name.
type AuthorListView struct {
	Authors []*domain.Author
}

// AuthorDetailView shows an author with their books.
type AuthorDetailView struct {
	Author *domain.Author
	Books  []*domain.Book
}

// AuthorFormView backs the create and update forms.
type AuthorFormView struct {
	Title string
	Form  FormState
}

// AuthorDeleteView is the delete confirmation page. Books blocks the delete.
type AuthorDeleteView struct {
	Author   *domain.Author
	Books    []*domain.Book
	Conflict *domainerrors.Error
}

// AuthorService orchestrates author workflows.
type AuthorService struct {
	store     store.Store
	indexer   Indexer
	logger    *slog.Logger
	validator *validation.Validator
}

// NewAuthorService creates a new author service.
func NewAuthorService(store store.Store, indexer Indexer, logger *slog.Logger) *AuthorService {
	return &AuthorService{
		store:     store,
		indexer:   indexer,
		logger:    logger,
		validator: validation.New(),
	}
}

func authorRules() []*validation.Rule {
	return []*validation.Rule{
		validation.Field("first_name").Trim().
			NotEmpty("First name must be specified.").
			MaxLen(200, "First name must not exceed 200 characters.").
			Alphanumeric("First name has non-alphanumeric characters."),
		validation.Field("family_name").Trim().
			NotEmpty("Family name must be specified.").
			MaxLen(200, "Family name must not exceed 200 characters.").
			Alphanumeric("Family name has non-alphanumeric characters."),
		validation.Field("date_of_birth").Optional().ISODate("Invalid date of birth"),
		validation.Field("date_of_death").Optional().ISODate("Invalid date of death"),
	}
}

// List returns every author ordered by sort.
func (s *AuthorService) List(ctx context.Context, sort store.Sort) (*AuthorListView, error) {
	authors, err := s.store.ListAuthors(ctx, sort)
	if err != nil {
		return nil, err
	}
	return &AuthorListView{Authors: authors}, nil
}

// Get returns one author or a NotFound error.
func (s *AuthorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	a, err := s.store.GetAuthor(ctx, id)
	if store.IsNotFound(err) {
		return nil, domainerrors.NotFoundf("author %s not found", id)
	}
	return a, err
}

// Detail fetches an author and their books concurrently.
func (s *AuthorService) Detail(ctx context.Context, id string) (*AuthorDetailView, error) {
	author, books, err := s.withBooks(ctx, id)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, domainerrors.NotFoundf("author %s not found", id)
	}
	return &AuthorDetailView{Author: author, Books: books}, nil
}

// withBooks loads an author and their books in parallel.
// A missing author yields a nil author and no error.
func (s *AuthorService) withBooks(ctx context.Context, id string) (*domain.Author, []*domain.Book, error) {
	var (
		author *domain.Author
		books  []*domain.Book
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.store.GetAuthor(gctx, id)
		if store.IsNotFound(err) {
			return nil
		}
		author = a
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.store.ListBooksByAuthor(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return author, books, nil
}

// CreateForm returns an empty author form.
func (s *AuthorService) CreateForm(_ context.Context) (*AuthorFormView, error) {
	return &AuthorFormView{Title: "Create Author"}, nil
}

// Create validates form and inserts a new author.
func (s *AuthorService) Create(ctx context.Context, form validation.Form) (Result[*AuthorFormView], error) {
	res := s.validator.Check(form, authorRules()...)
	if !res.Valid() {
		state := echoForm(form)
		state.Errors = res.Errors
		return render(&AuthorFormView{Title: "Create Author", Form: state}), nil
	}

	author, err := authorFromResult(res)
	if err != nil {
		return Result[*AuthorFormView]{}, err
	}
	if err := s.store.CreateAuthor(ctx, author); err != nil {
		return Result[*AuthorFormView]{}, err
	}

	s.index(ctx, author)
	s.logger.Info("author created", "id", author.ID, "name", author.Name())
	return redirectTo[*AuthorFormView](author.URL()), nil
}

// UpdateForm returns the form pre-filled with the stored author.
func (s *AuthorService) UpdateForm(ctx context.Context, id string) (*AuthorFormView, error) {
	author, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AuthorFormView{Title: "Update Author", Form: authorFormState(author)}, nil
}

// Update validates form and replaces the stored author, keeping its ID.
func (s *AuthorService) Update(ctx context.Context, id string, form validation.Form) (Result[*AuthorFormView], error) {
	res := s.validator.Check(form, authorRules()...)
	if !res.Valid() {
		state := echoForm(form)
		state.Errors = res.Errors
		return render(&AuthorFormView{Title: "Update Author", Form: state}), nil
	}

	author, err := authorFromResult(res)
	if err != nil {
		return Result[*AuthorFormView]{}, err
	}
	author.ID = id

	if err := s.store.UpdateAuthor(ctx, author); err != nil {
		if store.IsNotFound(err) {
			return Result[*AuthorFormView]{}, domainerrors.NotFoundf("author %s not found", id)
		}
		return Result[*AuthorFormView]{}, err
	}

	s.index(ctx, author)
	s.logger.Info("author updated", "id", author.ID, "name", author.Name())
	return redirectTo[*AuthorFormView](author.URL()), nil
}

// DeleteForm shows the confirmation page, or redirects to the list when
// the author no longer exists.
func (s *AuthorService) DeleteForm(ctx context.Context, id string) (Result[*AuthorDeleteView], error) {
	author, books, err := s.withBooks(ctx, id)
	if err != nil {
		return Result[*AuthorDeleteView]{}, err
	}
	if author == nil {
		return redirectTo[*AuthorDeleteView](authorListURL), nil
	}
	return render(&AuthorDeleteView{Author: author, Books: books}), nil
}

// Delete removes an author that has no books. With books, the delete is a
// no-op and the confirmation page is shown again listing them.
func (s *AuthorService) Delete(ctx context.Context, id string) (Result[*AuthorDeleteView], error) {
	author, books, err := s.withBooks(ctx, id)
	if err != nil {
		return Result[*AuthorDeleteView]{}, err
	}
	if author == nil {
		return redirectTo[*AuthorDeleteView](authorListURL), nil
	}

	if len(books) > 0 {
		conflict := domainerrors.DependencyConflict(
			fmt.Sprintf("author has %d book(s)", len(books)),
			lo.Map(books, func(b *domain.Book, _ int) string { return b.ID }),
		)
		s.logger.Info("author delete blocked", "id", id, "books", len(books))
		return render(&AuthorDeleteView{Author: author, Books: books, Conflict: conflict}), nil
	}

	if err := s.store.DeleteAuthor(ctx, id); err != nil && !store.IsNotFound(err) {
		return Result[*AuthorDeleteView]{}, err
	}
	s.unindex(ctx, id)

	s.logger.Info("author deleted", "id", id)
	return redirectTo[*AuthorDeleteView](authorListURL), nil
}

func (s *AuthorService) index(ctx context.Context, a *domain.Author) {
	if err := s.indexer.IndexAuthor(ctx, a); err != nil {
		s.logger.Warn("failed to index author", "id", a.ID, "error", err)
	}
}

func (s *AuthorService) unindex(ctx context.Context, id string) {
	if err := s.indexer.Remove(ctx, id); err != nil {
		s.logger.Warn("failed to remove author from index", "id", id, "error", err)
	}
}

func authorFromResult(res validation.Result) (*domain.Author, error) {
	born, err := domain.ParseDate(res.Get("date_of_birth"))
	if err != nil {
		return nil, err
	}
	died, err := domain.ParseDate(res.Get("date_of_death"))
	if err != nil {
		return nil, err
	}
	return &domain.Author{
		FirstName:   res.Get("first_name"),
		FamilyName:  res.Get("family_name"),
		DateOfBirth: born,
		DateOfDeath: died,
	}, nil
}

func authorFormState(a *domain.Author) FormState {
	return FormState{Values: map[string]string{
		"first_name":    a.FirstName,
		"family_name":   a.FamilyName,
		"date_of_birth": a.DateOfBirthISO(),
		"date_of_death": a.DateOfDeathISO(),
	}}
}
