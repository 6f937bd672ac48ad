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

const bookListURL = "/catalog/books"

// BookSummary is a book joined with its author. Author is nil when the
// reference dangles.
type BookSummary struct {
	Book   *domain.Book
	Author *domain.Author
}

// BookListView lists every book with its author.
type BookListView struct {
	Books []BookSummary
}

// BookDetailView shows a book with its author, genres and copies.
type BookDetailView struct {
	Book   *domain.Book
	Author *domain.Author
	Genres []*domain.Genre
	Copies []*domain.BookCopy
}

// GenreOption is a genre checkbox on the book form.
type GenreOption struct {
	Genre   *domain.Genre
	Checked bool
}

// BookFormView backs the create and update forms.
type BookFormView struct {
	Title   string
	Form    FormState
	Authors []*domain.Author
	Genres  []GenreOption
}

// BookDeleteView is the delete confirmation page. Copies blocks the delete.
type BookDeleteView struct {
	Book     *domain.Book
	Author   *domain.Author
	Copies   []*domain.BookCopy
	Conflict *domainerrors.Error
}

// BookService orchestrates book workflows.
type BookService struct {
	store     store.Store
	indexer   Indexer
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, indexer Indexer, logger *slog.Logger) *BookService {
	return &BookService{
		store:     store,
		indexer:   indexer,
		logger:    logger,
		validator: validation.New(),
	}
}

func bookRules() []*validation.Rule {
	return []*validation.Rule{
		validation.Field("title").Trim().NotEmpty("Title must not be empty."),
		validation.Field("author").Trim().NotEmpty("Author must not be empty."),
		validation.Field("summary").Trim().NotEmpty("Summary must not be empty."),
		validation.Field("isbn").Trim().NotEmpty("ISBN must not be empty."),
		validation.Field("genre").Each().Trim(),
	}
}

// List returns every book joined with its author.
func (s *BookService) List(ctx context.Context, sort store.Sort) (*BookListView, error) {
	books, err := s.store.ListBooks(ctx, sort)
	if err != nil {
		return nil, err
	}

	authorIDs := lo.Uniq(lo.Map(books, func(b *domain.Book, _ int) string { return b.AuthorID }))
	authors, err := s.store.GetAuthorsByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(authors, func(a *domain.Author) string { return a.ID })

	out := make([]BookSummary, len(books))
	for i, b := range books {
		out[i] = BookSummary{Book: b, Author: byID[b.AuthorID]}
	}
	return &BookListView{Books: out}, nil
}

// Get returns one book or a NotFound error.
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, id)
	if store.IsNotFound(err) {
		return nil, domainerrors.NotFoundf("book %s not found", id)
	}
	return b, err
}

// Detail fetches a book and its copies concurrently, then populates the
// author and genres.
func (s *BookService) Detail(ctx context.Context, id string) (*BookDetailView, error) {
	book, copies, err := s.withCopies(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domainerrors.NotFoundf("book %s not found", id)
	}

	view := &BookDetailView{Book: book, Copies: copies}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view.Author, err = s.author(gctx, book.AuthorID)
		return err
	})
	g.Go(func() error {
		var err error
		view.Genres, err = s.store.GetGenresByIDs(gctx, book.GenreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *BookService) withCopies(ctx context.Context, id string) (*domain.Book, []*domain.BookCopy, error) {
	var (
		book   *domain.Book
		copies []*domain.BookCopy
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.store.GetBook(gctx, id)
		if store.IsNotFound(err) {
			return nil
		}
		book = b
		return err
	})
	g.Go(func() error {
		var err error
		copies, err = s.store.ListBookCopiesByBook(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return book, copies, nil
}

// author populates a reference, returning nil when it dangles.
func (s *BookService) author(ctx context.Context, id string) (*domain.Author, error) {
	a, err := s.store.GetAuthor(ctx, id)
	if store.IsNotFound(err) {
		return nil, nil
	}
	return a, err
}

// references loads the selectable authors and genres for the form.
func (s *BookService) references(ctx context.Context) ([]*domain.Author, []*domain.Genre, error) {
	var (
		authors []*domain.Author
		genres  []*domain.Genre
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.store.ListAuthors(gctx, store.Sort{})
		return err
	})
	g.Go(func() error {
		var err error
		genres, err = s.store.ListGenres(gctx, store.Sort{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return authors, genres, nil
}

func (s *BookService) form(ctx context.Context, title string, state FormState, selected []string) (*BookFormView, error) {
	authors, genres, err := s.references(ctx)
	if err != nil {
		return nil, err
	}
	return &BookFormView{
		Title:   title,
		Form:    state,
		Authors: authors,
		Genres:  genreOptions(genres, selected),
	}, nil
}

// CreateForm returns an empty book form with every author and genre.
func (s *BookService) CreateForm(ctx context.Context) (*BookFormView, error) {
	return s.form(ctx, "Create Book", FormState{}, nil)
}

// Create validates form and inserts a new book.
func (s *BookService) Create(ctx context.Context, form validation.Form) (Result[*BookFormView], error) {
	res := s.validator.Check(form, bookRules()...)
	if !res.Valid() {
		return s.invalid(ctx, "Create Book", form, res)
	}

	book := bookFromResult(res)
	if err := s.store.CreateBook(ctx, book); err != nil {
		return Result[*BookFormView]{}, err
	}

	s.index(ctx, book)
	s.logger.Info("book created", "id", book.ID, "title", book.Title)
	return redirectTo[*BookFormView](book.URL()), nil
}

// UpdateForm returns the form pre-filled with the stored book and its
// genres checked.
func (s *BookService) UpdateForm(ctx context.Context, id string) (*BookFormView, error) {
	var (
		book    *domain.Book
		authors []*domain.Author
		genres  []*domain.Genre
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		authors, genres, err = s.references(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BookFormView{
		Title:   "Update Book",
		Form:    bookFormState(book),
		Authors: authors,
		Genres:  genreOptions(genres, book.GenreIDs),
	}, nil
}

// Update validates form and replaces the stored book, keeping its ID.
func (s *BookService) Update(ctx context.Context, id string, form validation.Form) (Result[*BookFormView], error) {
	res := s.validator.Check(form, bookRules()...)
	if !res.Valid() {
		return s.invalid(ctx, "Update Book", form, res)
	}

	book := bookFromResult(res)
	book.ID = id
	if err := s.store.UpdateBook(ctx, book); err != nil {
		if store.IsNotFound(err) {
			return Result[*BookFormView]{}, domainerrors.NotFoundf("book %s not found", id)
		}
		return Result[*BookFormView]{}, err
	}

	s.index(ctx, book)
	s.logger.Info("book updated", "id", book.ID, "title", book.Title)
	return redirectTo[*BookFormView](book.URL()), nil
}

// invalid re-renders the form with the submitted values and errors.
func (s *BookService) invalid(ctx context.Context, title string, form validation.Form, res validation.Result) (Result[*BookFormView], error) {
	state := echoForm(form, "genre")
	state.Errors = res.Errors

	view, err := s.form(ctx, title, state, form.Values("genre"))
	if err != nil {
		return Result[*BookFormView]{}, err
	}
	return render(view), nil
}

// DeleteForm shows the confirmation page, or redirects to the list when
// the book no longer exists.
func (s *BookService) DeleteForm(ctx context.Context, id string) (Result[*BookDeleteView], error) {
	view, err := s.deleteView(ctx, id)
	if err != nil {
		return Result[*BookDeleteView]{}, err
	}
	if view == nil {
		return redirectTo[*BookDeleteView](bookListURL), nil
	}
	return render(view), nil
}

// Delete removes a book that has no copies. With copies, the delete is a
// no-op and the confirmation page is shown again listing them.
func (s *BookService) Delete(ctx context.Context, id string) (Result[*BookDeleteView], error) {
	view, err := s.deleteView(ctx, id)
	if err != nil {
		return Result[*BookDeleteView]{}, err
	}
	if view == nil {
		return redirectTo[*BookDeleteView](bookListURL), nil
	}

	if len(view.Copies) > 0 {
		view.Conflict = domainerrors.DependencyConflict(
			fmt.Sprintf("book has %d copies", len(view.Copies)),
			lo.Map(view.Copies, func(c *domain.BookCopy, _ int) string { return c.ID }),
		)
		s.logger.Info("book delete blocked", "id", id, "copies", len(view.Copies))
		return render(view), nil
	}

	if err := s.store.DeleteBook(ctx, id); err != nil && !store.IsNotFound(err) {
		return Result[*BookDeleteView]{}, err
	}
	if err := s.indexer.Remove(ctx, id); err != nil {
		s.logger.Warn("failed to remove book from index", "id", id, "error", err)
	}

	s.logger.Info("book deleted", "id", id, "title", view.Book.Title)
	return redirectTo[*BookDeleteView](bookListURL), nil
}

func (s *BookService) deleteView(ctx context.Context, id string) (*BookDeleteView, error) {
	book, copies, err := s.withCopies(ctx, id)
	if err != nil || book == nil {
		return nil, err
	}
	author, err := s.author(ctx, book.AuthorID)
	if err != nil {
		return nil, err
	}
	return &BookDeleteView{Book: book, Author: author, Copies: copies}, nil
}

func (s *BookService) index(ctx context.Context, b *domain.Book) {
	if err := s.indexer.IndexBook(ctx, b); err != nil {
		s.logger.Warn("failed to index book", "id", b.ID, "error", err)
	}
}

func bookFromResult(res validation.Result) *domain.Book {
	return &domain.Book{
		Title:    res.Get("title"),
		AuthorID: res.Get("author"),
		Summary:  res.Get("summary"),
		ISBN:     res.Get("isbn"),
		GenreIDs: lo.Uniq(lo.Compact(res.List("genre"))),
	}
}

func bookFormState(b *domain.Book) FormState {
	return FormState{
		Values: map[string]string{
			"title":   b.Title,
			"author":  b.AuthorID,
			"summary": b.Summary,
			"isbn":    b.ISBN,
		},
		Lists: map[string][]string{"genre": b.GenreIDs},
	}
}

func genreOptions(genres []*domain.Genre, selected []string) []GenreOption {
	out := make([]GenreOption, len(genres))
	for i, g := range genres {
		out[i] = GenreOption{Genre: g, Checked: lo.Contains(selected, g.ID)}
	}
	return out
}
