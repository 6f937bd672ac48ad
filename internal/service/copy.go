package service

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/agentraghav/local-library/internal/domain"
	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/validation"
)

const copyListURL = "/catalog/bookinstances"

// CopySummary is a copy joined with its book. Book is nil when the
// reference dangles.
type CopySummary struct {
	Copy *domain.BookCopy
	Book *domain.Book
}

// CopyListView lists every copy with its book.
type CopyListView struct {
	Copies []CopySummary
}

// CopyDetailView shows a copy with its book.
type CopyDetailView struct {
	Copy *domain.BookCopy
	Book *domain.Book
}

// CopyFormView backs the create and update forms.
type CopyFormView struct {
	Title    string
	Form     FormState
	Books    []*domain.Book
	Statuses []domain.CopyStatus
}

// CopyDeleteView is the delete confirmation page.
type CopyDeleteView struct {
	Copy *domain.BookCopy
	Book *domain.Book
}

// BookCopyService orchestrates book copy workflows.
type BookCopyService struct {
	store     store.Store
	logger    *slog.Logger
	validator *validation.Validator
}

// NewBookCopyService creates a new book copy service.
func NewBookCopyService(store store.Store, logger *slog.Logger) *BookCopyService {
	return &BookCopyService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
	}
}

func copyRules() []*validation.Rule {
	statuses := lo.Map(domain.CopyStatuses, func(s domain.CopyStatus, _ int) string { return string(s) })
	return []*validation.Rule{
		validation.Field("book").Trim().NotEmpty("Book must be specified"),
		validation.Field("imprint").Trim().NotEmpty("Imprint must be specified"),
		validation.Field("status").Trim().OneOf("Invalid status", statuses...),
		validation.Field("due_back").Optional().ISODate("Invalid date"),
	}
}

// List returns every copy joined with its book.
func (s *BookCopyService) List(ctx context.Context, sort store.Sort) (*CopyListView, error) {
	copies, err := s.store.ListBookCopies(ctx, sort)
	if err != nil {
		return nil, err
	}

	bookIDs := lo.Uniq(lo.Map(copies, func(c *domain.BookCopy, _ int) string { return c.BookID }))
	books, err := s.store.GetBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(books, func(b *domain.Book) string { return b.ID })

	out := make([]CopySummary, len(copies))
	for i, c := range copies {
		out[i] = CopySummary{Copy: c, Book: byID[c.BookID]}
	}
	return &CopyListView{Copies: out}, nil
}

// Get returns one copy or a NotFound error.
func (s *BookCopyService) Get(ctx context.Context, id string) (*domain.BookCopy, error) {
	c, err := s.store.GetBookCopy(ctx, id)
	if store.IsNotFound(err) {
		return nil, domainerrors.NotFoundf("book copy %s not found", id)
	}
	return c, err
}

// Detail fetches a copy and populates its book.
func (s *BookCopyService) Detail(ctx context.Context, id string) (*CopyDetailView, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	book, err := s.book(ctx, c.BookID)
	if err != nil {
		return nil, err
	}
	return &CopyDetailView{Copy: c, Book: book}, nil
}

func (s *BookCopyService) book(ctx context.Context, id string) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, id)
	if store.IsNotFound(err) {
		return nil, nil
	}
	return b, err
}

func (s *BookCopyService) form(ctx context.Context, title string, state FormState) (*CopyFormView, error) {
	books, err := s.store.ListBookTitles(ctx)
	if err != nil {
		return nil, err
	}
	return &CopyFormView{
		Title:    title,
		Form:     state,
		Books:    books,
		Statuses: domain.CopyStatuses,
	}, nil
}

// CreateForm returns an empty copy form with every book title.
// An optional book ID pre-selects the book.
func (s *BookCopyService) CreateForm(ctx context.Context, bookID string) (*CopyFormView, error) {
	return s.form(ctx, "Create BookInstance", FormState{Values: map[string]string{
		"book":   bookID,
		"status": string(domain.StatusMaintenance),
	}})
}

// Create validates form and inserts a new copy.
func (s *BookCopyService) Create(ctx context.Context, form validation.Form) (Result[*CopyFormView], error) {
	form = withDefaultStatus(form)
	res := s.validator.Check(form, copyRules()...)
	if res.Valid() {
		if err := s.checkBook(ctx, &res); err != nil {
			return Result[*CopyFormView]{}, err
		}
	}
	if !res.Valid() {
		return s.invalid(ctx, "Create BookInstance", form, res)
	}

	c, err := copyFromResult(res)
	if err != nil {
		return Result[*CopyFormView]{}, err
	}
	if err := s.store.CreateBookCopy(ctx, c); err != nil {
		return Result[*CopyFormView]{}, err
	}

	s.logger.Info("book copy created", "id", c.ID, "book", c.BookID, "status", c.Status)
	return redirectTo[*CopyFormView](c.URL()), nil
}

// UpdateForm returns the form pre-filled with the stored copy.
func (s *BookCopyService) UpdateForm(ctx context.Context, id string) (*CopyFormView, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.form(ctx, "Update BookInstance", FormState{Values: map[string]string{
		"book":     c.BookID,
		"imprint":  c.Imprint,
		"status":   string(c.Status),
		"due_back": c.DueBackISO(),
	}})
}

// Update validates form and replaces the stored copy, keeping its ID.
func (s *BookCopyService) Update(ctx context.Context, id string, form validation.Form) (Result[*CopyFormView], error) {
	form = withDefaultStatus(form)
	res := s.validator.Check(form, copyRules()...)
	if res.Valid() {
		if err := s.checkBook(ctx, &res); err != nil {
			return Result[*CopyFormView]{}, err
		}
	}
	if !res.Valid() {
		return s.invalid(ctx, "Update BookInstance", form, res)
	}

	c, err := copyFromResult(res)
	if err != nil {
		return Result[*CopyFormView]{}, err
	}
	c.ID = id
	if err := s.store.UpdateBookCopy(ctx, c); err != nil {
		if store.IsNotFound(err) {
			return Result[*CopyFormView]{}, domainerrors.NotFoundf("book copy %s not found", id)
		}
		return Result[*CopyFormView]{}, err
	}

	s.logger.Info("book copy updated", "id", c.ID, "status", c.Status)
	return redirectTo[*CopyFormView](c.URL()), nil
}

// checkBook records a field error when the selected book does not exist.
func (s *BookCopyService) checkBook(ctx context.Context, res *validation.Result) error {
	_, err := s.store.GetBook(ctx, res.Get("book"))
	if store.IsNotFound(err) {
		res.Errors = append(res.Errors, validation.FieldError{Field: "book", Message: "Book not found"})
		return nil
	}
	return err
}

func (s *BookCopyService) invalid(ctx context.Context, title string, form validation.Form, res validation.Result) (Result[*CopyFormView], error) {
	state := echoForm(form)
	state.Errors = res.Errors

	view, err := s.form(ctx, title, state)
	if err != nil {
		return Result[*CopyFormView]{}, err
	}
	return render(view), nil
}

// DeleteForm shows the confirmation page, or redirects to the list when
// the copy no longer exists.
func (s *BookCopyService) DeleteForm(ctx context.Context, id string) (Result[*CopyDeleteView], error) {
	c, err := s.store.GetBookCopy(ctx, id)
	if store.IsNotFound(err) {
		return redirectTo[*CopyDeleteView](copyListURL), nil
	}
	if err != nil {
		return Result[*CopyDeleteView]{}, err
	}

	book, err := s.book(ctx, c.BookID)
	if err != nil {
		return Result[*CopyDeleteView]{}, err
	}
	return render(&CopyDeleteView{Copy: c, Book: book}), nil
}

// Delete removes a copy unconditionally.
func (s *BookCopyService) Delete(ctx context.Context, id string) (Result[*CopyDeleteView], error) {
	if err := s.store.DeleteBookCopy(ctx, id); err != nil && !store.IsNotFound(err) {
		return Result[*CopyDeleteView]{}, err
	}

	s.logger.Info("book copy deleted", "id", id)
	return redirectTo[*CopyDeleteView](copyListURL), nil
}

// withDefaultStatus fills an absent status with Maintenance.
func withDefaultStatus(form validation.Form) validation.Form {
	if form.Get("status") != "" {
		return form
	}
	out := make(validation.Form, len(form)+1)
	for k, v := range form {
		out[k] = v
	}
	out.Set("status", string(domain.StatusMaintenance))
	return out
}

func copyFromResult(res validation.Result) (*domain.BookCopy, error) {
	due, err := domain.ParseDate(res.Get("due_back"))
	if err != nil {
		return nil, err
	}
	return &domain.BookCopy{
		BookID:  res.Get("book"),
		Imprint: res.Get("imprint"),
		Status:  domain.CopyStatus(res.Get("status")),
		DueBack: due,
	}, nil
}
