package service

import (
	"github.com/agentraghav/local-library/internal/validation"
)

// Result is the outcome of a mutating workflow step. Exactly one of
// Redirect or View is set: a redirect target after success (or when the
// step resolves to another record), otherwise the view to render.
type Result[T any] struct {
	Redirect string
	View     T
}

// IsRedirect reports whether the caller should redirect.
func (r Result[T]) IsRedirect() bool {
	return r.Redirect != ""
}

func redirectTo[T any](url string) Result[T] {
	return Result[T]{Redirect: url}
}

func render[T any](view T) Result[T] {
	return Result[T]{View: view}
}

// FormState carries the values shown in a form and the errors of the last
// submission. Values are the raw submission after a failed POST and the
// stored record otherwise.
type FormState struct {
	Values map[string]string
	Lists  map[string][]string
	Errors []validation.FieldError
}

// Value returns the pre-fill value of a field.
func (f FormState) Value(name string) string {
	return f.Values[name]
}

// HasErrors reports whether the last submission failed validation.
func (f FormState) HasErrors() bool {
	return len(f.Errors) > 0
}

// echoForm rebuilds the raw submission so a failed form is shown as typed.
func echoForm(form validation.Form, multi ...string) FormState {
	state := FormState{
		Values: make(map[string]string, len(form)),
		Lists:  make(map[string][]string),
	}
	for k := range form {
		state.Values[k] = form.Get(k)
	}
	for _, k := range multi {
		state.Lists[k] = form.Values(k)
	}
	return state
}
