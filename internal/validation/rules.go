package validation

import (
	"strconv"
	"strings"

	"github.com/agentraghav/local-library/internal/domain"
)

// FieldError is a single failed rule for a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the outcome of checking a form.
// Values and Lists hold sanitized values; Errors keeps rule order.
type Result struct {
	Values map[string]string
	Lists  map[string][]string
	Errors []FieldError
}

// Valid reports whether no rule failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Get returns the sanitized value of a single-valued field.
func (r Result) Get(field string) string {
	return r.Values[field]
}

// List returns the sanitized values of a multi-valued field.
func (r Result) List(field string) []string {
	if vs, ok := r.Lists[field]; ok {
		return vs
	}
	return []string{}
}

// Messages returns the messages recorded for field, in order.
func (r Result) Messages(field string) []string {
	var out []string
	for _, e := range r.Errors {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

type stepKind int

const (
	stepSanitize stepKind = iota
	stepCheck
)

type step struct {
	kind     stepKind
	sanitize func(string) string
	tag      string
	message  string
	// normalize rewrites a value that passed the check.
	normalize func(string) string
}

// Rule is an ordered chain of sanitizers and checks for one field.
type Rule struct {
	field    string
	optional bool
	each     bool
	steps    []step
}

// Field starts a rule chain for the named form field.
func Field(name string) *Rule {
	return &Rule{field: name}
}

// Optional skips every following step when the raw value is empty or absent.
func (r *Rule) Optional() *Rule {
	r.optional = true
	return r
}

// Each applies the chain to every value of a multi-valued field.
func (r *Rule) Each() *Rule {
	r.each = true
	return r
}

// Trim removes surrounding whitespace.
func (r *Rule) Trim() *Rule {
	return r.sanitize(strings.TrimSpace)
}

// NotEmpty requires at least one character.
func (r *Rule) NotEmpty(msg string) *Rule {
	return r.MinLen(1, msg)
}

// MinLen requires at least n characters.
func (r *Rule) MinLen(n int, msg string) *Rule {
	return r.check("min="+strconv.Itoa(n), msg)
}

// MaxLen allows at most n characters.
func (r *Rule) MaxLen(n int, msg string) *Rule {
	return r.check("max="+strconv.Itoa(n), msg)
}

// Alphanumeric requires ASCII letters and digits only.
func (r *Rule) Alphanumeric(msg string) *Rule {
	return r.check("alphanum", msg)
}

// ISODate requires an ISO-8601 date and normalizes it to YYYY-MM-DD.
func (r *Rule) ISODate(msg string) *Rule {
	r.steps = append(r.steps, step{
		kind:    stepCheck,
		tag:     "isodate",
		message: msg,
		normalize: func(s string) string {
			t, err := domain.ParseDate(s)
			if err != nil {
				return s
			}
			return domain.ISODate(t)
		},
	})
	return r
}

// OneOf requires the value to be one of values. Values must not contain spaces.
func (r *Rule) OneOf(msg string, values ...string) *Rule {
	return r.check("oneof="+strings.Join(values, " "), msg)
}

func (r *Rule) sanitize(fn func(string) string) *Rule {
	r.steps = append(r.steps, step{kind: stepSanitize, sanitize: fn})
	return r
}

func (r *Rule) check(tag, msg string) *Rule {
	r.steps = append(r.steps, step{kind: stepCheck, tag: tag, message: msg})
	return r
}

// apply runs the chain on one raw value, appending failures to errs.
func (r *Rule) apply(v *Validator, raw string, errs []FieldError) (string, []FieldError) {
	if r.optional && raw == "" {
		return "", errs
	}

	value := raw
	for _, s := range r.steps {
		switch s.kind {
		case stepSanitize:
			value = s.sanitize(value)
		case stepCheck:
			if !v.checkVar(value, s.tag) {
				errs = append(errs, FieldError{Field: r.field, Message: s.message})
				continue
			}
			if s.normalize != nil {
				value = s.normalize(value)
			}
		}
	}
	return value, errs
}

// Check applies rules in order to form. Failures are collected, never
// short-circuited, so one field can report several messages.
func (v *Validator) Check(form Form, rules ...*Rule) Result {
	res := Result{
		Values: make(map[string]string, len(rules)),
		Lists:  make(map[string][]string),
	}

	for _, r := range rules {
		if r.each {
			raw := form.Values(r.field)
			out := make([]string, 0, len(raw))
			for _, item := range raw {
				var sanitized string
				sanitized, res.Errors = r.apply(v, item, res.Errors)
				out = append(out, sanitized)
			}
			res.Lists[r.field] = out
			continue
		}

		res.Values[r.field], res.Errors = r.apply(v, form.Get(r.field), res.Errors)
	}

	return res
}
