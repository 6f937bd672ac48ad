// Package validation applies per-field rules to submitted catalog forms and
// validates typed request structs, both on top of go-playground/validator/v10.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agentraghav/local-library/internal/domain"
	domainerrors "github.com/agentraghav/local-library/internal/errors"
)

// Validator owns a configured validator.Validate. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)

	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	return &Validator{v: v}
}

// jsonName reports fields under their json key so messages match request bodies.
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

// Validate checks the validate tags on s. Failures come back as a
// CodeValidation error whose details map field names to messages.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = describe(fe)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

func (v *Validator) checkVar(value, tag string) bool {
	return v.v.Var(value, tag) == nil
}

var tagMessages = map[string]string{
	"required": "is required",
	"alphanum": "must contain only letters and digits",
	"isodate":  "must be an ISO-8601 date",
	"min":      "must be at least %s characters",
	"max":      "must not exceed %s characters",
	"oneof":    "must be one of: %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
}

func describe(fe validator.FieldError) string {
	msg, ok := tagMessages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	return strings.Replace(msg, "%s", fe.Param(), 1)
}
