package validation_test

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
	"github.com/agentraghav/local-library/internal/validation"
)

type searchRequest struct {
	Query string `json:"q" validate:"required,max=200"`
	Limit int    `json:"limit" validate:"gte=0,lte=100"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(searchRequest{Query: "dune", Limit: 10})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	err := v.Validate(searchRequest{Query: "", Limit: 500})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["q"])
	assert.Equal(t, "must be less than or equal to 100", details["limit"])
}

func authorRules() []*validation.Rule {
	return []*validation.Rule{
		validation.Field("first_name").Trim().
			NotEmpty("First name must be specified.").
			MaxLen(200, "First name is too long.").
			Alphanumeric("First name has non-alphanumeric characters."),
		validation.Field("date_of_birth").Optional().ISODate("Invalid date of birth"),
	}
}

func TestCheck_ValidFormIsSanitized(t *testing.T) {
	v := validation.New()

	res := v.Check(validation.Form{
		"first_name":    {"  Frank  "},
		"date_of_birth": {"1920-10-08T00:00:00Z"},
	}, authorRules()...)

	require.True(t, res.Valid(), res.Errors)
	assert.Equal(t, "Frank", res.Get("first_name"))
	assert.Equal(t, "1920-10-08", res.Get("date_of_birth"))
}

func TestCheck_CollectsEveryFailureInOrder(t *testing.T) {
	v := validation.New()

	res := v.Check(validation.Form{"first_name": {"   "}}, authorRules()...)

	require.False(t, res.Valid())
	assert.Equal(t, []string{
		"First name must be specified.",
		"First name has non-alphanumeric characters.",
	}, res.Messages("first_name"))
}

func TestCheck_MaxLength(t *testing.T) {
	v := validation.New()

	res := v.Check(validation.Form{"first_name": {strings.Repeat("a", 201)}}, authorRules()...)
	assert.Equal(t, []string{"First name is too long."}, res.Messages("first_name"))

	res = v.Check(validation.Form{"first_name": {strings.Repeat("a", 200)}}, authorRules()...)
	assert.True(t, res.Valid())
}

func TestCheck_OptionalDateFalsySkip(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name     string
		form     validation.Form
		wantMsgs []string
	}{
		{"absent", validation.Form{"first_name": {"Frank"}}, nil},
		{"empty", validation.Form{"first_name": {"Frank"}, "date_of_birth": {""}}, nil},
		{"not a date", validation.Form{"first_name": {"Frank"}, "date_of_birth": {"soon"}}, []string{"Invalid date of birth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Check(tt.form, authorRules()...)
			assert.Equal(t, tt.wantMsgs, res.Messages("date_of_birth"))
			if tt.wantMsgs == nil {
				assert.Equal(t, "", res.Get("date_of_birth"))
			}
		})
	}
}

func TestCheck_OneOf(t *testing.T) {
	v := validation.New()
	rule := validation.Field("status").OneOf("Invalid status", "Available", "Loaned")

	assert.True(t, v.Check(validation.Form{"status": {"Loaned"}}, rule).Valid())
	assert.False(t, v.Check(validation.Form{"status": {"Lost"}}, rule).Valid())
}

func TestCheck_EachNormalizesMultiValuedField(t *testing.T) {
	v := validation.New()
	rule := validation.Field("genre").Each().Trim()

	tests := []struct {
		name string
		form url.Values
		want []string
	}{
		{"absent", url.Values{}, []string{}},
		{"single", url.Values{"genre": {"genre-1"}}, []string{"genre-1"}},
		{"multiple", url.Values{"genre": {"genre-1", " genre-2 "}}, []string{"genre-1", "genre-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Check(validation.FromValues(tt.form), rule)
			require.True(t, res.Valid())
			assert.Equal(t, tt.want, res.List("genre"))
		})
	}
}

func TestCheck_KeepsMarkupVerbatim(t *testing.T) {
	v := validation.New()

	res := v.Check(validation.Form{"q": {` <b>"x"</b> `}}, validation.Field("q").Trim().NotEmpty("required"))
	require.True(t, res.Valid())
	assert.Equal(t, `<b>"x"</b>`, res.Get("q"))
}

func TestCheck_MinLen(t *testing.T) {
	v := validation.New()
	rule := validation.Field("name").Trim().MinLen(3, "too short")

	res := v.Check(validation.Form{"name": {" ab "}}, rule)
	assert.Equal(t, []string{"too short"}, res.Messages("name"))

	res = v.Check(validation.Form{"name": {"abc"}}, rule)
	assert.True(t, res.Valid())
}

func TestForm_Values(t *testing.T) {
	f := validation.Form{}
	assert.Equal(t, []string{}, f.Values("genre"))
	assert.Equal(t, "", f.Get("genre"))

	f.Set("genre", "a", "b")
	assert.Equal(t, []string{"a", "b"}, f.Values("genre"))
	assert.Equal(t, "a", f.Get("genre"))
}
