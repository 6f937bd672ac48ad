package domain

import "time"

// Author is a person credited with one or more books.
type Author struct {
	Record
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
}

// Name returns the display name, "family, first".
func (a Author) Name() string {
	return a.FamilyName + ", " + a.FirstName
}

// URL returns the detail page locator.
func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

// DateOfBirthFormatted returns the birth date for display, "NA" if unknown.
func (a Author) DateOfBirthFormatted() string {
	return FormatDate(a.DateOfBirth, UnknownDate)
}

// DateOfDeathFormatted returns the death date for display, "Alive" if unset.
func (a Author) DateOfDeathFormatted() string {
	return FormatDate(a.DateOfDeath, StillAlive)
}

// DateOfBirthISO returns the birth date as YYYY-MM-DD for form pre-fill.
func (a Author) DateOfBirthISO() string {
	return ISODate(a.DateOfBirth)
}

// DateOfDeathISO returns the death date as YYYY-MM-DD for form pre-fill.
func (a Author) DateOfDeathISO() string {
	return ISODate(a.DateOfDeath)
}

// Lifespan returns "birth - death" using the display placeholders.
func (a Author) Lifespan() string {
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}
