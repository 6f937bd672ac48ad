package store

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort selects the field and direction of a listing.
// The zero value uses the collection's natural key in ascending order.
type Sort struct {
	Field      string
	Descending bool
}

// Sortable fields per collection. The first entry is the natural key.
var (
	AuthorSortFields = []string{"family_name", "first_name", "date_of_birth", "date_of_death"}
	GenreSortFields  = []string{"name"}
	BookSortFields   = []string{"title", "isbn"}
	CopySortFields   = []string{"imprint", "status", "due_back"}
)

// Resolve fills in the natural key and rejects unknown fields.
func (s Sort) Resolve(allowed []string) (Sort, error) {
	if s.Field == "" {
		s.Field = allowed[0]
		return s, nil
	}
	if !slices.Contains(allowed, s.Field) {
		return s, ErrInvalidInput.WithMessage("cannot sort by " + s.Field)
	}
	return s, nil
}

// sortBy orders items by key using English collation (case-insensitive),
// breaking ties by ID so results are stable across calls.
func sortBy[T any](items []*T, s Sort, key func(*T, string) string, id func(*T) string) {
	col := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(items, func(a, b *T) int {
		c := col.CompareString(key(a, s.Field), key(b, s.Field))
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if s.Descending {
			return -c
		}
		return c
	})
}
