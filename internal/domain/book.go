package domain

// Book is a catalog title. AuthorID and GenreIDs reference other records
// and are resolved at read time.
type Book struct {
	Record
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	ISBN     string   `json:"isbn"`
	AuthorID string   `json:"author"`
	GenreIDs []string `json:"genre"`
}

// URL returns the detail page locator.
func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book is tagged with genreID.
func (b Book) HasGenre(genreID string) bool {
	for _, g := range b.GenreIDs {
		if g == genreID {
			return true
		}
	}
	return false
}
