package domain

// Genre classifies books. Names are unique across the catalog.
type Genre struct {
	Record
	Name string `json:"name"`
}

// URL returns the detail page locator.
func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
