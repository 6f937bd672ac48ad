package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	bsearch "github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string    // User's search query
	Types []DocType // Document types to include (empty = all)

	Limit  int
	Offset int

	SortBy    string // "relevance", "name", "recent"
	SortOrder string // "asc", "desc"

	IncludeFacets bool // Count hits per document type
	Highlight     bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Types  []FacetCount `json:"types,omitempty"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Type       DocType           `json:"type"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Author     string            `json:"author,omitempty"`
	ISBN       string            `json:"isbn,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// URL returns the catalog detail page for the hit.
func (h SearchHit) URL() string {
	return "/catalog/" + string(h.Type) + "/" + h.ID
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search runs params against the index. Limit and Offset page through the
// hits; the type facet is counted over all matches.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	req.Fields = []string{"id", "type", "name", "author", "isbn"}
	addSorting(req, params)
	if params.IncludeFacets {
		req.AddFacet("type", bleve.NewFacetRequest("type", len(allDocTypes)))
	}
	if params.Highlight {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("name")
		req.Highlight.AddField("author")
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		out.Hits = append(out.Hits, toHit(h))
	}
	if f, ok := res.Facets["type"]; ok && f.Terms != nil {
		for _, t := range f.Terms.Terms() {
			out.Types = append(out.Types, FacetCount{Value: t.Term, Count: t.Count})
		}
	}
	return out, nil
}

var allDocTypes = []DocType{DocTypeAuthor, DocTypeBook, DocTypeGenre}

func toHit(m *bsearch.DocumentMatch) SearchHit {
	field := func(name string) string {
		v, _ := m.Fields[name].(string)
		return v
	}

	hit := SearchHit{
		ID:     m.ID,
		Score:  m.Score,
		Type:   DocType(field("type")),
		Name:   field("name"),
		Author: field("author"),
		ISBN:   field("isbn"),
	}
	for name, frags := range m.Fragments {
		if len(frags) == 0 {
			continue
		}
		if hit.Highlights == nil {
			hit.Highlights = make(map[string]string, len(m.Fragments))
		}
		hit.Highlights[name] = frags[0]
	}
	return hit
}

func match(q, field string, boost float64) query.Query {
	mq := bleve.NewMatchQuery(q)
	mq.SetField(field)
	mq.SetBoost(boost)
	return mq
}

func term(t, field string, boost float64) *query.TermQuery {
	tq := bleve.NewTermQuery(t)
	tq.SetField(field)
	tq.SetBoost(boost)
	return tq
}

// buildSearchQuery weights name matches over denormalized author and genre
// names, and those over summaries. An exact ISBN outranks everything.
// Single words also get fuzzy and prefix matches on the name.
func buildSearchQuery(params SearchParams) query.Query {
	var must []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		should := []query.Query{
			match(q, "name", 3.0),
			match(q, "author", 1.5),
			match(q, "genres", 1.0),
			match(q, "summary", 0.5),
			term(q, "isbn", 5.0),
		}

		if !strings.ContainsAny(q, " \t") {
			lower := strings.ToLower(q)
			fuzzy := bleve.NewFuzzyQuery(lower)
			fuzzy.SetFuzziness(1)
			fuzzy.SetField("name")
			fuzzy.SetBoost(0.8)
			should = append(should, fuzzy)

			if len(lower) > 1 {
				prefix := bleve.NewPrefixQuery(lower)
				prefix.SetField("name")
				prefix.SetBoost(0.5)
				should = append(should, prefix)
			}
		}
		must = append(must, bleve.NewDisjunctionQuery(should...))
	}

	if len(params.Types) > 0 {
		types := make([]query.Query, 0, len(params.Types))
		for _, t := range params.Types {
			types = append(types, term(string(t), "type", 1.0))
		}
		must = append(must, bleve.NewDisjunctionQuery(types...))
	}

	switch len(must) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return must[0]
	default:
		return bleve.NewConjunctionQuery(must...)
	}
}

func addSorting(req *bleve.SearchRequest, params SearchParams) {
	field := ""
	desc := params.SortOrder == "desc"
	switch params.SortBy {
	case "name":
		field = "name"
	case "recent":
		field = "created_at"
		desc = params.SortOrder != "asc"
	default:
		req.SortBy([]string{"-_score"})
		return
	}
	if desc {
		field = "-" + field
	}
	req.SortBy([]string{field})
}
