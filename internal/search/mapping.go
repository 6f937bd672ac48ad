package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// fieldSpec describes one indexed field of SearchDocument.
type fieldSpec struct {
	name     string
	analyzer string // empty for numeric fields
	store    bool
	vectors  bool
}

// catalogFields is the schema behind schemaVersion. Titles and summaries are
// stemmed English; person and genre names are split on letters only; type,
// id and isbn are matched exactly.
var catalogFields = []fieldSpec{
	{name: "name", analyzer: en.AnalyzerName, store: true, vectors: true},
	{name: "summary", analyzer: en.AnalyzerName},
	{name: "author", analyzer: simple.Name, store: true, vectors: true},
	{name: "genres", analyzer: simple.Name, store: true},
	{name: "type", analyzer: keyword.Name, store: true},
	{name: "id", analyzer: keyword.Name},
	{name: "isbn", analyzer: keyword.Name, store: true},
	{name: "created_at", store: true},
	{name: "updated_at", store: true},
}

func buildIndexMapping() mapping.IndexMapping {
	doc := bleve.NewDocumentMapping()
	for _, f := range catalogFields {
		doc.AddFieldMappingsAt(f.name, f.mapping())
	}

	m := bleve.NewIndexMapping()
	m.DefaultAnalyzer = en.AnalyzerName
	m.AddDocumentMapping("_default", doc)
	return m
}

func (f fieldSpec) mapping() *mapping.FieldMapping {
	if f.analyzer == "" {
		fm := bleve.NewNumericFieldMapping()
		fm.Store = f.store
		return fm
	}
	fm := bleve.NewTextFieldMapping()
	fm.Analyzer = f.analyzer
	fm.Store = f.store
	fm.IncludeTermVectors = f.vectors
	return fm
}
