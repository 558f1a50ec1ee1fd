// Package docfind is a diacritic-insensitive document search library for
// Vietnamese text. It parses boolean, phrase and wildcard queries, tolerates
// typos, ranks by weighted fields and returns clamped pages with highlights.
//
// Search a slice directly with Search, keep a validated Corpus for repeated
// queries, or connect a Client to Redis/Valkey for a persistent corpus.
package docfind

import (
	"time"

	"github.com/kailas-cloud/docfind/internal/domain"
	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
	"github.com/kailas-cloud/docfind/internal/domain/search/sortorder"
)

// Document is a searchable document.
type Document struct {
	ID        string    `yaml:"id" json:"id"`
	Title     string    `yaml:"title" json:"title"`
	Body      string    `yaml:"body" json:"body,omitempty"`
	Tags      []string  `yaml:"tags" json:"tags,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// Span is a highlighted range of the original field text.
// Index is the tag position for the "tags" field and 0 otherwise.
type Span struct {
	Field string `json:"field"`
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// Match is a ranked hit.
type Match struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
	Spans    []Span   `json:"spans"`
}

// PageResult is one page of ranked matches. Page is always within
// [1, TotalPages]; Clamped reports that RequestedPage was out of range.
type PageResult struct {
	Items         []Match `json:"items"`
	Page          int     `json:"page"`
	PageSize      int     `json:"page_size"`
	TotalPages    int     `json:"total_pages"`
	TotalItems    int     `json:"total_items"`
	RequestedPage int     `json:"requested_page"`
	Clamped       bool    `json:"clamped"`
}

// SortOrder is the result ordering.
type SortOrder = sortorder.Order

// Sort orders.
const (
	SortRelevance = sortorder.Relevance
	SortDate      = sortorder.Date
	SortTitle     = sortorder.Title
)

// Weights are per-field scoring weights plus the phrase boost.
type Weights = score.Weights

// FuzzyPolicy sets how many typos a query term tolerates by its length.
type FuzzyPolicy = fuzzy.Policy

// QuerySyntaxError reports an unterminated quote and where it starts.
type QuerySyntaxError = domain.QuerySyntaxError

// ErrQuerySyntax is wrapped by every *QuerySyntaxError.
var ErrQuerySyntax = domain.ErrQuerySyntax

// DefaultWeights returns title 3, tag 2, body 1 and phrase boost 1.5.
func DefaultWeights() Weights { return score.DefaultWeights() }

// DefaultFuzzyPolicy returns exact matching up to 3 runes, one edit up to 6
// and two edits beyond.
func DefaultFuzzyPolicy() FuzzyPolicy { return fuzzy.DefaultPolicy() }

// Normalize folds s the way queries and fields are compared: lowercase,
// diacritics removed, đ as d, whitespace collapsed.
func Normalize(s string) string { return normalize.Fold(s) }

func toDomain(d Document) (domdoc.Document, error) {
	return domdoc.New(d.ID, d.Title, d.Body, d.Tags, d.CreatedAt, domdoc.Attachment{})
}

func fromDomain(d *domdoc.Document) Document {
	return Document{
		ID:        d.ID(),
		Title:     d.Title(),
		Body:      d.Body(),
		Tags:      d.Tags(),
		CreatedAt: d.CreatedAt(),
	}
}

func fromPage(p result.Page) PageResult {
	items := make([]Match, len(p.Items))
	for i := range p.Items {
		m := &p.Items[i]
		doc := m.Document()
		spans := make([]Span, len(m.Spans()))
		for j, sp := range m.Spans() {
			spans[j] = Span{
				Field: sp.Field.String(),
				Index: sp.Index,
				Start: sp.Start,
				End:   sp.End,
				Text:  sp.Text(&doc),
			}
		}
		items[i] = Match{Document: fromDomain(&doc), Score: m.Score(), Spans: spans}
	}
	return PageResult{
		Items:         items,
		Page:          p.Page,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalItems:    p.TotalItems,
		RequestedPage: p.RequestedPage,
		Clamped:       p.Clamped(),
	}
}
