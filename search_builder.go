package docfind

import (
	"context"
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/engine"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/suggest"
)

// Corpus is a validated, read-only document set that can be searched
// concurrently.
type Corpus struct {
	docs []domdoc.Document
	cfg  engine.Config
}

// NewCorpus validates docs. IDs must be unique and titles non-empty; a zero
// CreatedAt is set to now.
func NewCorpus(docs []Document) (*Corpus, error) {
	out := make([]domdoc.Document, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		doc, err := toDomain(d)
		if err != nil {
			return nil, fmt.Errorf("document %d (%q): %w", i, d.ID, err)
		}
		if _, dup := seen[doc.ID()]; dup {
			return nil, fmt.Errorf("document %d: duplicate ID %q", i, doc.ID())
		}
		seen[doc.ID()] = struct{}{}
		out[i] = doc
	}
	return &Corpus{docs: out, cfg: engine.DefaultConfig()}, nil
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Search starts a search over the corpus.
func (c *Corpus) Search(query string) *SearchBuilder {
	return &SearchBuilder{
		query: query,
		run: func(ctx context.Context, req *request.Request) (result.Page, error) {
			return engine.Search(ctx, c.docs, *req, c.cfg)
		},
	}
}

// Suggestion is a completion candidate in its original spelling.
// Kind is "title" or "tag".
type Suggestion struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// Suggest returns titles, then tags, containing q (folded, at least two
// runes). limit < 1 means ten.
func (c *Corpus) Suggest(q string, limit int) []Suggestion {
	return fromSuggestions(suggest.Suggest(c.docs, q, limit))
}

func fromSuggestions(in []suggest.Suggestion) []Suggestion {
	out := make([]Suggestion, len(in))
	for i, s := range in {
		out[i] = Suggestion{Text: s.Text, Kind: string(s.Kind)}
	}
	return out
}

// SearchBuilder is a fluent builder for a single search.
type SearchBuilder struct {
	query    string
	settings searchSettings
	run      func(ctx context.Context, req *request.Request) (result.Page, error)
}

// Page sets the 1-based page number.
func (b *SearchBuilder) Page(n int) *SearchBuilder {
	b.settings.page = n
	return b
}

// PageSize sets the number of results per page.
func (b *SearchBuilder) PageSize(n int) *SearchBuilder {
	b.settings.pageSize = n
	return b
}

// Sort sets the result ordering.
func (b *SearchBuilder) Sort(o SortOrder) *SearchBuilder {
	b.settings.order = o
	return b
}

// Tag requires a tag; call it again for more.
func (b *SearchBuilder) Tag(tag string) *SearchBuilder {
	b.settings.tags = append(b.settings.tags, tag)
	return b
}

// Between limits results to documents created within [from, to].
func (b *SearchBuilder) Between(from, to time.Time) *SearchBuilder {
	WithCreatedRange(from, to)(&b.settings)
	return b
}

// Weights overrides the field weights.
func (b *SearchBuilder) Weights(w Weights) *SearchBuilder {
	b.settings.weights = &w
	return b
}

// Fuzzy overrides the typo tolerance.
func (b *SearchBuilder) Fuzzy(p FuzzyPolicy) *SearchBuilder {
	b.settings.fuzzy = &p
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (PageResult, error) {
	req, err := b.settings.request(b.query)
	if err != nil {
		return PageResult{}, fmt.Errorf("search: %w", err)
	}
	res, err := b.run(ctx, &req)
	if err != nil {
		return PageResult{}, fmt.Errorf("search: %w", err)
	}
	return fromPage(res), nil
}
