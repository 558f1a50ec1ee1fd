package docfind

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/docfind/internal/domain/search/filter"
	"github.com/kailas-cloud/docfind/internal/domain/search/request"
)

// SearchOption configures a single search.
type SearchOption func(*searchSettings)

type searchSettings struct {
	page     int
	pageSize int
	order    SortOrder
	tags     []string
	from, to *time.Time
	weights  *Weights
	fuzzy    *FuzzyPolicy
}

// WithSort sets the result ordering (default relevance).
func WithSort(o SortOrder) SearchOption {
	return func(s *searchSettings) { s.order = o }
}

// WithTags keeps only documents carrying every given tag, compared folded.
func WithTags(tags ...string) SearchOption {
	return func(s *searchSettings) { s.tags = append(s.tags, tags...) }
}

// WithCreatedRange keeps documents created within [from, to] by UTC calendar
// day. A zero bound is open.
func WithCreatedRange(from, to time.Time) SearchOption {
	return func(s *searchSettings) {
		if !from.IsZero() {
			s.from = &from
		}
		if !to.IsZero() {
			s.to = &to
		}
	}
}

// WithWeights overrides the field weights for this search.
func WithWeights(w Weights) SearchOption {
	return func(s *searchSettings) { s.weights = &w }
}

// WithFuzzy overrides the typo tolerance for this search.
func WithFuzzy(p FuzzyPolicy) SearchOption {
	return func(s *searchSettings) { s.fuzzy = &p }
}

// Search validates corpus and returns page `page` (1-based) of the matches
// for query, pageSize per page. An out-of-range page is clamped; pageSize < 1
// means five per page. The only query error is a *QuerySyntaxError.
func Search(
	ctx context.Context, corpus []Document, query string, page, pageSize int, opts ...SearchOption,
) (PageResult, error) {
	c, err := NewCorpus(corpus)
	if err != nil {
		return PageResult{}, err
	}
	b := c.Search(query).Page(page).PageSize(pageSize)
	for _, o := range opts {
		o(&b.settings)
	}
	return b.Do(ctx)
}

func (s *searchSettings) request(query string) (request.Request, error) {
	filters, err := filter.NewExpression(s.tags, s.from, s.to)
	if err != nil {
		return request.Request{}, fmt.Errorf("filters: %w", err)
	}
	req, err := request.New(request.Params{
		Query:    query,
		Page:     s.page,
		PageSize: s.pageSize,
		Order:    s.order,
		Filters:  filters,
		Weights:  s.weights,
		Fuzzy:    s.fuzzy,
	})
	if err != nil {
		return request.Request{}, fmt.Errorf("request: %w", err)
	}
	return req, nil
}
