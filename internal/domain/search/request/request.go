package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/docfind/internal/domain/search/filter"
	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/score"
	"github.com/kailas-cloud/docfind/internal/domain/search/sortorder"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in runes.
	MaxQueryLength = 1024
	// MaxPageSize caps any page size regardless of configuration.
	MaxPageSize = 100
)

// Params are the raw, unvalidated search inputs.
// Nil Weights or Fuzzy mean "use the configured defaults".
type Params struct {
	Query    string
	Page     int
	PageSize int
	Order    sortorder.Order
	Filters  filter.Expression
	Weights  *score.Weights
	Fuzzy    *fuzzy.Policy
}

// Request is a validated search query.
type Request struct {
	query    string
	page     int
	pageSize int
	order    sortorder.Order
	filters  filter.Expression
	weights  *score.Weights
	fuzzy    *fuzzy.Policy
}

// New validates and normalizes search parameters.
// The query may be empty (browse). Page < 1 becomes 1; page size < 1 is left
// unset (0) for the caller's default; page size above MaxPageSize is clamped.
func New(p Params) (Request, error) {
	if utf8.RuneCountInString(p.Query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	order := p.Order.OrDefault()
	if !order.IsValid() {
		return Request{}, fmt.Errorf("invalid sort order: %q", p.Order)
	}
	if p.Weights != nil {
		if err := p.Weights.Validate(); err != nil {
			return Request{}, err
		}
	}
	if p.Fuzzy != nil {
		if err := p.Fuzzy.Validate(); err != nil {
			return Request{}, err
		}
	}

	page := max(p.Page, 1)
	size := max(p.PageSize, 0)
	size = min(size, MaxPageSize)

	return Request{
		query:    p.Query,
		page:     page,
		pageSize: size,
		order:    order,
		filters:  p.Filters,
		weights:  p.Weights,
		fuzzy:    p.Fuzzy,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Page returns the requested 1-based page.
func (r *Request) Page() int { return r.page }

// PageSize returns the requested page size, 0 when unset.
func (r *Request) PageSize() int { return r.pageSize }

// Order returns the result ordering.
func (r *Request) Order() sortorder.Order { return r.order }

// Filters returns the pre-scoring filter expression.
func (r *Request) Filters() filter.Expression { return r.filters }

// Weights returns the scoring weights, or fallback when none were given.
func (r *Request) Weights(fallback score.Weights) score.Weights {
	if r.weights == nil {
		return fallback
	}
	return *r.weights
}

// Fuzzy returns the fuzzy policy, or fallback when none was given.
func (r *Request) Fuzzy(fallback fuzzy.Policy) fuzzy.Policy {
	if r.fuzzy == nil {
		return fallback
	}
	return *r.fuzzy
}

// WithPageSize returns a copy with the page size replaced.
func (r *Request) WithPageSize(size int) Request {
	c := *r
	c.pageSize = size
	return c
}
