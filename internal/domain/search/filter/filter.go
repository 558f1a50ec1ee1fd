package filter

import (
	"fmt"
	"slices"
	"time"

	"github.com/kailas-cloud/docfind/internal/domain/document"
	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
)

// MaxTags is the maximum number of tag conditions.
const MaxTags = 32

// DateLayout is the accepted date format for created-at bounds.
const DateLayout = "2006-01-02"

// Expression gates documents before scoring: every tag must be present
// (compared folded) and CreatedAt must fall within [from, to] by calendar day.
type Expression struct {
	tags []string
	from *time.Time
	to   *time.Time
}

// NewExpression validates and creates a filter Expression.
// from and to are truncated to UTC days; either may be nil.
func NewExpression(tags []string, from, to *time.Time) (Expression, error) {
	if len(tags) > MaxTags {
		return Expression{}, fmt.Errorf("too many tag filters (max %d)", MaxTags)
	}
	var folded []string
	for _, t := range tags {
		f := normalize.Fold(t)
		if f == "" || slices.Contains(folded, f) {
			continue
		}
		folded = append(folded, f)
	}

	from, to = day(from), day(to)
	if from != nil && to != nil && to.Before(*from) {
		return Expression{}, fmt.Errorf("date range end %s is before start %s",
			to.Format(DateLayout), from.Format(DateLayout))
	}
	return Expression{tags: folded, from: from, to: to}, nil
}

// ParseDate parses a YYYY-MM-DD bound; empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &t, nil
}

// Tags returns the folded tag conditions.
func (e Expression) Tags() []string { return e.tags }

// From returns the inclusive lower day bound.
func (e Expression) From() *time.Time { return e.from }

// To returns the inclusive upper day bound.
func (e Expression) To() *time.Time { return e.to }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool {
	return len(e.tags) == 0 && e.from == nil && e.to == nil
}

// Matches reports whether doc passes every condition.
func (e Expression) Matches(doc *document.Document) bool {
	created := doc.CreatedAt().UTC()
	if e.from != nil && created.Before(*e.from) {
		return false
	}
	if e.to != nil && !created.Before(e.to.AddDate(0, 0, 1)) {
		return false
	}
	if len(e.tags) == 0 {
		return true
	}
	have := make([]string, 0, len(doc.Tags()))
	for _, t := range doc.Tags() {
		have = append(have, normalize.Fold(t))
	}
	for _, want := range e.tags {
		if !slices.Contains(have, want) {
			return false
		}
	}
	return true
}

func day(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	d := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
