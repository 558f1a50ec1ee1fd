// Package fuzzy decides whether a query term matches a document term despite
// a bounded number of character edits.
package fuzzy

import (
	"fmt"
	"path"
	"unicode/utf8"
)

// Policy sets how many edits a query term of a given rune length may absorb.
// Terms up to ExactMaxLen must match exactly, terms up to OneEditMaxLen allow
// one edit, longer terms allow MaxEdits.
type Policy struct {
	ExactMaxLen   int
	OneEditMaxLen int
	MaxEdits      int
}

// DefaultPolicy: length <=3 exact, 4-6 one edit, >=7 two edits.
func DefaultPolicy() Policy {
	return Policy{ExactMaxLen: 3, OneEditMaxLen: 6, MaxEdits: 2}
}

// Validate checks that the thresholds are consistent.
func (p Policy) Validate() error {
	if p.ExactMaxLen < 0 {
		return fmt.Errorf("exact_max_len must not be negative")
	}
	if p.OneEditMaxLen < p.ExactMaxLen {
		return fmt.Errorf("one_edit_max_len (%d) must be >= exact_max_len (%d)", p.OneEditMaxLen, p.ExactMaxLen)
	}
	if p.MaxEdits < 1 {
		return fmt.Errorf("max_edits must be at least 1")
	}
	return nil
}

// Allowed returns the edit budget for a query term of n runes.
func (p Policy) Allowed(n int) int {
	switch {
	case n <= p.ExactMaxLen:
		return 0
	case n <= p.OneEditMaxLen:
		return 1
	default:
		return p.MaxEdits
	}
}

// Match reports whether docTerm is within the edit budget of queryTerm and
// the similarity 1 - distance/max(len). An empty query term never matches.
func (p Policy) Match(queryTerm, docTerm string) (bool, float64) {
	if queryTerm == "" {
		return false, 0
	}
	if queryTerm == docTerm {
		return true, 1
	}
	q := []rune(queryTerm)
	d := []rune(docTerm)
	limit := p.Allowed(len(q))
	dist, ok := boundedDistance(q, d, limit)
	if !ok {
		return false, 0
	}
	return true, similarity(dist, len(q), len(d))
}

// Exact matches without edits; used for phrase terms.
func Exact(queryTerm, docTerm string) (bool, float64) {
	if queryTerm == "" || queryTerm != docTerm {
		return false, 0
	}
	return true, 1
}

// Distance returns the Levenshtein distance between a and b over runes.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	d, _ := boundedDistance(ra, rb, max(len(ra), len(rb)))
	return d
}

// Similarity returns 1 - Distance(a, b)/max(len(a), len(b)), 1 for two
// empty strings.
func Similarity(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	return similarity(Distance(a, b), la, lb)
}

// Glob matches a canonical term against a pattern where '*' is zero or more
// runes and '?' exactly one. Matches always have similarity 1. An empty doc
// term matches only the empty pattern.
func Glob(pattern, docTerm string) (bool, float64) {
	if docTerm == "" {
		return pattern == "", boolScore(pattern == "")
	}
	ok, err := path.Match(pattern, docTerm)
	if err != nil || !ok {
		return false, 0
	}
	return true, 1
}

func similarity(dist, la, lb int) float64 {
	m := max(la, lb)
	if m == 0 {
		return 1
	}
	return 1 - float64(dist)/float64(m)
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// boundedDistance computes the Levenshtein distance with two rows, stopping
// once every cell of a row exceeds limit.
func boundedDistance(a, b []rune, limit int) (int, bool) {
	if diff := len(a) - len(b); diff > limit || -diff > limit {
		return 0, false
	}
	if len(a) == 0 {
		return len(b), len(b) <= limit
	}
	if len(b) == 0 {
		return len(a), len(a) <= limit
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > limit {
			return 0, false
		}
		prev, curr = curr, prev
	}
	d := prev[len(b)]
	return d, d <= limit
}
