// Package score evaluates a query tree against a document and ranks the hits.
package score

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/docfind/internal/domain/search/fuzzy"
	"github.com/kailas-cloud/docfind/internal/domain/search/query"
	"github.com/kailas-cloud/docfind/internal/domain/search/result"
	"github.com/kailas-cloud/docfind/internal/domain/search/token"
)

// Scorer evaluates query trees. It holds only configuration and is safe for
// concurrent use.
type Scorer struct {
	weights Weights
	policy  fuzzy.Policy
}

// NewScorer creates a Scorer.
func NewScorer(w Weights, p fuzzy.Policy) *Scorer {
	return &Scorer{weights: w, policy: p}
}

// Evaluation is the outcome of scoring one document.
// Spans are original-text offsets, merged and ordered.
type Evaluation struct {
	Matched bool
	Score   float64
	Spans   []result.Span
}

// hit is a canonical-offset match inside v.fields[field].
type hit struct {
	field int
	start int
	end   int
}

// fieldCount sizes per-field accumulators indexed by result.Field.
const fieldCount = int(result.Body) + 1

// Score evaluates n against v bottom-up:
//   - Term and Wildcard add weight*similarity per matching field;
//   - Phrase adds PhraseBoost*weight per field containing the sequence;
//   - And sums, Or takes the best matching child, Not only gates.
func (s *Scorer) Score(n query.Node, v *View) Evaluation {
	ok, sc, hits := s.eval(n, v)
	if !ok {
		return Evaluation{}
	}
	return Evaluation{Matched: true, Score: sc, Spans: v.spans(hits)}
}

func (s *Scorer) eval(n query.Node, v *View) (bool, float64, []hit) {
	switch n := n.(type) {
	case query.MatchAll:
		return true, 0, nil
	case query.Term:
		if n.Fuzzy() {
			return s.leaf(v, func(t string) (bool, float64) { return s.policy.Match(n.Text(), t) })
		}
		return s.leaf(v, func(t string) (bool, float64) { return fuzzy.Exact(n.Text(), t) })
	case query.Wildcard:
		return s.leaf(v, func(t string) (bool, float64) { return fuzzy.Glob(n.Pattern(), t) })
	case query.Phrase:
		return s.phrase(n, v)
	case query.And:
		var (
			total float64
			hits  []hit
		)
		for _, c := range n.Children() {
			ok, sc, h := s.eval(c, v)
			if !ok {
				return false, 0, nil
			}
			total += sc
			hits = append(hits, h...)
		}
		return true, total, hits
	case query.Or:
		var (
			matched bool
			best    float64
			hits    []hit
		)
		for _, c := range n.Children() {
			ok, sc, h := s.eval(c, v)
			if !ok {
				continue
			}
			matched = true
			best = max(best, sc)
			hits = append(hits, h...)
		}
		return matched, best, hits
	case query.Not:
		ok, _, _ := s.eval(n.Child(), v)
		return !ok, 0, nil
	default:
		return false, 0, nil
	}
}

func (s *Scorer) leaf(v *View, match func(string) (bool, float64)) (bool, float64, []hit) {
	var (
		best    [fieldCount]float64
		matched [fieldCount]bool
		hits    []hit
	)
	for fi, f := range v.fields {
		for _, tok := range f.tokens {
			ok, sim := match(tok.Text)
			if !ok {
				continue
			}
			hits = append(hits, hit{field: fi, start: tok.Start, end: tok.End})
			matched[f.field] = true
			best[f.field] = max(best[f.field], sim)
		}
	}
	if len(hits) == 0 {
		return false, 0, nil
	}
	var total float64
	for f := range fieldCount {
		if matched[f] {
			total += s.weights.For(result.Field(f)) * best[f]
		}
	}
	return true, total, hits
}

func (s *Scorer) phrase(p query.Phrase, v *View) (bool, float64, []hit) {
	terms := p.Terms()
	if len(terms) == 0 {
		return false, 0, nil
	}
	var (
		matched [fieldCount]bool
		hits    []hit
	)
	for fi, f := range v.fields {
		for i := 0; i+len(terms) <= len(f.tokens); i++ {
			if !sequenceAt(f.tokens[i:], terms) {
				continue
			}
			last := f.tokens[i+len(terms)-1]
			hits = append(hits, hit{field: fi, start: f.tokens[i].Start, end: last.End})
			matched[f.field] = true
		}
	}
	if len(hits) == 0 {
		return false, 0, nil
	}
	var total float64
	for f := range fieldCount {
		if matched[f] {
			total += s.weights.PhraseBoost * s.weights.For(result.Field(f))
		}
	}
	return true, total, hits
}

// sequenceAt reports whether terms occur exactly at consecutive positions
// from the start of toks.
func sequenceAt(toks []token.Token, terms []query.Term) bool {
	first := toks[0].Position
	for k, t := range terms {
		if toks[k].Position != first+k || toks[k].Text != t.Text() {
			return false
		}
	}
	return true
}

func (v *View) spans(hits []hit) []result.Span {
	if len(hits) == 0 {
		return nil
	}
	out := make([]result.Span, 0, len(hits))
	for _, h := range hits {
		f := v.fields[h.field]
		start, end := f.text.Original(h.start, h.end)
		out = append(out, result.Span{Field: f.field, Index: f.index, Start: start, End: end})
	}
	return MergeSpans(out)
}

// MergeSpans orders spans by field, index and offset and merges overlapping
// ranges of the same field value. The input slice is reordered in place.
func MergeSpans(spans []result.Span) []result.Span {
	if len(spans) == 0 {
		return spans
	}
	slices.SortFunc(spans, func(a, b result.Span) int {
		return cmp.Or(
			cmp.Compare(a.Field, b.Field),
			cmp.Compare(a.Index, b.Index),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.End, b.End),
		)
	})
	out := spans[:1]
	for _, sp := range spans[1:] {
		last := &out[len(out)-1]
		if sp.Field == last.Field && sp.Index == last.Index && sp.Start < last.End {
			last.End = max(last.End, sp.End)
			continue
		}
		if sp == *last {
			continue
		}
		out = append(out, sp)
	}
	return out
}
