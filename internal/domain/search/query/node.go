// Package query parses raw user queries into an immutable boolean expression
// tree over term, wildcard and phrase leaves.
package query

import (
	"strings"

	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
)

// Node is a parsed query expression. The set of implementations is closed:
// MatchAll, Term, Wildcard, Phrase, And, Or, Not.
type Node interface {
	String() string
	node()
}

// MatchAll matches every document. It is produced for empty queries.
type MatchAll struct{}

// Term is a single canonical word. Fuzzy terms tolerate edits.
type Term struct {
	text  string
	fuzzy bool
}

// Wildcard is a canonical glob pattern: '*' zero or more runes, '?' one rune.
type Wildcard struct {
	pattern string
}

// Phrase is an exact contiguous sequence of terms.
type Phrase struct {
	terms []Term
}

// And matches when every child matches.
type And struct {
	children []Node
}

// Or matches when any child matches.
type Or struct {
	children []Node
}

// Not matches when its child does not.
type Not struct {
	child Node
}

// NewTerm creates a term leaf from a single word; the word is normalized.
func NewTerm(word string, fuzzy bool) Term {
	return Term{text: normalize.Fold(word), fuzzy: fuzzy}
}

// NewWildcard creates a wildcard leaf; the pattern is normalized.
func NewWildcard(pattern string) Wildcard {
	return Wildcard{pattern: normalize.Fold(pattern)}
}

// NewPhrase creates a phrase of exact terms.
func NewPhrase(words ...string) Phrase {
	terms := make([]Term, 0, len(words))
	for _, w := range words {
		terms = append(terms, NewTerm(w, false))
	}
	return Phrase{terms: terms}
}

// NewAnd creates a conjunction. Nested conjunctions are flattened.
func NewAnd(children ...Node) And {
	return And{children: flatten(children, func(n Node) ([]Node, bool) {
		a, ok := n.(And)
		return a.children, ok
	})}
}

// NewOr creates a disjunction. Nested disjunctions are flattened.
func NewOr(children ...Node) Or {
	return Or{children: flatten(children, func(n Node) ([]Node, bool) {
		o, ok := n.(Or)
		return o.children, ok
	})}
}

// NewNot creates a negation.
func NewNot(child Node) Not { return Not{child: child} }

// Text returns the canonical term.
func (t Term) Text() string { return t.text }

// Fuzzy reports whether the term tolerates edits.
func (t Term) Fuzzy() bool { return t.fuzzy }

// Pattern returns the canonical glob pattern.
func (w Wildcard) Pattern() string { return w.pattern }

// Terms returns the phrase terms in order.
func (p Phrase) Terms() []Term { return p.terms }

// Children returns the conjunction operands.
func (a And) Children() []Node { return a.children }

// Children returns the disjunction operands.
func (o Or) Children() []Node { return o.children }

// Child returns the negated node.
func (n Not) Child() Node { return n.child }

func (MatchAll) String() string { return "ALL" }

func (t Term) String() string {
	if t.fuzzy {
		return t.text + "~"
	}
	return t.text
}

func (w Wildcard) String() string { return w.pattern }

func (p Phrase) String() string {
	words := make([]string, len(p.terms))
	for i, t := range p.terms {
		words[i] = t.text
	}
	return `"` + strings.Join(words, " ") + `"`
}

func (a And) String() string { return join(a.children, " AND ") }

func (o Or) String() string { return join(o.children, " OR ") }

func (n Not) String() string { return "NOT " + n.child.String() }

func (MatchAll) node() {}
func (Term) node()     {}
func (Wildcard) node() {}
func (Phrase) node()   {}
func (And) node()      {}
func (Or) node()       {}
func (Not) node()      {}

func join(children []Node, sep string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func flatten(children []Node, same func(Node) ([]Node, bool)) []Node {
	out := make([]Node, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		if nested, ok := same(c); ok {
			out = append(out, nested...)
			continue
		}
		out = append(out, c)
	}
	return out
}
