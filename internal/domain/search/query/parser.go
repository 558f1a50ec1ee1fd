package query

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/docfind/internal/domain"
	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
	"github.com/kailas-cloud/docfind/internal/domain/search/token"
)

type kind int

const (
	kindWord kind = iota
	kindPhrase
	kindAnd
	kindOr
	kindNot
	kindLParen
	kindRParen
)

type lexeme struct {
	kind kind
	text string
	pos  int
}

// Parse turns a raw query into an expression tree.
//
// Bare words are fuzzy terms, "quoted text" is an exact phrase, words with
// '*' or '?' are wildcards. AND, OR and NOT are case-insensitive keywords with
// precedence NOT > AND > OR; adjacent operands are joined with AND and
// parentheses group. Dangling operators and empty groups are ignored.
//
// An empty query yields MatchAll. Parse fails only on an unterminated quote
// or an unbalanced parenthesis, with a *domain.QuerySyntaxError carrying the
// rune offset of the offending character.
func Parse(raw string) (Node, error) {
	lexemes, err := lex(raw)
	if err != nil {
		return nil, err
	}
	p := &parser{lexemes: lexemes}
	root := p.parseOr()
	if root == nil {
		return MatchAll{}, nil
	}
	return root, nil
}

func lex(raw string) ([]lexeme, error) {
	var (
		out    []lexeme
		parens []int
	)
	runes := []rune(raw)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			parens = append(parens, i)
			out = append(out, lexeme{kind: kindLParen, text: "(", pos: i})
			i++
		case r == ')':
			if len(parens) == 0 {
				return nil, domain.NewQuerySyntaxError(i, ")", "unexpected closing parenthesis")
			}
			parens = parens[:len(parens)-1]
			out = append(out, lexeme{kind: kindRParen, text: ")", pos: i})
			i++
		case r == '"':
			end := i + 1
			for end < len(runes) && runes[end] != '"' {
				end++
			}
			if end == len(runes) {
				return nil, domain.NewQuerySyntaxError(i, `"`, "unterminated quote")
			}
			out = append(out, lexeme{kind: kindPhrase, text: string(runes[i+1 : end]), pos: i})
			i = end + 1
		default:
			end := i
			for end < len(runes) && !isBoundary(runes[end]) {
				end++
			}
			word := string(runes[i:end])
			out = append(out, lexeme{kind: keyword(word), text: word, pos: i})
			i = end
		}
	}
	if len(parens) > 0 {
		return nil, domain.NewQuerySyntaxError(parens[0], "(", "unclosed parenthesis")
	}
	return out, nil
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '"'
}

func keyword(word string) kind {
	switch strings.ToUpper(word) {
	case "AND":
		return kindAnd
	case "OR":
		return kindOr
	case "NOT":
		return kindNot
	default:
		return kindWord
	}
}

// parser is a recursive-descent parser over balanced lexemes.
type parser struct {
	lexemes []lexeme
	pos     int
}

func (p *parser) peek() (lexeme, bool) {
	if p.pos >= len(p.lexemes) {
		return lexeme{}, false
	}
	return p.lexemes[p.pos], true
}

// parseOr: and { OR and }
func (p *parser) parseOr() Node {
	var children []Node
	children = append(children, p.parseAnd())
	for {
		lx, ok := p.peek()
		if !ok || lx.kind != kindOr {
			break
		}
		p.pos++
		children = append(children, p.parseAnd())
	}
	return collapse(NewOr(children...).children, func(c []Node) Node { return Or{children: c} })
}

// parseAnd: unary { [AND] unary }
func (p *parser) parseAnd() Node {
	var children []Node
	for {
		lx, ok := p.peek()
		if !ok || lx.kind == kindOr || lx.kind == kindRParen {
			break
		}
		if lx.kind == kindAnd {
			p.pos++
			continue
		}
		children = append(children, p.parseUnary())
	}
	return collapse(NewAnd(children...).children, func(c []Node) Node { return And{children: c} })
}

// parseUnary: NOT unary | primary
func (p *parser) parseUnary() Node {
	lx, ok := p.peek()
	if !ok || lx.kind != kindNot {
		return p.parsePrimary()
	}
	p.pos++
	child := p.parseUnary()
	switch c := child.(type) {
	case nil:
		return nil
	case Not:
		return c.child
	default:
		return Not{child: child}
	}
}

// parsePrimary: '(' or-expr ')' | phrase | word
func (p *parser) parsePrimary() Node {
	lx, ok := p.peek()
	if !ok {
		return nil
	}
	switch lx.kind {
	case kindLParen:
		p.pos++
		inner := p.parseOr()
		if next, ok := p.peek(); ok && next.kind == kindRParen {
			p.pos++
		}
		return inner
	case kindPhrase:
		p.pos++
		return phraseNode(lx.text)
	case kindWord:
		p.pos++
		return wordNode(lx.text)
	default:
		return nil
	}
}

func phraseNode(text string) Node {
	words := token.Split(normalize.Fold(text))
	if len(words) == 0 {
		return nil
	}
	terms := make([]Term, len(words))
	for i, w := range words {
		terms[i] = Term{text: w}
	}
	return Phrase{terms: terms}
}

func wordNode(word string) Node {
	folded := normalize.Fold(word)
	if strings.ContainsAny(folded, "*?") {
		return wildcardNode(folded)
	}
	words := token.Split(folded)
	switch len(words) {
	case 0:
		return nil
	case 1:
		return Term{text: words[0], fuzzy: true}
	default:
		terms := make([]Term, len(words))
		for i, w := range words {
			terms[i] = Term{text: w}
		}
		return Phrase{terms: terms}
	}
}

// wildcardNode splits folded on separator runes the way documents are
// tokenized, so "e-ma*" matches the tokens "e" and "mail". Segments carrying a
// glob become Wildcards, plain ones exact Terms, joined by AND. A segment made
// only of metacharacters constrains nothing and is dropped.
func wildcardNode(folded string) Node {
	segments := strings.FieldsFunc(folded, func(r rune) bool {
		return r != '*' && r != '?' && !token.IsWordRune(r)
	})
	var parts []Node
	for _, seg := range segments {
		switch {
		case !strings.ContainsFunc(seg, token.IsWordRune):
			continue
		case strings.ContainsAny(seg, "*?"):
			parts = append(parts, Wildcard{pattern: seg})
		default:
			parts = append(parts, Term{text: seg})
		}
	}
	return collapse(parts, func(c []Node) Node { return And{children: c} })
}

func collapse(children []Node, build func([]Node) Node) Node {
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return build(children)
	}
}
