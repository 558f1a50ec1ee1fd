// Package token splits canonical text into searchable terms.
package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/docfind/internal/domain/search/normalize"
)

// Token is a term of a canonical text. Start and End are byte offsets into
// the canonical string; Position is the ordinal of the token within the text.
type Token struct {
	Text     string
	Position int
	Start    int
	End      int
}

// IsWordRune reports whether r belongs to a term. Everything else,
// including literal '*' and '?', separates terms.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// Tokenize splits t into maximal runs of word runes. Empty input yields nil.
func Tokenize(t normalize.Text) []Token {
	return scan(t.String())
}

// Split returns just the term strings of an already canonical string.
func Split(canonical string) []string {
	toks := scan(canonical)
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func scan(s string) []Token {
	var (
		toks  []Token
		start = -1
	)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if IsWordRune(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			toks = append(toks, Token{Text: s[start:i], Position: len(toks), Start: start, End: i})
			start = -1
		}
		i += size
	}
	if start >= 0 {
		toks = append(toks, Token{Text: s[start:], Position: len(toks), Start: start, End: len(s)})
	}
	return toks
}
