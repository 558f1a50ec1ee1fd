// Package normalize folds text into the canonical form used for comparison:
// Unicode-decomposed with combining marks removed, đ folded to d, lowercased,
// whitespace collapsed to single spaces and trimmed.
//
// The canonical form keeps a parallel offset table so that a byte range in
// the folded text can be mapped back to the original text for highlighting.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

var combiningMarks = runes.In(unicode.Mn)

// Text is a canonical comparison string with its mapping back to the original.
// starts[i] and ends[i] delimit the original rune that produced canonical byte i.
type Text struct {
	canonical string
	starts    []int
	ends      []int
}

// Normalize folds s into its canonical form. It is total, deterministic and
// idempotent: Normalize(Normalize(s).String()) equals Normalize(s).
func Normalize(s string) Text {
	return fold(s, true)
}

// Fold returns only the canonical string of s.
func Fold(s string) string {
	return fold(s, false).canonical
}

// String returns the canonical form.
func (t Text) String() string { return t.canonical }

// Len returns the canonical length in bytes.
func (t Text) Len() int { return len(t.canonical) }

// IsEmpty reports whether the canonical form is empty.
func (t Text) IsEmpty() bool { return t.canonical == "" }

// Original maps the canonical byte range [start, end) to the byte range of
// the original text it was folded from. Out-of-range bounds are clamped; an
// empty range maps to an empty range at the corresponding position.
func (t Text) Original(start, end int) (int, int) {
	n := len(t.canonical)
	if n == 0 || len(t.starts) != n {
		return 0, 0
	}
	start = max(0, min(start, n-1))
	end = max(start, min(end, n))
	if end == start {
		return t.starts[start], t.starts[start]
	}
	return t.starts[start], t.ends[end-1]
}

func fold(s string, track bool) Text {
	var (
		b          strings.Builder
		starts     []int
		ends       []int
		pending    bool
		spaceStart int
		spaceEnd   int
		lastPiece  int
	)
	b.Grow(len(s))
	if track {
		starts = make([]int, 0, len(s))
		ends = make([]int, 0, len(s))
	}

	emit := func(piece string, from, to int) {
		b.WriteString(piece)
		if track {
			for range len(piece) {
				starts = append(starts, from)
				ends = append(ends, to)
			}
		}
		lastPiece = len(piece)
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		end := i + size

		if unicode.IsSpace(r) {
			if b.Len() > 0 && !pending {
				pending = true
				spaceStart = i
			}
			spaceEnd = end
			i = end
			continue
		}

		folded := foldRune(r)
		if folded == "" {
			// A detached mark belongs to the preceding letter in the original.
			if track && !pending {
				for k := len(ends) - lastPiece; k < len(ends); k++ {
					ends[k] = end
				}
			}
			i = end
			continue
		}
		if pending {
			emit(" ", spaceStart, spaceEnd)
			pending = false
		}
		emit(folded, i, end)
		i = end
	}

	return Text{canonical: b.String(), starts: starts, ends: ends}
}

// foldRune returns the canonical form of a single rune, or "" when the rune
// is a bare combining mark.
func foldRune(r rune) string {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			r += 'a' - 'A'
		}
		return string(r)
	}
	if r == 'đ' || r == 'Đ' {
		return "d"
	}

	decomposed := norm.NFD.String(string(r))
	var b strings.Builder
	for _, c := range decomposed {
		if combiningMarks.Contains(c) {
			continue
		}
		if c == 'đ' || c == 'Đ' {
			c = 'd'
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}
