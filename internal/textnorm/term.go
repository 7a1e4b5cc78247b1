package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Term is a literal pattern matched on token boundaries.
//
// The pattern is quoted with regexp.QuoteMeta before compiling, so skills such as
// "c++" match the literal plus signs instead of acting as quantifiers. Boundaries are
// checked by hand because RE2 \b does not fire between "+" and a following space.
type Term struct {
	literal string
	re      *regexp.Regexp
}

// CompileTerm lowercases pattern and prepares it for boundary matching.
func CompileTerm(pattern string) Term {
	literal := strings.ToLower(strings.TrimSpace(pattern))
	return Term{
		literal: literal,
		re:      regexp.MustCompile(regexp.QuoteMeta(literal)),
	}
}

// Count returns the number of non-overlapping bounded occurrences of the term in text.
func (t Term) Count(text string) int {
	if t.literal == "" || t.re == nil {
		return 0
	}

	count := 0
	for _, loc := range t.re.FindAllStringIndex(text, -1) {
		if boundaryBefore(text, loc[0]) && boundaryAfter(text, loc[1]) {
			count++
		}
	}
	return count
}

// In reports whether the term occurs in text at least once.
func (t Term) In(text string) bool {
	return t.Count(text) > 0
}

func isTermRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isTermRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isTermRune(r)
}
