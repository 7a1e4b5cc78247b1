package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// inWordPunctuation is kept inside tokens so that c++, c#, node.js, ci/cd and
	// scikit-learn survive tokenization.
	inWordPunctuation = "+#./-"
	trimmedEdges      = "./-"
)

// Normalizer prepares text for skill pattern matching. It is safe for concurrent use.
type Normalizer struct {
	lemmatizer *Lemmatizer
}

// New returns a Normalizer whose lemmatizer leaves the protected tokens untouched.
func New(protected ...string) *Normalizer {
	return &Normalizer{lemmatizer: NewLemmatizer(protected...)}
}

// Normalize lowercases text, removes punctuation and stop-words, lemmatizes the
// remaining tokens and joins them with single spaces.
//
// Normalize is not idempotent in general. Applying it twice yields the same result
// only for input that is already lowercase ASCII alphanumeric normalized text.
func (n *Normalizer) Normalize(text string) string {
	tokens := Tokenize(text)
	kept := tokens[:0]
	for _, token := range tokens {
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		kept = append(kept, n.lemmatizer.Lemma(token))
	}
	return strings.Join(kept, " ")
}

// Tokenize folds text to lowercase NFKC form and splits it into tokens made of
// letters, digits and in-word technical punctuation.
func Tokenize(text string) []string {
	folded := strings.ToLower(norm.NFKC.String(text))

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() == 0 {
			return
		}
		token := strings.Trim(current.String(), trimmedEdges)
		current.Reset()
		if strings.IndexFunc(token, isAlnum) < 0 {
			return
		}
		tokens = append(tokens, token)
	}

	for _, r := range folded {
		if isAlnum(r) || unicode.IsMark(r) || strings.ContainsRune(inWordPunctuation, r) {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return tokens
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
