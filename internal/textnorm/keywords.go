package textnorm

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Keywords returns the meaningful words of text in order of appearance: lowercased,
// stripped of ASCII punctuation, without stop-words and without words of two
// characters or fewer.
func Keywords(text string) []string {
	words := strings.Fields(stripPunctuation(text))
	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if _, stop := keywordStopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

// TopKeywords returns at most limit of the most frequent Keywords of text.
// Words with equal frequency keep the order of their first appearance.
func TopKeywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, word := range Keywords(text) {
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

// Words returns the set of lowercased, punctuation-free words of text.
func Words(text string) map[string]struct{} {
	words := strings.Fields(stripPunctuation(text))
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, strings.ToLower(text))
}
