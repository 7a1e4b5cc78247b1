package skills

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	TechnicalTerms       = "technical_terms"
	ToolsAndTechnologies = "tools_and_technologies"
	minPhraseLength      = 4
)

// Phrase is a term found by a PhraseFinder.
type Phrase struct {
	Category string
	Term     string
}

// PhraseFinder pulls organization, product or noun-phrase terms out of raw text.
type PhraseFinder interface {
	Find(text string) []Phrase
}

var (
	// GraphQL, FastAPI, WebSockets: a lowercase letter followed later by an uppercase one.
	mixedCaseToken = regexp.MustCompile(`\b[A-Za-z]*[a-z][A-Z][A-Za-z0-9]*\b`)
	// Google Cloud Platform, Apache Kafka: runs of capitalized words on one line.
	capitalizedRun = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]*(?:[ \t]+[A-Z][A-Za-z0-9]*)+\b`)

	stopPhrases = map[string]struct{}{
		"the company":    {},
		"the job":        {},
		"the role":       {},
		"the position":   {},
		"the team":       {},
		"the project":    {},
		"the work":       {},
		"the experience": {},
	}
)

// CapitalizedPhrases is a PhraseFinder based on capitalization: mixed-case tokens
// become tools and technologies, runs of capitalized words become technical terms.
type CapitalizedPhrases struct{}

// Find returns lowercased, deduplicated phrases longer than three characters.
func (CapitalizedPhrases) Find(text string) []Phrase {
	var phrases []Phrase
	seen := make(map[string]struct{})

	collect := func(category string, matches []string) {
		for _, match := range matches {
			term := strings.ToLower(strings.Join(strings.Fields(match), " "))
			if utf8.RuneCountInString(term) < minPhraseLength {
				continue
			}
			if _, stop := stopPhrases[term]; stop {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			phrases = append(phrases, Phrase{Category: category, Term: term})
		}
	}

	collect(ToolsAndTechnologies, mixedCaseToken.FindAllString(text, -1))
	collect(TechnicalTerms, capitalizedRun.FindAllString(text, -1))

	return phrases
}
