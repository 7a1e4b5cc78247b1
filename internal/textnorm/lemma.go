package textnorm

import "strings"

type suffixRule struct {
	suffix  string
	replace string
}

// nounRules follow the WordNet noun detachment rules, most specific first.
var nounRules = []suffixRule{
	{suffix: "sses", replace: "ss"},
	{suffix: "ies", replace: "y"},
	{suffix: "ches", replace: "ch"},
	{suffix: "shes", replace: "sh"},
	{suffix: "xes", replace: "x"},
	{suffix: "zes", replace: "z"},
	{suffix: "s", replace: ""},
}

// invariantSuffixes mark singular nouns that only look plural.
var invariantSuffixes = []string{"ss", "us", "is"}

var irregularNouns = map[string]string{
	"analyses":   "analysis",
	"children":   "child",
	"crises":     "crisis",
	"criteria":   "criterion",
	"diagnoses":  "diagnosis",
	"feet":       "foot",
	"hypotheses": "hypothesis",
	"indices":    "index",
	"matrices":   "matrix",
	"men":        "man",
	"mice":       "mouse",
	"people":     "person",
	"phenomena":  "phenomenon",
	"teeth":      "tooth",
	"theses":     "thesis",
	"vertices":   "vertex",
	"women":      "woman",
}

// Lemmatizer reduces plural nouns to their singular form.
type Lemmatizer struct {
	protected map[string]struct{}
}

// NewLemmatizer returns a Lemmatizer that never changes the protected tokens.
func NewLemmatizer(protected ...string) *Lemmatizer {
	set := make(map[string]struct{}, len(protected))
	for _, token := range protected {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return &Lemmatizer{protected: set}
}

// Lemma returns the base form of token. Short tokens, protected tokens and tokens
// carrying digits or punctuation are returned unchanged.
func (l *Lemmatizer) Lemma(token string) string {
	if len(token) <= 3 {
		return token
	}
	if _, ok := l.protected[token]; ok {
		return token
	}
	if lemma, ok := irregularNouns[token]; ok {
		return lemma
	}
	if strings.IndexFunc(token, func(r rune) bool { return r < 'a' || r > 'z' }) >= 0 {
		return token
	}
	for _, suffix := range invariantSuffixes {
		if strings.HasSuffix(token, suffix) {
			return token
		}
	}
	for _, rule := range nounRules {
		if !strings.HasSuffix(token, rule.suffix) {
			continue
		}
		stem := token[:len(token)-len(rule.suffix)] + rule.replace
		if len(stem) < 3 {
			return token
		}
		return stem
	}
	return token
}
