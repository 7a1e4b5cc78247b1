package scoring

import (
	"context"
	"strings"
)

const (
	titleHitScore       = 15
	descriptionHitScore = 3
	descriptionHitCap   = 15

	minScore = 0
	maxScore = 100
)

// Adjustment shifts the score when Phrase occurs in the lowercased description.
type Adjustment struct {
	Phrase string
	Delta  int
}

// DefaultAlignment favours entry level postings over senior ones.
func DefaultAlignment() []Adjustment {
	return []Adjustment{
		{Phrase: "entry level", Delta: 10},
		{Phrase: "entry-level", Delta: 10},
		{Phrase: "junior", Delta: 5},
		{Phrase: "graduate", Delta: 5},
		{Phrase: "senior", Delta: -5},
		{Phrase: "lead", Delta: -5},
		{Phrase: "principal", Delta: -10},
		{Phrase: "5+ years", Delta: -10},
		{Phrase: "10+ years", Delta: -15},
	}
}

// KeywordMatcher scores a posting by counting résumé keywords in its title and
// description. It never calls out and never fails.
type KeywordMatcher struct {
	alignment []Adjustment
}

// NewKeywordMatcher returns a matcher. Without adjustments only keyword hits count.
func NewKeywordMatcher(alignment ...Adjustment) *KeywordMatcher {
	m := &KeywordMatcher{alignment: make([]Adjustment, 0, len(alignment))}
	for _, adj := range alignment {
		phrase := strings.ToLower(strings.TrimSpace(adj.Phrase))
		if phrase == "" {
			continue
		}
		m.alignment = append(m.alignment, Adjustment{Phrase: phrase, Delta: adj.Delta})
	}
	return m
}

// Score returns a value in [0,100]. Keywords are split on whitespace.
func (m *KeywordMatcher) Score(title, description string, keywords []string) int {
	title = strings.ToLower(title)
	description = strings.ToLower(description)

	score := 0
	for _, keyword := range strings.Fields(strings.ToLower(strings.Join(keywords, " "))) {
		if strings.Contains(title, keyword) {
			score += titleHitScore
		}
		if count := strings.Count(description, keyword); count > 0 {
			score += min(count*descriptionHitScore, descriptionHitCap)
		}
	}

	for _, adj := range m.alignment {
		if strings.Contains(description, adj.Phrase) {
			score += adj.Delta
		}
	}

	return clamp(score)
}

func (m *KeywordMatcher) Name() string { return "keywords" }

// Evaluate implements Scorer.
func (m *KeywordMatcher) Evaluate(_ context.Context, in Input) (int, error) {
	return m.Score(in.Title, in.Description, in.Keywords), nil
}

func clamp(score int) int {
	return max(minScore, min(score, maxScore))
}
