package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/jobfit/internal/posting"
)

func TestKeywordMatcherScore(t *testing.T) {
	tests := []struct {
		name        string
		alignment   []Adjustment
		title       string
		description string
		keywords    []string
		expect      int
	}{
		{
			name:        "title and description hits",
			title:       "Senior Go Developer",
			description: "We use Go and Kubernetes. Go go go.",
			keywords:    []string{"go", "kubernetes"},
			expect:      30,
		},
		{
			name:        "description hits are capped per keyword",
			title:       "Engineer",
			description: "python python python python python python python",
			keywords:    []string{"python"},
			expect:      15,
		},
		{
			name:        "alignment lowers senior postings",
			alignment:   DefaultAlignment(),
			title:       "Senior Go Developer",
			description: "Senior role. We use Go and Kubernetes. Go go go.",
			keywords:    []string{"go", "kubernetes"},
			expect:      25,
		},
		{
			name:        "alignment raises entry level postings",
			alignment:   DefaultAlignment(),
			title:       "Junior Analyst",
			description: "A junior, entry level role.",
			keywords:    nil,
			expect:      15,
		},
		{
			name:        "clamped at zero",
			alignment:   DefaultAlignment(),
			title:       "Principal Engineer",
			description: "10+ years required",
			keywords:    []string{"rust"},
			expect:      0,
		},
		{
			name:        "clamped at hundred",
			title:       "go python sql aws docker linux git",
			description: "",
			keywords:    []string{"go", "python", "sql", "aws", "docker", "linux", "git"},
			expect:      100,
		},
		{
			name:        "keywords split on whitespace",
			title:       "Data Engineer",
			description: "",
			keywords:    []string{"data engineer"},
			expect:      30,
		},
		{
			name:     "no keywords",
			title:    "Anything",
			keywords: []string{" ", ""},
			expect:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewKeywordMatcher(tt.alignment...).Score(tt.title, tt.description, tt.keywords)
			if got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

type stubScorer struct {
	name   string
	scores map[string]int
	err    error
	calls  int
}

func (s *stubScorer) Name() string { return s.name }

func (s *stubScorer) Evaluate(_ context.Context, in Input) (int, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[in.Title], nil
}

func TestFallbackUsesSecondaryOnError(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	primary := &stubScorer{name: "gemini", err: errors.New("quota exceeded")}
	secondary := &stubScorer{name: "keywords", scores: map[string]int{"Go Developer": 40}}

	scorer := Fallback(primary, secondary, zap.New(core))
	score, err := scorer.Evaluate(context.Background(), Input{Title: "Go Developer"})

	require.NoError(t, err)
	assert.Equal(t, 40, score)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
	require.Equal(t, 1, observed.Len())
	assert.Equal(t, "keywords", observed.All()[0].ContextMap()["fallback"])
	assert.Equal(t, "gemini,keywords", scorer.Name())
}

func TestFallbackKeepsPrimaryResult(t *testing.T) {
	primary := &stubScorer{name: "gemini", scores: map[string]int{"SRE": 77}}
	secondary := &stubScorer{name: "keywords"}

	score, err := Fallback(primary, secondary, nil).Evaluate(context.Background(), Input{Title: "SRE"})

	require.NoError(t, err)
	assert.Equal(t, 77, score)
	assert.Zero(t, secondary.calls)
}

func TestRankSortsStable(t *testing.T) {
	postings := &posting.Postings{Items: []*posting.Posting{
		{ID: "1", Title: "a"},
		{ID: "2", Title: "b"},
		{ID: "3", Title: "c"},
		{ID: "4", Title: "d"},
	}}
	scorer := &stubScorer{name: "stub", scores: map[string]int{"a": 10, "b": 50, "c": 10, "d": 50}}

	require.NoError(t, Rank(context.Background(), scorer, postings, nil, ""))

	assert.Equal(t, []string{"2", "4", "1", "3"}, postings.IDs())
	assert.Equal(t, 50, postings.Items[0].MatchingScore)
}

func TestScoreKeepsOrder(t *testing.T) {
	postings := &posting.Postings{Items: []*posting.Posting{{ID: "1", Title: "a"}, nil, {ID: "2", Title: "b"}}}
	scorer := &stubScorer{name: "stub", scores: map[string]int{"a": 10, "b": 50}}

	require.NoError(t, Score(context.Background(), scorer, postings, nil, ""))
	assert.Equal(t, []string{"1", "2"}, postings.IDs())
	assert.Equal(t, 10, postings.Items[0].MatchingScore)
	assert.Equal(t, 50, postings.Items[1].MatchingScore)
}

func TestRankDropsNilPostings(t *testing.T) {
	postings := &posting.Postings{Items: []*posting.Posting{nil, {ID: "1", Title: "a"}, nil, {ID: "2", Title: "b"}}}
	scorer := &stubScorer{name: "stub", scores: map[string]int{"a": 10, "b": 20}}

	require.NoError(t, Rank(context.Background(), scorer, postings, nil, ""))
	assert.Equal(t, []string{"2", "1"}, postings.IDs())
}

func TestRankReturnsScorerError(t *testing.T) {
	postings := &posting.Postings{Items: []*posting.Posting{{ID: "1"}}}
	scorer := &stubScorer{name: "stub", err: errors.New("boom")}

	err := Rank(context.Background(), scorer, postings, nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scoring posting 1")
}
