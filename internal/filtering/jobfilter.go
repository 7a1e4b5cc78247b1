package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/textnorm"
)

const (
	DefaultKeywordLimit = 30

	keywordPointThreshold  = 0.2
	strongKeywordThreshold = 0.5
	acceptedScore          = 2

	ReasonSalary   = "Salary meets minimum requirement"
	ReasonLocation = "Location match"
)

// Evaluation is the outcome of checking one posting against the criteria.
type Evaluation struct {
	Score        int
	Reasons      []string
	KeywordScore float64
	Accepted     bool
}

// JobFilter keeps the postings that satisfy at least two of the keyword, salary
// and location checks, or have a strong keyword match on their own.
type JobFilter struct {
	criteria     Criteria
	keywordLimit int
	workers      int
	logger       *zap.Logger
}

type Option func(*JobFilter)

// WithKeywordLimit sets how many résumé keywords are compared against descriptions.
func WithKeywordLimit(n int) Option {
	return func(f *JobFilter) {
		if n > 0 {
			f.keywordLimit = n
		}
	}
}

// WithWorkers sets how many postings are evaluated concurrently.
func WithWorkers(n int) Option {
	return func(f *JobFilter) {
		if n > 0 {
			f.workers = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(f *JobFilter) { f.logger = l }
}

func NewJobFilter(criteria Criteria, opts ...Option) *JobFilter {
	f := &JobFilter{
		criteria:     criteria,
		keywordLimit: DefaultKeywordLimit,
		workers:      1,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logger.WithFields(f.logger)
	return f
}

func (f *JobFilter) Criteria() Criteria {
	return f.criteria
}

// FilterJobs returns the accepted postings in input order. Accepted postings get
// FilterMatchScore and FilterMatchReasons set.
func (f *JobFilter) FilterJobs(ctx context.Context, postings []*posting.Posting, resumeText string) ([]*posting.Posting, error) {
	if len(postings) == 0 {
		f.logger.Warn("no postings to filter")
		return []*posting.Posting{}, nil
	}

	f.logger.Info("filtering postings", zap.Int("postings", len(postings)))

	keywords := textnorm.TopKeywords(resumeText, f.keywordLimit)
	f.logger.Info("extracted résumé keywords", zap.Int("keywords", len(keywords)))

	evaluations := make([]Evaluation, len(postings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, p := range postings {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evaluations[i] = f.Evaluate(p, keywords)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	accepted := make([]*posting.Posting, 0, len(postings))
	for i, p := range postings {
		if p == nil {
			continue
		}
		ev := evaluations[i]
		if !ev.Accepted {
			f.logger.Debug("posting rejected",
				append(logger.PostingFields(p.ID, p.Company), zap.Int("score", ev.Score))...,
			)
			continue
		}

		p.FilterMatchScore = ev.Score
		p.FilterMatchReasons = ev.Reasons
		accepted = append(accepted, p)
	}

	f.logger.Info("filtered postings", zap.Int("accepted", len(accepted)))
	return accepted, nil
}

// Evaluate checks a single posting. It does not modify the posting.
func (f *JobFilter) Evaluate(p *posting.Posting, keywords []string) Evaluation {
	ev := Evaluation{Reasons: []string{}}
	if p == nil {
		return ev
	}

	if strings.TrimSpace(p.Description) != "" {
		ev.KeywordScore = KeywordScore(keywords, p.Description)
		if ev.KeywordScore > keywordPointThreshold {
			ev.Score++
			ev.Reasons = append(ev.Reasons, fmt.Sprintf("Keyword match: %d%%", int(ev.KeywordScore*100)))
		}
	}

	if strings.TrimSpace(p.Salary) != "" && SalaryMeets(p.Salary, f.criteria.MinSalary) {
		ev.Score++
		ev.Reasons = append(ev.Reasons, ReasonSalary)
	}

	if strings.TrimSpace(p.Location) != "" && LocationMatches(p.Location, f.criteria.TargetLocation) {
		ev.Score++
		ev.Reasons = append(ev.Reasons, ReasonLocation)
	}

	ev.Accepted = ev.Score >= acceptedScore || ev.KeywordScore > strongKeywordThreshold
	return ev
}

// KeywordScore is the share of keywords that occur as whole words in description.
func KeywordScore(keywords []string, description string) float64 {
	if len(keywords) == 0 || strings.TrimSpace(description) == "" {
		return 0
	}

	words := textnorm.Words(description)
	matches := 0
	for _, keyword := range keywords {
		if _, ok := words[keyword]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(keywords))
}
