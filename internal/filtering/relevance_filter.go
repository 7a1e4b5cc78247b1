package filtering

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/textnorm"
)

type relevanceFilter struct {
	toggle
	config *RelevanceConfig
	deps   *RelevanceDeps
}

type RelevanceConfig struct {
	// MinimumScore drops postings scoring below it. Zero keeps every posting.
	MinimumScore int
	// Keywords default to the top résumé keywords.
	Keywords []string
	Resume   string
}

type RelevanceDeps struct {
	Logger      *zap.Logger
	Scorer      scoring.Scorer
	ExcludeFile string
}

// NewRelevance creates a step that scores postings with a scorer. With a
// minimum score set it also ranks them and drops the ones below it.
func NewRelevance(cfg *RelevanceConfig, deps *RelevanceDeps) Filter {
	if cfg == nil {
		cfg = &RelevanceConfig{}
	}
	return &relevanceFilter{
		config: cfg,
		deps:   deps,
	}
}

func (f *relevanceFilter) Name() string { return "relevance" }

func (f *relevanceFilter) Validate() error {
	if f.deps == nil || f.deps.Scorer == nil {
		return errors.New("scorer is required")
	}
	if f.config.MinimumScore < 0 || f.config.MinimumScore > 100 {
		return fmt.Errorf("minimum score %d is outside of [0,100]", f.config.MinimumScore)
	}
	return nil
}

func (f *relevanceFilter) Apply(ctx context.Context, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()
	log := logger.WithFields(f.deps.Logger, zap.String("scorer", f.deps.Scorer.Name()))

	keywords := f.config.Keywords
	if len(keywords) == 0 {
		keywords = textnorm.TopKeywords(f.config.Resume, DefaultKeywordLimit)
	}

	// Without a threshold the step only annotates scores and keeps the order
	// the earlier steps produced.
	score := scoring.Score
	if f.config.MinimumScore > 0 {
		score = scoring.Rank
	}
	if err := score(ctx, f.deps.Scorer, v, keywords, f.config.Resume); err != nil {
		return v, Step{}, fmt.Errorf("scoring postings: %w", err)
	}

	approved := make([]*posting.Posting, 0, initial)
	rejected := &posting.Postings{}
	for _, p := range v.Items {
		if p.MatchingScore < f.config.MinimumScore {
			log.Info("posting rejected by relevance",
				append(logger.PostingFields(p.ID, p.Company), zap.Int("matching_score", p.MatchingScore))...,
			)
			rejected.Items = append(rejected.Items, p)
			continue
		}
		approved = append(approved, p)
	}
	v.Items = approved

	if rejected.Len() > 0 {
		if err := f.appendToExcludeFile(rejected); err != nil {
			log.Warn("failed to append postings to exclude file", zap.Error(err))
		}
	}

	log.Info("relevance filtering completed",
		zap.Int("initial_postings", initial),
		zap.Int("approved_postings", len(approved)),
	)

	return v, Step{Initial: initial, Dropped: initial - v.Len(), Left: v.Len()}, nil
}

func (f *relevanceFilter) appendToExcludeFile(rejected *posting.Postings) error {
	path := strings.TrimSpace(f.deps.ExcludeFile)
	if path == "" {
		return nil
	}

	excluded, err := posting.GetExcludedFromFile(path)
	if err != nil {
		return fmt.Errorf("load excluded postings: %w", err)
	}

	reason := fmt.Sprintf("matching score below %d", f.config.MinimumScore)
	excluded.Append(rejected.ToExcluded(reason))

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("write excluded postings: %w", err)
	}
	return nil
}

func (f *relevanceFilter) Status() Status {
	details := map[string]string{
		"minimum_score": strconv.Itoa(f.config.MinimumScore),
	}
	if f.deps != nil && f.deps.Scorer != nil {
		details["scorer"] = f.deps.Scorer.Name()
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
