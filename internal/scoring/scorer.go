package scoring

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
)

// Input is what a scorer sees about a single posting.
type Input struct {
	Title       string
	Description string
	Keywords    []string
	// Resume is the résumé text. Keyword based scorers ignore it.
	Resume string
}

// Scorer rates how well a posting fits the candidate, from 0 to 100.
type Scorer interface {
	Name() string
	Evaluate(ctx context.Context, in Input) (int, error)
}

type fallback struct {
	primary   Scorer
	secondary Scorer
	logger    *zap.Logger
}

// Fallback returns a Scorer that asks primary first and uses secondary when
// primary fails.
func Fallback(primary, secondary Scorer, l *zap.Logger) Scorer {
	return &fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger.WithFields(l),
	}
}

func (f *fallback) Name() string {
	return fmt.Sprintf("%s,%s", f.primary.Name(), f.secondary.Name())
}

func (f *fallback) Evaluate(ctx context.Context, in Input) (int, error) {
	score, err := f.primary.Evaluate(ctx, in)
	if err == nil {
		return score, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}

	f.logger.Warn("primary scorer failed, using fallback",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.secondary.Name()),
		zap.String("title", logger.TruncateForLog(in.Title, 80)),
		zap.Error(err),
	)
	return f.secondary.Evaluate(ctx, in)
}

// Score sets MatchingScore on every posting and keeps their order. Nil
// entries are dropped.
func Score(ctx context.Context, scorer Scorer, postings *posting.Postings, keywords []string, resume string) error {
	postings.Items = slices.DeleteFunc(postings.Items, func(p *posting.Posting) bool { return p == nil })

	for _, p := range postings.Items {
		if err := ctx.Err(); err != nil {
			return err
		}

		score, err := scorer.Evaluate(ctx, Input{
			Title:       p.Title,
			Description: p.Description,
			Keywords:    keywords,
			Resume:      resume,
		})
		if err != nil {
			return fmt.Errorf("scoring posting %s: %w", p.ID, err)
		}
		p.MatchingScore = score
	}
	return nil
}

// Rank sets MatchingScore on every posting and sorts them by score, highest
// first. Postings with equal scores keep their order. Nil entries are dropped.
func Rank(ctx context.Context, scorer Scorer, postings *posting.Postings, keywords []string, resume string) error {
	if err := Score(ctx, scorer, postings, keywords, resume); err != nil {
		return err
	}

	slices.SortStableFunc(postings.Items, func(a, b *posting.Posting) int {
		return b.MatchingScore - a.MatchingScore
	})
	return nil
}
