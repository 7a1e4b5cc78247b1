package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai/gemini"
	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/filtering"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/secrets"
	"github.com/spigell/jobfit/internal/textnorm"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rate postings against keywords or a résumé and sort them by score",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("postings", "p", "", "JSON file with an array of postings")
	scoreCmd.Flags().StringSlice("keywords", nil, "keywords to score with (default is the top résumé keywords)")
	scoreCmd.Flags().StringP("resume", "r", "", "résumé used for keywords and the AI scorer")

	scoreCmd.MarkFlagRequired("postings")
}

func score(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	l, config := setup()

	postingsFile, _ := cmd.Flags().GetString("postings")
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	resumePath, _ := cmd.Flags().GetString("resume")

	var resumeText string
	if resumePath != "" {
		doc, err := document.Load(resumePath, document.KindResume)
		if err != nil {
			l.Fatal("loading resume", append(logger.DocumentFields(string(document.KindResume), resumePath), zap.Error(err))...)
		}
		resumeText = doc.Text
	}

	if len(keywords) == 0 {
		keywords = textnorm.TopKeywords(resumeText, keywordLimit(config))
	}
	if len(keywords) == 0 {
		l.Fatal("nothing to score with", zap.String("hint", "pass --keywords or --resume"))
	}

	postings, err := posting.LoadFile(postingsFile)
	if err != nil {
		l.Fatal("loading postings", zap.String("filename", postingsFile), zap.Error(err))
	}

	scorer := newScorer(ctx, config, l)
	if err := scoring.Rank(ctx, scorer, postings, keywords, resumeText); err != nil {
		l.Fatal("scoring postings", zap.Error(err))
	}

	l.Info("postings scored", zap.String("scorer", scorer.Name()), zap.Int("count", postings.Len()))

	if err := printJSON(postings.Items); err != nil {
		l.Fatal("printing results", zap.Error(err))
	}
}

func keywordLimit(config *Config) int {
	if config.Filter.KeywordLimit > 0 {
		return config.Filter.KeywordLimit
	}
	return filtering.DefaultKeywordLimit
}

// alignment returns the configured adjustments, the built-in table when only
// filter.alignment is set, or nothing.
func alignment(config *Config) []scoring.Adjustment {
	if len(config.Filter.Adjustments) > 0 {
		adjustments := make([]scoring.Adjustment, 0, len(config.Filter.Adjustments))
		for _, a := range config.Filter.Adjustments {
			adjustments = append(adjustments, scoring.Adjustment{Phrase: a.Phrase, Delta: a.Delta})
		}
		return adjustments
	}
	if config.Filter.Alignment {
		return scoring.DefaultAlignment()
	}
	return nil
}

// newScorer returns the keyword scorer, backed by Gemini when an API key is configured.
func newScorer(ctx context.Context, config *Config, l *zap.Logger) scoring.Scorer {
	keywords := scoring.NewKeywordMatcher(alignment(config)...)

	cfg := config.AI.Gemini
	if !config.AI.Enabled && strings.TrimSpace(cfg.APIKey) == "" && strings.TrimSpace(cfg.APIKeyFile) == "" {
		return keywords
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
	})
	if err != nil {
		l.Warn("using keyword scorer only",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or ai.gemini.api-key-file"),
		)
		return keywords
	}

	genLogger := logger.WithFields(l, append(logger.AIFields("gemini", cfg.Model), zap.Int("ai_retry_attempts", cfg.MaxRetries))...)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.MaxRetries, genLogger)
	if err != nil {
		l.Warn("using keyword scorer only", zap.Error(err))
		return keywords
	}

	return scoring.Fallback(gemini.NewScorer(generator, cfg.MaxLogLength, genLogger), keywords, l)
}
