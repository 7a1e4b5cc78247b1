package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/scoring"
)

//go:embed prompt.md
var promptTemplate string

const (
	systemInstruction = "You are a recruiter scoring job postings for a candidate. " +
		"Your response must be a properly formatted JSON object with no additional text, " +
		"explanations, or markdown formatting before or after the JSON."

	resumeLimit      = 3000
	descriptionLimit = 1500

	defaultMaxLogLength = 200
)

type textGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// Assessment is the model's view of one posting.
type Assessment struct {
	Score            int      `json:"score"`
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	Explanation      string   `json:"explanation"`
	Raw              string   `json:"-"`
}

// Scorer rates postings with Gemini. It implements scoring.Scorer.
type Scorer struct {
	generator textGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator textGenerator, maxLogLength int, l *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Scorer{
		generator: generator,
		logger:    logger.WithFields(l, logger.AIFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Name() string { return "gemini" }

func (s *Scorer) Evaluate(ctx context.Context, in scoring.Input) (int, error) {
	assessment, err := s.Assess(ctx, in)
	if err != nil {
		return 0, err
	}
	return assessment.Score, nil
}

// Assess asks the model to compare the résumé with the posting.
func (s *Scorer) Assess(ctx context.Context, in scoring.Input) (*Assessment, error) {
	if strings.TrimSpace(in.Resume) == "" {
		return nil, errors.New("resume text is required")
	}
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Description) == "" {
		return nil, errors.New("posting has neither title nor description")
	}

	prompt := buildPrompt(in)

	s.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	assessment, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	assessment.Raw = raw
	return assessment, nil
}

func buildPrompt(in scoring.Input) string {
	keywords := "none"
	if len(in.Keywords) > 0 {
		keywords = strings.Join(in.Keywords, ", ")
	}

	return strings.NewReplacer(
		"{{RESUME}}", truncate(in.Resume, resumeLimit),
		"{{KEYWORDS}}", keywords,
		"{{TITLE}}", strings.TrimSpace(in.Title),
		"{{DESCRIPTION}}", truncate(in.Description, descriptionLimit),
	).Replace(promptTemplate)
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func parseResponse(raw string) (*Assessment, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["score"])
	if math.IsNaN(score) {
		return nil, errors.New("gemini response has no score")
	}

	return &Assessment{
		Score:            int(math.Round(max(0, min(score, 100)))),
		MatchingKeywords: coerceStrings(data["matching_keywords"]),
		MissingKeywords:  coerceStrings(data["missing_keywords"]),
		Explanation:      coerceString(data["explanation"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(val), "%"), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case nil:
		return ""
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
