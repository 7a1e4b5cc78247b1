package skills

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/textnorm"
)

// Result is the categorized skill set of one document.
type Result struct {
	Categories  map[string][]string `json:"skill_categories"`
	AllSkills   []string            `json:"all_skills"`
	Frequencies map[string]int      `json:"skill_frequencies"`

	order []string
}

func newResult() Result {
	return Result{
		Categories:  make(map[string][]string),
		AllSkills:   make([]string, 0),
		Frequencies: make(map[string]int),
	}
}

// CategoryNames returns the categories present in the result, in taxonomy order
// followed by the secondary pass categories.
func (r Result) CategoryNames() []string {
	if len(r.order) == len(r.Categories) {
		return slices.Clone(r.order)
	}
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Has reports whether skill was extracted.
func (r Result) Has(skill string) bool {
	_, ok := r.Frequencies[skill]
	return ok
}

func (r *Result) add(category, skill string, count int) {
	if _, ok := r.Categories[category]; !ok {
		r.order = append(r.order, category)
	}
	if !slices.Contains(r.Categories[category], skill) {
		r.Categories[category] = append(r.Categories[category], skill)
	}
	if _, ok := r.Frequencies[skill]; !ok {
		r.AllSkills = append(r.AllSkills, skill)
	}
	r.Frequencies[skill] = max(r.Frequencies[skill], count)
}

type skillTerm struct {
	term    textnorm.Term
	display string
}

type categoryTerms struct {
	name  string
	terms []skillTerm
}

// Extractor finds taxonomy skills in free text. It is safe for concurrent use.
type Extractor struct {
	normalizer *textnorm.Normalizer
	categories []categoryTerms
	phrases    PhraseFinder
	logger     *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPhrases enables the secondary pass that adds phrase-like terms missing from
// the taxonomy.
func WithPhrases(finder PhraseFinder) Option {
	return func(e *Extractor) { e.phrases = finder }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// New compiles the taxonomy patterns into an Extractor.
func New(tx *taxonomy.Taxonomy, opts ...Option) *Extractor {
	e := &Extractor{
		normalizer: textnorm.New(tx.Vocabulary()...),
	}

	for _, category := range tx.Categories() {
		terms := make([]skillTerm, 0, len(category.Patterns))
		for _, pattern := range category.Patterns {
			terms = append(terms, skillTerm{
				term:    e.compile(pattern),
				display: taxonomy.DisplayName(pattern),
			})
		}
		e.categories = append(e.categories, categoryTerms{name: category.Name, terms: terms})
	}

	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.WithFields(e.logger)

	return e
}

// compile normalizes pattern the same way documents are normalized, so that
// lemmatized pattern tokens ("neural networks") still line up with the text.
func (e *Extractor) compile(pattern string) textnorm.Term {
	normalized := e.normalizer.Normalize(pattern)
	if normalized == "" {
		normalized = pattern
	}
	return textnorm.CompileTerm(normalized)
}

// Extract returns the skills found in text. Categories without matches are absent
// from the result.
func (e *Extractor) Extract(text string) Result {
	result := newResult()

	normalized := e.normalizer.Normalize(text)
	if normalized == "" {
		return result
	}

	for _, category := range e.categories {
		for _, st := range category.terms {
			count := st.term.Count(normalized)
			if count == 0 {
				continue
			}
			result.add(category.name, st.display, count)
		}
	}

	if e.phrases != nil {
		e.addPhrases(&result, text, normalized)
	}

	e.logger.Debug("skills extracted",
		zap.Int("skills", len(result.AllSkills)),
		zap.Int("categories", len(result.Categories)),
	)

	return result
}

func (e *Extractor) addPhrases(result *Result, text, normalized string) {
	known := make(map[string]struct{}, len(result.AllSkills))
	for _, skill := range result.AllSkills {
		known[strings.ToLower(skill)] = struct{}{}
	}

	for _, phrase := range e.phrases.Find(text) {
		if _, ok := known[phrase.Term]; ok {
			continue
		}
		known[phrase.Term] = struct{}{}

		count := e.compile(phrase.Term).Count(normalized)
		result.add(phrase.Category, phrase.Term, max(count, 1))
	}
}
