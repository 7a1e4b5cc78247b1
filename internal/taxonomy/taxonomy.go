package taxonomy

import (
	"slices"
	"strings"
)

// Category is a named, ordered list of skill patterns.
type Category struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// Taxonomy maps categories to skill patterns. It is read-only once built and safe
// for concurrent use.
type Taxonomy struct {
	categories []Category
	index      map[string]int
}

// New builds a Taxonomy keeping the category order. Patterns are lowercased, trimmed
// and deduplicated within a category; categories without patterns are dropped.
func New(categories []Category) *Taxonomy {
	t := &Taxonomy{index: make(map[string]int, len(categories))}

	for _, category := range categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			continue
		}

		patterns := make([]string, 0, len(category.Patterns))
		for _, pattern := range category.Patterns {
			pattern = strings.ToLower(strings.TrimSpace(pattern))
			if pattern == "" || slices.Contains(patterns, pattern) {
				continue
			}
			patterns = append(patterns, pattern)
		}
		if len(patterns) == 0 {
			continue
		}

		if idx, ok := t.index[name]; ok {
			for _, pattern := range patterns {
				if !slices.Contains(t.categories[idx].Patterns, pattern) {
					t.categories[idx].Patterns = append(t.categories[idx].Patterns, pattern)
				}
			}
			continue
		}

		t.index[name] = len(t.categories)
		t.categories = append(t.categories, Category{Name: name, Patterns: patterns})
	}

	return t
}

// Categories returns a copy of the categories in taxonomy order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, category := range t.categories {
		out[i] = Category{Name: category.Name, Patterns: slices.Clone(category.Patterns)}
	}
	return out
}

// Names returns the category names in taxonomy order.
func (t *Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, category := range t.categories {
		names[i] = category.Name
	}
	return names
}

// Patterns returns the patterns of the named category or nil when it is unknown.
func (t *Taxonomy) Patterns(name string) []string {
	idx, ok := t.index[name]
	if !ok {
		return nil
	}
	return slices.Clone(t.categories[idx].Patterns)
}

// Vocabulary returns every single-token pattern. The normalizer keeps these tokens
// away from lemmatization so that names such as "kubernetes" or "aws" survive.
func (t *Taxonomy) Vocabulary() []string {
	var vocabulary []string
	for _, category := range t.categories {
		for _, pattern := range category.Patterns {
			if strings.ContainsRune(pattern, ' ') || slices.Contains(vocabulary, pattern) {
				continue
			}
			vocabulary = append(vocabulary, pattern)
		}
	}
	return vocabulary
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int {
	return len(t.categories)
}
