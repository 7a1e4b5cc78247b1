package taxonomy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// ErrDegraded reports that an override taxonomy could not be used.
var ErrDegraded = errors.New("taxonomy load degraded")

// overrideSchema describes an override file: an object mapping category names to
// non-empty lists of patterns.
const overrideSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "minProperties": 1,
  "propertyNames": {"minLength": 1},
  "additionalProperties": {
    "type": "array",
    "minItems": 1,
    "items": {"type": "string", "minLength": 1}
  }
}`

// Load reads a category to pattern-list JSON override. Regex escapes left in
// patterns by older override files ("c\\+\\+", "node\\.js") are removed, since
// patterns are matched literally.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrDegraded, path, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(overrideSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %q: %w", ErrDegraded, path, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("%w: %q does not match the taxonomy schema: %s", ErrDegraded, path, strings.Join(problems, "; "))
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %w", ErrDegraded, path, err)
	}

	categories := make([]Category, 0, len(raw))
	for _, name := range orderedNames(raw) {
		patterns := make([]string, 0, len(raw[name]))
		for _, pattern := range raw[name] {
			patterns = append(patterns, strings.ReplaceAll(pattern, `\`, ""))
		}
		categories = append(categories, Category{Name: name, Patterns: patterns})
	}

	t := New(categories)
	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: %q has no usable patterns", ErrDegraded, path)
	}

	return t, nil
}

// LoadOrDefault loads the override at path and falls back to the built-in taxonomy
// when path is empty or the override cannot be used. A fallback caused by a broken
// override is logged as a warning and is otherwise invisible to callers.
func LoadOrDefault(path string, logger *zap.Logger) *Taxonomy {
	if logger == nil {
		logger = zap.NewNop()
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	t, err := Load(path)
	if err != nil {
		logger.Warn("using built-in skill taxonomy",
			zap.String("taxonomy_file", path),
			zap.Error(err),
		)
		return Default()
	}

	logger.Debug("skill taxonomy loaded",
		zap.String("taxonomy_file", path),
		zap.Int("categories", t.Len()),
	)
	return t
}

// orderedNames puts the built-in category names first, in their built-in order,
// followed by the remaining names alphabetically.
func orderedNames(raw map[string][]string) []string {
	names := make([]string, 0, len(raw))
	for _, name := range defaultOrder {
		if _, ok := raw[name]; ok {
			names = append(names, name)
		}
	}

	extra := make([]string, 0, len(raw))
	for name := range raw {
		if !slices.Contains(defaultOrder, name) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	return append(names, extra...)
}
