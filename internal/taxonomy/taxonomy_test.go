package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultCategories(t *testing.T) {
	tx := Default()

	assert.Equal(t, defaultOrder, tx.Names())
	assert.Contains(t, tx.Patterns(ProgrammingLanguages), "c++")
	assert.Contains(t, tx.Patterns(CloudDevOps), "aws lambda")
	assert.Nil(t, tx.Patterns("unknown"))
}

func TestNewDeduplicatesAndMerges(t *testing.T) {
	tx := New([]Category{
		{Name: "langs", Patterns: []string{"Go", " go ", "Rust"}},
		{Name: "empty", Patterns: []string{" "}},
		{Name: "langs", Patterns: []string{"zig", "rust"}},
	})

	assert.Equal(t, []string{"langs"}, tx.Names())
	assert.Equal(t, []string{"go", "rust", "zig"}, tx.Patterns("langs"))
}

func TestVocabularySkipsMultiWordPatterns(t *testing.T) {
	vocabulary := Default().Vocabulary()

	assert.Contains(t, vocabulary, "kubernetes")
	assert.NotContains(t, vocabulary, "machine learning")
}

func TestCategoriesReturnsCopy(t *testing.T) {
	tx := Default()
	categories := tx.Categories()
	categories[0].Patterns[0] = "changed"

	assert.Equal(t, "python", tx.Patterns(ProgrammingLanguages)[0])
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"python":                  "Python",
		"javascript":              "JavaScript",
		"typescript":              "TypeScript",
		"c++":                     "C++",
		"c#":                      "C#",
		"node.js":                 "Node.js",
		"asp.net":                 "ASP.NET",
		"ci/cd":                   "CI/CD",
		"aws":                     "AWS",
		"kubernetes":              "Kubernetes",
		"machine learning":        "Machine Learning",
		"test-driven development": "Test-Driven Development",
		" Docker ":                "Docker",
	}

	for input, expect := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, expect, DisplayName(input))
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `{"zeta": ["Zig"], "programming_languages": ["c\\+\\+", "node\\.js"], "alpha": ["Ada"]}`)

	tx, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"programming_languages", "alpha", "zeta"}, tx.Names())
	assert.Equal(t, []string{"c++", "node.js"}, tx.Patterns(ProgrammingLanguages))
}

func TestLoadRejectsInvalidOverrides(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":      `{"broken"`,
		"empty object":  `{}`,
		"wrong type":    `{"langs": "go"}`,
		"empty list":    `{"langs": []}`,
		"blank pattern": `{"langs": ["  "]}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeFile(t, content))
			require.ErrorIs(t, err, ErrDegraded)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrDegraded)
}

func TestLoadOrDefaultWarnsOnFallback(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)

	tx := LoadOrDefault(writeFile(t, `{"langs": 1}`), zap.New(core))

	assert.Equal(t, defaultOrder, tx.Names())
	require.Len(t, observed.All(), 1)
	assert.Equal(t, "using built-in skill taxonomy", observed.All()[0].Message)
}

func TestLoadOrDefaultWithoutPath(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	tx := LoadOrDefault("  ", zap.New(core))

	assert.Equal(t, 8, tx.Len())
	assert.Empty(t, observed.All())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
