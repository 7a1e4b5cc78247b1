package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayNames holds the spellings that title-casing gets wrong.
var displayNames = map[string]string{
	"python":     "Python",
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"c++":        "C++",
	"c#":         "C#",
	"node.js":    "Node.js",
	"asp.net":    "ASP.NET",
	"ci/cd":      "CI/CD",

	"aws":        "AWS",
	"aws lambda": "AWS Lambda",
	"gcp":        "GCP",
	"php":        "PHP",
	"html":       "HTML",
	"css":        "CSS",
	"sql":        "SQL",
	"nosql":      "NoSQL",
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
	"sqlite":     "SQLite",
	"dynamodb":   "DynamoDB",
	"neo4j":      "Neo4j",
	"github":     "GitHub",
	"gitlab":     "GitLab",
	"jquery":     "jQuery",
	"tensorflow": "TensorFlow",
	"pytorch":    "PyTorch",
	"numpy":      "NumPy",
	"scipy":      "SciPy",
	"power bi":   "Power BI",
	"xd":         "XD",
	"macos":      "macOS",
	"ai":         "AI",
	"nlp":        "NLP",
	"devops":     "DevOps",
}

// DisplayName derives the canonical display name of a skill pattern. Patterns
// without a known spelling are title-cased word by word.
func DisplayName(pattern string) string {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if name, ok := displayNames[pattern]; ok {
		return name
	}
	// cases.Caser is stateful, so a new one is built per call.
	return cases.Title(language.English).String(pattern)
}
