package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind tells what a document is.
type Kind string

const (
	KindResume         Kind = "resume"
	KindJobDescription Kind = "job_description"
)

// ErrUnreadable is returned when no text can be obtained from a document.
var ErrUnreadable = errors.New("document unreadable")

// UnreadableError describes which document could not be read and why.
type UnreadableError struct {
	Source string
	Err    error
}

func (e *UnreadableError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", ErrUnreadable, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrUnreadable, e.Source, e.Err)
}

func (e *UnreadableError) Unwrap() []error {
	return []error{ErrUnreadable, e.Err}
}

// Raw is immutable document text with a label of where it came from.
type Raw struct {
	Text   string
	Kind   Kind
	Source string
}

// New validates text and wraps it into a Raw document.
func New(text string, kind Kind, source string) (Raw, error) {
	if !utf8.ValidString(text) {
		return Raw{}, &UnreadableError{Source: source, Err: errors.New("text is not valid UTF-8")}
	}
	if strings.TrimSpace(text) == "" {
		return Raw{}, &UnreadableError{Source: source, Err: errors.New("no text found")}
	}
	return Raw{Text: text, Kind: kind, Source: source}, nil
}

// Load reads the file at path and converts it to text according to its extension:
// .pdf, .docx, .html/.htm; anything else is read as plain UTF-8 text.
func Load(path string, kind Kind) (Raw, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = pdfText(path)
	case ".docx":
		text, err = docxText(path)
	case ".html", ".htm":
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			text, err = FromHTML(string(data))
		}
	default:
		var data []byte
		if data, err = os.ReadFile(path); err == nil {
			text = string(data)
		}
	}

	if err != nil {
		return Raw{}, &UnreadableError{Source: path, Err: err}
	}

	return New(Clean(text), kind, path)
}

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLines      = regexp.MustCompile(`\n{3,}`)
)

// Clean unifies line endings, collapses runs of horizontal whitespace, trims every
// line and keeps at most one empty line between paragraphs.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	text = blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}
