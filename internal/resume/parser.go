package resume

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/textnorm"
)

const (
	UnknownUniversity = "Unknown University"
	UnknownCompany    = "Unknown Company"
	UnknownDates      = "Unknown Dates"
	PresentYear       = "Present"

	contextWindow   = 100
	maxBullets      = 3
	maxHeaderLength = 40
	nameLines       = 3
)

type ContactInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

func (c ContactInfo) empty() bool {
	return c.Email == "" && c.Phone == "" && c.LinkedIn == "" && c.GitHub == "" && c.Portfolio == ""
}

type EducationEntry struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	Year       string `json:"year"`
}

type ExperienceEntry struct {
	Title            string   `json:"title"`
	Company          string   `json:"company"`
	Dates            string   `json:"dates"`
	Responsibilities []string `json:"responsibilities"`
}

// Record is the structured content of a résumé.
type Record struct {
	ContactInfo ContactInfo       `json:"contact_info"`
	Skills      []string          `json:"skills"`
	Education   []EducationEntry  `json:"education"`
	Experience  []ExperienceEntry `json:"experience"`
	RawText     string            `json:"raw_text"`
}

type vocabularyTerm struct {
	term    textnorm.Term
	display string
}

// Parser extracts a Record from résumé text. It is safe for concurrent use.
type Parser struct {
	patterns   Patterns
	vocabulary []vocabularyTerm
	headers    map[string]struct{}
	logger     *zap.Logger
}

func NewParser(patterns Patterns, vocabulary []string, l *zap.Logger) *Parser {
	p := &Parser{
		patterns: patterns,
		headers:  make(map[string]struct{}),
		logger:   logger.WithFields(l),
	}

	for _, skill := range vocabulary {
		if strings.TrimSpace(skill) == "" {
			continue
		}
		p.vocabulary = append(p.vocabulary, vocabularyTerm{
			term:    textnorm.CompileTerm(skill),
			display: taxonomy.DisplayName(skill),
		})
	}

	for _, names := range [][]string{patterns.SkillsHeaders, patterns.EducationHeaders, patterns.ExperienceHeaders, patterns.OtherHeaders} {
		for _, name := range names {
			p.headers[strings.ToLower(name)] = struct{}{}
		}
	}

	return p
}

// Parse extracts every part of the record. Only a document without usable text
// is an error; parts that yield nothing are logged and left empty.
func (p *Parser) Parse(doc document.Raw) (*Record, error) {
	raw, err := document.New(doc.Text, doc.Kind, doc.Source)
	if err != nil {
		return nil, err
	}

	log := logger.WithFields(p.logger, logger.DocumentFields(string(raw.Kind), raw.Source)...)
	text := document.Clean(raw.Text)

	record := &Record{
		ContactInfo: p.ExtractContactInfo(text),
		Skills:      p.ExtractSkills(text),
		Education:   p.ExtractEducation(text),
		Experience:  p.ExtractExperience(text),
		RawText:     strings.Join(strings.Fields(text), " "),
	}

	incomplete := func(part string) {
		log.Warn("extraction incomplete", zap.String("part", part))
	}
	if record.ContactInfo.empty() {
		incomplete("contact_info")
	}
	if len(record.Skills) == 0 {
		incomplete("skills")
	}
	if len(record.Education) == 0 {
		incomplete("education")
	}
	if len(record.Experience) == 0 {
		incomplete("experience")
	}

	log.Info("resume parsed",
		zap.Int("skills", len(record.Skills)),
		zap.Int("education", len(record.Education)),
		zap.Int("experience", len(record.Experience)),
	)

	return record, nil
}

func (p *Parser) ExtractContactInfo(text string) ContactInfo {
	info := ContactInfo{
		Name:     p.guessName(text),
		Email:    findString(p.patterns.Email, text),
		Phone:    findString(p.patterns.Phone, text),
		LinkedIn: findString(p.patterns.LinkedIn, text),
		GitHub:   findString(p.patterns.GitHub, text),
	}

	if p.patterns.Portfolio != nil {
		for _, url := range p.patterns.Portfolio.FindAllString(text, -1) {
			if !strings.Contains(url, "linkedin.com") && !strings.Contains(url, "github.com") {
				info.Portfolio = url
				break
			}
		}
	}

	return info
}

// guessName takes the first short line made of capitalized words near the top.
func (p *Parser) guessName(text string) string {
	checked := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if checked++; checked > nameLines {
			break
		}

		if utf8.RuneCountInString(line) > maxHeaderLength || p.isKnownHeader(line) {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !slices.ContainsFunc(words, func(w string) bool { return !nameWord.MatchString(w) }) {
			return line
		}
	}
	return ""
}

var nameWord = regexp.MustCompile(`^\p{Lu}[\p{L}.'-]*$`)

// ExtractSection returns the lines after the first header named like one of names,
// up to the next header. The bool is false when no such header exists.
func (p *Parser) ExtractSection(text string, names []string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !isHeaderNamed(line, names) {
			continue
		}

		body := make([]string, 0)
		for _, next := range lines[i+1:] {
			if p.looksLikeHeader(next) {
				break
			}
			body = append(body, next)
		}
		return strings.TrimSpace(strings.Join(body, "\n")), true
	}
	return "", false
}

func (p *Parser) sectionOrText(text string, names []string) string {
	if section, _ := p.ExtractSection(text, names); section != "" {
		return section
	}
	return text
}

func headerName(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > maxHeaderLength {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(line, ":")), true
}

func isHeaderNamed(line string, names []string) bool {
	name, ok := headerName(line)
	if !ok {
		return false
	}
	return slices.ContainsFunc(names, func(candidate string) bool {
		return strings.EqualFold(name, candidate)
	})
}

func (p *Parser) isKnownHeader(line string) bool {
	name, ok := headerName(line)
	if !ok {
		return false
	}
	_, known := p.headers[strings.ToLower(name)]
	return known
}

// looksLikeHeader matches known header names, ALL CAPS lines and short
// capitalized lines ending with a colon.
func (p *Parser) looksLikeHeader(line string) bool {
	if p.isKnownHeader(line) {
		return true
	}

	line = strings.TrimSpace(line)
	if line == "" || utf8.RuneCountInString(line) > maxHeaderLength {
		return false
	}

	first, _ := utf8.DecodeRuneInString(line)
	if strings.HasSuffix(line, ":") && unicode.IsUpper(first) && len(strings.Fields(line)) <= 4 {
		return true
	}

	letters := 0
	for _, r := range line {
		switch {
		case unicode.IsUpper(r):
			letters++
		case r == ' ' || r == '&' || r == ':':
		default:
			return false
		}
	}
	return letters >= 4
}

// ExtractSkills scans the skills section, or the whole text, for vocabulary terms.
func (p *Parser) ExtractSkills(text string) []string {
	section := strings.ToLower(p.sectionOrText(text, p.patterns.SkillsHeaders))

	skills := make([]string, 0)
	for _, v := range p.vocabulary {
		if v.term.In(section) && !slices.Contains(skills, v.display) {
			skills = append(skills, v.display)
		}
	}
	return skills
}

func (p *Parser) ExtractEducation(text string) []EducationEntry {
	section := p.sectionOrText(text, p.patterns.EducationHeaders)

	entries := make([]EducationEntry, 0)
	var claimed []span
	for _, re := range p.patterns.Degrees {
		for _, m := range re.FindAllStringSubmatchIndex(section, -1) {
			if covered(claimed, m[0]) {
				continue
			}
			claimed = append(claimed, span{m[0], m[1]})

			around := window(section, m[0]-contextWindow, m[1]+contextWindow)

			university := firstMatch(p.patterns.Universities, around)
			if university == "" {
				university = UnknownUniversity
			}
			year := findString(p.patterns.Year, around)
			if year == "" {
				year = PresentYear
			}

			entries = append(entries, EducationEntry{
				Degree:     strings.TrimSpace(group(section, m, 1) + " " + strings.TrimSpace(group(section, m, 2))),
				University: university,
				Year:       year,
			})
		}
	}
	return entries
}

func (p *Parser) ExtractExperience(text string) []ExperienceEntry {
	section := p.sectionOrText(text, p.patterns.ExperienceHeaders)

	var found []span
	for _, re := range p.patterns.Titles {
		for _, loc := range re.FindAllStringIndex(section, -1) {
			found = append(found, span{loc[0], loc[1]})
		}
	}
	slices.SortStableFunc(found, func(a, b span) int { return a.start - b.start })

	titles := make([]span, 0, len(found))
	for _, s := range found {
		if len(titles) > 0 && s.start < titles[len(titles)-1].end {
			continue
		}
		titles = append(titles, s)
	}

	entries := make([]ExperienceEntry, 0, len(titles))
	for i, title := range titles {
		next := len(section)
		if i+1 < len(titles) {
			next = titles[i+1].start
		}
		trailing := window(section, title.start, min(title.end+contextWindow, next))

		company := UnknownCompany
		if p.patterns.Company != nil {
			if m := p.patterns.Company.FindStringSubmatch(trailing); len(m) > 1 {
				company = strings.TrimSpace(m[1])
			}
		}

		dates := findString(p.patterns.Dates, trailing)
		if dates == "" {
			dates = UnknownDates
		}

		bullets := make([]string, 0, maxBullets)
		if p.patterns.Bullet != nil {
			for _, m := range p.patterns.Bullet.FindAllStringSubmatch(section[title.end:next], maxBullets) {
				bullets = append(bullets, strings.TrimSpace(m[1]))
			}
		}

		entries = append(entries, ExperienceEntry{
			Title:            section[title.start:title.end],
			Company:          company,
			Dates:            dates,
			Responsibilities: bullets,
		})
	}
	return entries
}

type span struct {
	start, end int
}

func covered(spans []span, pos int) bool {
	return slices.ContainsFunc(spans, func(s span) bool { return pos >= s.start && pos < s.end })
}

// window returns text[start:end] clamped to the text and widened to rune boundaries.
func window(text string, start, end int) string {
	start = max(start, 0)
	end = min(end, len(text))
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	if start >= end {
		return ""
	}
	return text[start:end]
}

func group(text string, m []int, n int) string {
	if len(m) < 2*n+2 || m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

func findString(re *regexp.Regexp, text string) string {
	if re == nil {
		return ""
	}
	return re.FindString(text)
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, re := range patterns {
		if match := findString(re, text); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}
