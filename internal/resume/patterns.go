package resume

import "regexp"

// Patterns is the table of expressions and header names the parser works with.
// Ordered slices are tried in order.
type Patterns struct {
	Email     *regexp.Regexp
	Phone     *regexp.Regexp
	LinkedIn  *regexp.Regexp
	GitHub    *regexp.Regexp
	Portfolio *regexp.Regexp

	Degrees      []*regexp.Regexp
	Universities []*regexp.Regexp
	Year         *regexp.Regexp

	Titles  []*regexp.Regexp
	Company *regexp.Regexp
	Dates   *regexp.Regexp
	Bullet  *regexp.Regexp

	SkillsHeaders     []string
	EducationHeaders  []string
	ExperienceHeaders []string
	// OtherHeaders end a section without being extracted themselves.
	OtherHeaders []string
}

const (
	// North American numbers: optional +1, optional area code, exchange, line, extension.
	areaCode    = `(?:[2-9]1[02-9]|[2-9][02-8]1|[2-9][02-8][02-9])`
	phonePrefix = `(?:(?:\+?1\s*(?:[.-]\s*)?)?(?:\(\s*` + areaCode + `\s*\)|` + areaCode + `)\s*(?:[.-]\s*)?)?`
	phone       = phonePrefix + `(?:[2-9]1[02-9]|[2-9][02-9]1|[2-9][02-9]{2})\s*(?:[.-]\s*)?[0-9]{4}(?:\s*(?:#|x\.?|ext\.?|extension)\s*\d+)?`

	degreeTail = `\s(?:in|of)?\s?([^,\n]+)`

	titleSeniority = `(?:Senior|Junior|Lead|Principal|Staff|Chief)`
	titleDomain    = `(?:Software|Developer|Frontend|Backend|Full Stack|Full-Stack|Web|Mobile|iOS|Android|Cloud|DevOps|ML|AI|Data|QA|Test|Project|Product|Program|Technical|Solutions|Systems|Security|Network|Database|Infrastructure)`
	titleRole      = `(?:Engineer|Developer|Architect|Specialist|Analyst|Scientist|Manager|Lead|Consultant|Administrator)`

	properName = `[A-Z][A-Za-z&.]*`
	month      = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?`
)

// DefaultPatterns returns the built-in table.
func DefaultPatterns() Patterns {
	return Patterns{
		Email:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Phone:     regexp.MustCompile(phone),
		LinkedIn:  regexp.MustCompile(`linkedin\.com/in/[a-zA-Z0-9-]+`),
		GitHub:    regexp.MustCompile(`github\.com/[a-zA-Z0-9-]+`),
		Portfolio: regexp.MustCompile(`https?://(?:www\.)?[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`),

		Degrees: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(B\.?S\.?|Bachelor of Science|Bachelor['’]?s?)` + degreeTail),
			regexp.MustCompile(`(?i)\b(B\.?A\.?|Bachelor of Arts|Bachelor['’]?s?)` + degreeTail),
			regexp.MustCompile(`(?i)\b(M\.?S\.?|Master of Science|Master['’]?s?)` + degreeTail),
			regexp.MustCompile(`(?i)\b(M\.?A\.?|Master of Arts|Master['’]?s?)` + degreeTail),
			regexp.MustCompile(`(?i)\b(Ph\.?D\.?|Doctor of Philosophy|Doctorate)` + degreeTail),
			regexp.MustCompile(`(?i)\b(MBA|Master of Business Administration)\b`),
			regexp.MustCompile(`(?i)\b(MD|Doctor of Medicine)\b`),
			regexp.MustCompile(`(?i)\b(JD|Juris Doctor|Doctor of Law)\b`),
		},
		Universities: []*regexp.Regexp{
			regexp.MustCompile(`University of [A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)*`),
			regexp.MustCompile(`(?:` + properName + ` )+University`),
			regexp.MustCompile(`(?:` + properName + ` )+College`),
			regexp.MustCompile(`College of [A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)*`),
			regexp.MustCompile(`(?:` + properName + ` )*Institute of [A-Z][A-Za-z]*(?: [A-Z][A-Za-z]*)*`),
			regexp.MustCompile(`(?:` + properName + ` )+Institute`),
		},
		Year: regexp.MustCompile(`\b(?:19|20)\d{2}\b`),

		Titles: []*regexp.Regexp{
			regexp.MustCompile(`\b(?:` + titleSeniority + ` ?)?` + titleDomain + ` ?` + titleRole + `\b`),
			regexp.MustCompile(`\b(?:Director|VP|Vice President|Manager|Head) ?(?:of|,)? ?(?:Engineering|Software|Development|Technology|IT|Product|Program|Project)\b`),
		},
		Company: regexp.MustCompile(`\bat ([A-Z][A-Za-z0-9&.]*(?: [A-Z][A-Za-z0-9&.]*)*)`),
		Dates: regexp.MustCompile(`\b` + month + `\s+\d{4}\s*[-–—]\s*(?:` + month + `\s+\d{4}|Present|Current)|\bPresent\b|\bCurrent\b`),
		Bullet: regexp.MustCompile(`(?m)^[•*-]\s+(.+)$`),

		SkillsHeaders:     []string{"skills", "technical skills", "expertise", "technologies"},
		EducationHeaders:  []string{"education", "academic background", "academic credentials"},
		ExperienceHeaders: []string{"experience", "work experience", "professional experience", "employment"},
		OtherHeaders: []string{
			"summary", "profile", "objective", "projects", "certifications", "languages",
			"interests", "awards", "publications", "references", "contact", "volunteering",
		},
	}
}
