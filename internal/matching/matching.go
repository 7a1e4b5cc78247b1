package matching

import (
	"context"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobfit/internal/skills"
)

// CategoryReport compares one skill category.
type CategoryReport struct {
	Matching        []string `json:"matching"`
	Missing         []string `json:"missing"`
	MatchPercentage float64  `json:"match_percentage"`
}

// Report compares the skills of a résumé with the skills a job asks for.
type Report struct {
	MatchingSkills  []string                  `json:"matching_skills"`
	MissingSkills   []string                  `json:"missing_skills"`
	MatchPercentage float64                   `json:"match_percentage"`
	Categories      map[string]CategoryReport `json:"categories"`
}

// Combined is the output of ExtractAndCompare.
type Combined struct {
	ResumeSkills skills.Result `json:"resume_skills"`
	JobSkills    skills.Result `json:"job_skills"`
	Comparison   Report        `json:"comparison"`
}

// Compare measures how much of the job's skill set the résumé covers. Matching and
// missing skills keep the job order and together make up the job skills. A job
// without skills is a 0% match.
func Compare(resume, job skills.Result) Report {
	matching, missing, percentage := split(resume.AllSkills, job.AllSkills)

	report := Report{
		MatchingSkills:  matching,
		MissingSkills:   missing,
		MatchPercentage: percentage,
		Categories:      make(map[string]CategoryReport),
	}

	for _, name := range categoryUnion(resume, job) {
		catMatching, catMissing, catPercentage := split(resume.Categories[name], job.Categories[name])
		report.Categories[name] = CategoryReport{
			Matching:        catMatching,
			Missing:         catMissing,
			MatchPercentage: catPercentage,
		}
	}

	return report
}

// ExtractAndCompare extracts skills from both texts and compares them.
func ExtractAndCompare(extractor *skills.Extractor, resumeText, jobText string) Combined {
	resume := extractor.Extract(resumeText)
	job := extractor.Extract(jobText)

	return Combined{
		ResumeSkills: resume,
		JobSkills:    job,
		Comparison:   Compare(resume, job),
	}
}

// CompareBatch compares one résumé against many job descriptions, at most workers
// at a time (unbounded when workers <= 0). Reports follow the order of jobs.
func CompareBatch(ctx context.Context, extractor *skills.Extractor, resumeText string, jobs []string, workers int) ([]Report, error) {
	reports := make([]Report, len(jobs))
	if len(jobs) == 0 {
		return reports, nil
	}

	resume := extractor.Extract(resumeText)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = Compare(resume, extractor.Extract(job))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func split(have, want []string) ([]string, []string, float64) {
	matching := make([]string, 0, len(want))
	missing := make([]string, 0, len(want))

	for _, skill := range want {
		if slices.Contains(have, skill) {
			matching = append(matching, skill)
			continue
		}
		missing = append(missing, skill)
	}

	return matching, missing, percentage(len(matching), len(want))
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func categoryUnion(resume, job skills.Result) []string {
	names := job.CategoryNames()
	for _, name := range resume.CategoryNames() {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
