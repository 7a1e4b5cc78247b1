package filtering

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spigell/jobfit/internal/posting"
)

type criteriaFilter struct {
	toggle
	filter *JobFilter
	resume string
}

// NewCriteriaStep wraps a JobFilter as a pipeline step.
func NewCriteriaStep(filter *JobFilter, resumeText string) Filter {
	return &criteriaFilter{
		filter: filter,
		resume: resumeText,
	}
}

func (f *criteriaFilter) Name() string { return "criteria" }

func (f *criteriaFilter) Validate() error {
	if f.filter == nil {
		return errors.New("job filter is required")
	}
	if strings.TrimSpace(f.resume) == "" {
		return errors.New("resume text is required")
	}
	return f.filter.Criteria().Validate()
}

func (f *criteriaFilter) Apply(ctx context.Context, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()

	accepted, err := f.filter.FilterJobs(ctx, v.Items, f.resume)
	if err != nil {
		return v, Step{}, err
	}

	v.Items = accepted
	return v, Step{Initial: initial, Dropped: initial - v.Len(), Left: v.Len()}, nil
}

func (f *criteriaFilter) Status() Status {
	details := map[string]string{}
	if f.filter != nil {
		c := f.filter.Criteria()
		details["min_salary"] = strconv.Itoa(c.MinSalary)
		if c.TargetLocation != "" {
			details["target_location"] = c.TargetLocation
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
