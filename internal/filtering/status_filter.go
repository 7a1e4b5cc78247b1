package filtering

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
)

const forceFlagSetMsg = "force flag is set"

type statusFilter struct {
	toggle
	logger *zap.Logger
	skip   []string
	ignore bool
}

type StatusConfig struct {
	// Skip lists the statuses to drop. Empty means DefaultSkipStatuses.
	Skip   []string
	Ignore bool
}

// DefaultSkipStatuses are the statuses of postings the candidate already acted on.
func DefaultSkipStatuses() []string {
	return []string{
		posting.StatusApplied,
		posting.StatusInterview,
		posting.StatusRejected,
		posting.StatusOffer,
	}
}

// NewStatus creates a filter that removes postings the candidate already acted on.
func NewStatus(cfg *StatusConfig, l *zap.Logger) Filter {
	f := &statusFilter{
		logger: logger.WithFields(l),
		skip:   DefaultSkipStatuses(),
	}
	if cfg != nil {
		f.ignore = cfg.Ignore
		if len(cfg.Skip) > 0 {
			f.skip = cfg.Skip
		}
	}
	return f
}

func (f *statusFilter) Name() string { return "status" }

func (f *statusFilter) Validate() error { return nil }

func (f *statusFilter) Apply(_ context.Context, v *posting.Postings) (*posting.Postings, Step, error) {
	initial := v.Len()
	if f.ignore {
		f.logger.Info("keeping postings already acted on", zap.String("reason", forceFlagSetMsg))
		return v, Step{Initial: initial, Dropped: 0, Left: v.Len()}, nil
	}

	excluded := v.Exclude(posting.StatusField, f.skip)
	if len(excluded) > 0 {
		f.logger.Info("excluding postings by status",
			zap.Strings("statuses", f.skip),
			zap.Strings("excluded_postings", excluded),
			zap.Int("postings_left", v.Len()),
		)
	}

	return v, Step{Initial: initial, Dropped: len(excluded), Left: v.Len()}, nil
}

func (f *statusFilter) Status() Status {
	details := map[string]string{"skip": strings.Join(f.skip, ",")}
	reason := f.reason
	if f.ignore && reason == "" {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: reason, Details: details}
}
