package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/matching"
)

type matchResult struct {
	Job    string          `json:"job"`
	Report matching.Report `json:"report"`
}

var matchCmd = &cobra.Command{
	Use:   "match <resume> <job>...",
	Short: "Compare the skills of a résumé with one or more job descriptions",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd.Context(), args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Bool("phrases", false, "also collect capitalized phrases missing from the taxonomy")
	viper.BindPFlag("match.phrases", matchCmd.Flags().Lookup("phrases"))
}

func match(ctx context.Context, resumePath string, jobPaths []string) {
	l, config := setup()
	if ctx == nil {
		ctx = context.Background()
	}

	resumeDoc, err := document.Load(resumePath, document.KindResume)
	if err != nil {
		l.Fatal("loading resume", append(logger.DocumentFields(string(document.KindResume), resumePath), zap.Error(err))...)
	}

	jobs := make([]string, 0, len(jobPaths))
	loaded := make([]string, 0, len(jobPaths))
	for _, path := range jobPaths {
		doc, err := document.Load(path, document.KindJobDescription)
		if err != nil {
			l.Error("loading job description", append(logger.DocumentFields(string(document.KindJobDescription), path), zap.Error(err))...)
			continue
		}
		jobs = append(jobs, doc.Text)
		loaded = append(loaded, path)
	}

	extractor := newExtractor(config, l, viper.GetBool("match.phrases"))

	reports, err := matching.CompareBatch(ctx, extractor, resumeDoc.Text, jobs, config.Workers)
	if err != nil {
		l.Fatal("matching", zap.Error(err))
	}

	results := make([]matchResult, 0, len(reports))
	for i, report := range reports {
		results = append(results, matchResult{Job: loaded[i], Report: report})
		l.Info("job matched",
			zap.String("job", loaded[i]),
			zap.Float64("match_percentage", report.MatchPercentage),
		)
	}

	if err := printJSON(results); err != nil {
		l.Fatal("printing results", zap.Error(err))
	}
}
