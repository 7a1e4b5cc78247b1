package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/filtering"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
)

const (
	PromptYes                 = "Yes"
	PromptNo                  = "No"
	PromptReportByCompanies   = "Report by companies"
	PromptPostingsToFile      = "Dump postings to file"
	PromptAppendToExcludeFile = "Append all postings to exclude file"

	manualExcludeReason = "excluded manually"
)

var errExit = errors.New("exit requested")

var filterCmd = &cobra.Command{
	Use:   "filter <resume>",
	Short: "Run postings through the filter pipeline and print the ones worth applying to",
	Long: `Run postings through the filter pipeline and print the ones worth applying to.

Postings keep their input order unless filter.minimum-score is above zero,
in which case the relevance step ranks them by matching score, highest first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringP("postings", "p", "", "JSON file with an array of postings")
	filterCmd.Flags().BoolP("include-acted", "f", false, "keep postings already applied to, interviewed or rejected")
	filterCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation and print the result")
	filterCmd.Flags().StringP("exclude-file", "e", "", "file with postings to exclude. Default is unset.")
	filterCmd.Flags().StringSlice("disable", nil, "names of filter steps to skip")

	filterCmd.MarkFlagRequired("postings")

	viper.BindPFlag("exclude-file", filterCmd.Flags().Lookup("exclude-file"))
}

func filter(cmd *cobra.Command, resumePath string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	l, config := setup()

	pretty, _ := jsonString(config.redacted())
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	criteria, err := filtering.NewCriteria(config.TargetPayGradeMin, config.TargetLocation)
	if err != nil {
		l.Fatal("invalid filter criteria",
			zap.Error(err),
			zap.String("hint", "check TARGET_PAY_GRADE_MIN and TARGET_LOCATION"),
		)
	}

	resumeDoc, err := document.Load(resumePath, document.KindResume)
	if err != nil {
		l.Fatal("loading resume", append(logger.DocumentFields(string(document.KindResume), resumePath), zap.Error(err))...)
	}

	postingsFile, _ := cmd.Flags().GetString("postings")
	postings, err := posting.LoadFile(postingsFile)
	if err != nil {
		l.Fatal("loading postings", zap.String("filename", postingsFile), zap.Error(err))
	}

	if postings.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no postings found"))
		return
	}

	filters := prepareFilters(ctx, cmd, config, criteria, resumeDoc.Text, l)

	postings, err = filters.RunFilters(ctx, postings)
	if err != nil {
		l.Fatal("filtering failed", zap.Error(err))
	}

	if postings.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	autoApprove, _ := cmd.Flags().GetBool("yes")

	prompt := promptui.Select{
		Label: "Proceed?",
		Items: menuItems(),
	}

	action := PromptYes
	for {
		if !autoApprove {
			if _, action, err = prompt.Run(); err != nil {
				l.Fatal("exiting", zap.Error(err))
			}
		}

		l.Info("current list of postings", zap.Int("count", postings.Len()))

		if err := handleAction(action, l, postings); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}
}

func menuItems() []string {
	items := []string{PromptYes, PromptNo, PromptReportByCompanies, PromptPostingsToFile}
	if viper.GetString("exclude-file") != "" {
		items = append(items, PromptAppendToExcludeFile)
	}
	return items
}

func handleAction(action string, l *zap.Logger, postings *posting.Postings) error {
	switch action {
	case PromptYes:
		if err := printJSON(postings.Items); err != nil {
			return err
		}
		return errExit
	case PromptNo:
		l.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompanies:
		pretty, _ := jsonString(postings.ReportByCompany())
		l.Info(pretty, zap.Int("postings count", postings.Len()))
		return nil
	case PromptPostingsToFile:
		filename, err := postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		l.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(l, postings)
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(l *zap.Logger, postings *posting.Postings) error {
	excludeFile := viper.GetString("exclude-file")

	excluded, err := posting.GetExcludedFromFile(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(postings.ToExcluded(manualExcludeReason))

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	l.Info("appended to exclude file", zap.String("filename", excludeFile))

	postings.Exclude(posting.IDField, excluded.IDs())
	if postings.Len() == 0 {
		l.Info("exiting", zap.String("reason", "no postings left"))
		return errExit
	}
	return nil
}

func prepareFilters(ctx context.Context, cmd *cobra.Command, config *Config, criteria filtering.Criteria, resumeText string, l *zap.Logger) *filtering.Filtering {
	includeActed, _ := cmd.Flags().GetBool("include-acted")
	excludeFile := viper.GetString("exclude-file")

	jobFilter := filtering.NewJobFilter(criteria,
		filtering.WithKeywordLimit(keywordLimit(config)),
		filtering.WithWorkers(config.Workers),
		filtering.WithLogger(l),
	)

	steps := []filtering.Filter{
		filtering.NewStatus(&filtering.StatusConfig{
			Skip:   config.Filter.SkipStatuses,
			Ignore: includeActed,
		}, l),
		filtering.NewExcludedCompanies(config.Filter.ExcludeCompanies, l),
		filtering.NewExcludeFile(excludeFile, l),
		filtering.NewCriteriaStep(jobFilter, resumeText),
		filtering.NewRelevance(&filtering.RelevanceConfig{
			MinimumScore: config.Filter.MinimumScore,
			Resume:       resumeText,
		}, &filtering.RelevanceDeps{
			Logger:      l,
			Scorer:      newScorer(ctx, config, l),
			ExcludeFile: excludeFile,
		}),
	}

	disabled, _ := cmd.Flags().GetStringSlice("disable")
	for _, name := range disabled {
		filtering.DisableByName(steps, name, "disabled by flag")
	}

	for _, status := range filtering.Describe(steps) {
		l.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filtering.New(steps, l)
}
