package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/resume"
	"github.com/spigell/jobfit/internal/taxonomy"
)

type parsedResume struct {
	File   string         `json:"file"`
	Record *resume.Record `json:"record"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <resume>...",
	Short: "Extract contact info, skills, education and experience from résumés",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		parse(args)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parse(paths []string) {
	l, _ := setup()

	parser := resume.NewParser(resume.DefaultPatterns(), taxonomy.ResumeVocabulary(), l)

	results := make([]parsedResume, 0, len(paths))
	for _, path := range paths {
		doc, err := document.Load(path, document.KindResume)
		if err != nil {
			l.Error("loading resume", append(logger.DocumentFields(string(document.KindResume), path), zap.Error(err))...)
			continue
		}

		record, err := parser.Parse(doc)
		if err != nil {
			l.Error("parsing resume", append(logger.DocumentFields(string(document.KindResume), path), zap.Error(err))...)
			continue
		}

		results = append(results, parsedResume{File: path, Record: record})
	}

	if err := printJSON(results); err != nil {
		l.Fatal("printing results", zap.Error(err))
	}
}
