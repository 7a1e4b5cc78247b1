package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/jobfit/internal/document"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/skills"
	"github.com/spigell/jobfit/internal/taxonomy"
)

type extractedSkills struct {
	File   string        `json:"file"`
	Skills skills.Result `json:"skills"`
}

var skillsCmd = &cobra.Command{
	Use:   "skills <file>...",
	Short: "Extract categorized skills from résumés or job descriptions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		extractSkills(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().Bool("phrases", true, "also collect capitalized phrases missing from the taxonomy")
	skillsCmd.Flags().StringP("kind", "k", string(document.KindJobDescription), "document kind: resume or job_description")

	viper.BindPFlag("skills.phrases", skillsCmd.Flags().Lookup("phrases"))
	viper.BindPFlag("skills.kind", skillsCmd.Flags().Lookup("kind"))
}

func newExtractor(config *Config, l *zap.Logger, phrases bool) *skills.Extractor {
	opts := []skills.Option{skills.WithLogger(l)}
	if phrases {
		opts = append(opts, skills.WithPhrases(skills.CapitalizedPhrases{}))
	}
	return skills.New(taxonomy.LoadOrDefault(config.SkillTaxonomyFile, l), opts...)
}

func extractSkills(ctx context.Context, paths []string) {
	l, config := setup()
	if ctx == nil {
		ctx = context.Background()
	}

	extractor := newExtractor(config, l, viper.GetBool("skills.phrases"))
	kind := document.Kind(viper.GetString("skills.kind"))

	results := make([]*extractedSkills, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := document.Load(path, kind)
			if err != nil {
				l.Error("loading document", append(logger.DocumentFields(string(kind), path), zap.Error(err))...)
				return nil
			}

			results[i] = &extractedSkills{File: path, Skills: extractor.Extract(doc.Text)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		l.Fatal("extracting skills", zap.Error(err))
	}

	out := make([]*extractedSkills, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}

	if err := printJSON(out); err != nil {
		l.Fatal("printing results", zap.Error(err))
	}
}
