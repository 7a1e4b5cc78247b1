package cmd

import (
	"errors"
	"io/fs"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
)

const (
	app = "jobfit"

	envFile = "configs/.env"
)

type Config struct {
	TargetPayGradeMin string        `mapstructure:"target-pay-grade-min"`
	TargetLocation    string        `mapstructure:"target-location" validate:"max=200"`
	SkillTaxonomyFile string        `mapstructure:"skill-taxonomy-file"`
	ExcludeFile       string        `mapstructure:"exclude-file"`
	Workers           int           `mapstructure:"workers" validate:"gte=0"`
	Filter            *FilterConfig `mapstructure:"filter"`
	AI                *AIConfig     `mapstructure:"ai"`
}

type FilterConfig struct {
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	SkipStatuses     []string `mapstructure:"skip-statuses"`
	MinimumScore     int      `mapstructure:"minimum-score" validate:"gte=0,lte=100"`
	KeywordLimit     int      `mapstructure:"keyword-limit" validate:"gte=0"`
	// Alignment turns on the built-in seniority table unless Adjustments are given.
	Alignment   bool               `mapstructure:"alignment"`
	Adjustments []AdjustmentConfig `mapstructure:"adjustments" validate:"dive"`
}

type AdjustmentConfig struct {
	Phrase string `mapstructure:"phrase" validate:"required"`
	Delta  int    `mapstructure:"delta"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	// dotenvErr is reported once a logger exists.
	dotenvErr error

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit parses résumés, extracts skills and filters job postings against a candidate",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string]string{
		"target-pay-grade-min":   "TARGET_PAY_GRADE_MIN",
		"target-location":        "TARGET_LOCATION",
		"skill-taxonomy-file":    "SKILL_TAXONOMY_FILE",
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("target-pay-grade-min", "70000")
	viper.SetDefault("target-location", "New York, NY")
	viper.SetDefault("workers", 4)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("log-output", logger.DefaultOutput, "where logs go: stderr, stdout or a file path")
	rootCmd.PersistentFlags().Int("workers", 4, "number of documents processed concurrently")
	rootCmd.PersistentFlags().Bool("alignment", false, "adjust keyword scores by the seniority a posting asks for")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("filter.alignment", rootCmd.PersistentFlags().Lookup("alignment"))
}

func initConfig() {
	if err := godotenv.Load(envFile); err != nil {
		dotenvErr = err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it is given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// setup builds the logger and the config shared by every command.
func setup() (*zap.Logger, *Config) {
	l, err := logger.New(logger.Options{
		JSON:      viper.GetBool("json"),
		Debug:     viper.GetBool("debug"),
		Output:    viper.GetString("log-output"),
		Component: app,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	if dotenvErr != nil {
		level := l.Warn
		if errors.Is(dotenvErr, fs.ErrNotExist) {
			level = l.Debug
		}
		level("env file is not loaded", zap.String("filename", envFile), zap.Error(dotenvErr))
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	l.Debug("starting", zap.String("version", version))

	return l, config
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Filter == nil {
		config.Filter = &FilterConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

// redacted returns a copy of c that is safe to log.
func (c *Config) redacted() *Config {
	out := *c
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey != "" {
		ai := *c.AI
		gemini := *c.AI.Gemini
		gemini.APIKey = "<redacted>"
		ai.Gemini = &gemini
		out.AI = &ai
	}
	return &out
}
