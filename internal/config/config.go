package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/lightsongjs/book-translator/pkg/log"
)

// Config holds all runtime configuration.
// Values come from, in increasing precedence: built-in defaults, an
// optional config.yaml in the project directory, and environment
// variables prefixed with BOOKTRANS_ (e.g. BOOKTRANS_SEGMENT_MAX_WORDS).
//
// Segmentation:
//   - segment.max_words: soft upper bound per segment (default: 1500)
//   - segment.min_intermediate_words: minimum size before a non-final
//     segment may be closed (default: 800)
//   - segment.small_content_words: below this a chapter stays one segment
//     (default: 200)
//
// Validation:
//   - validate.word_tolerance: allowed word-count drift between a chapter
//     and its segments (default: 5)
//   - validate.ratio_error: translated/source word ratio below which a
//     translation is flagged invalid (default: 0.5)
//   - validate.ratio_warn_low: ratio below which a non-final translation
//     gets a short warning (default: 0.8)
//   - validate.ratio_warn_high: base for the too-long warning; the check
//     fires above twice this value (default: 1.5)
//
// Languages:
//   - language.source / language.target: BCP 47 codes (default: en / ro)
type Config struct {
	Segment  SegmentConfig  `mapstructure:"segment"`
	Validate ValidateConfig `mapstructure:"validate"`
	Language LanguageConfig `mapstructure:"language"`
	Watch    WatchConfig    `mapstructure:"watch"`
	LogLevel string         `mapstructure:"log_level"`
}

// SegmentConfig bounds the segmentation algorithm.
type SegmentConfig struct {
	MaxWords             int `mapstructure:"max_words"`
	MinIntermediateWords int `mapstructure:"min_intermediate_words"`
	SmallContentWords    int `mapstructure:"small_content_words"`
}

// ValidateConfig holds the integrity and quality thresholds.
type ValidateConfig struct {
	WordTolerance int     `mapstructure:"word_tolerance"`
	RatioError    float64 `mapstructure:"ratio_error"`
	RatioWarnLow  float64 `mapstructure:"ratio_warn_low"`
	RatioWarnHigh float64 `mapstructure:"ratio_warn_high"`
}

// LanguageConfig names the source and target languages.
type LanguageConfig struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}

// WatchConfig configures the scheduled validation loop.
type WatchConfig struct {
	CronExpr string `mapstructure:"cron_expr"`
}

// New loads configuration for the given project directory.
func New(projectDir string) (*Config, error) {
	// a .env next to the binary or project is honored if present
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("segment.max_words", 1500)
	v.SetDefault("segment.min_intermediate_words", 800)
	v.SetDefault("segment.small_content_words", 200)
	v.SetDefault("validate.word_tolerance", 5)
	v.SetDefault("validate.ratio_error", 0.5)
	v.SetDefault("validate.ratio_warn_low", 0.8)
	v.SetDefault("validate.ratio_warn_high", 1.5)
	v.SetDefault("language.source", "en")
	v.SetDefault("language.target", "ro")
	v.SetDefault("watch.cron_expr", "@hourly")
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if projectDir != "" {
		v.AddConfigPath(projectDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("BOOKTRANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Loaded config file: %s", v.ConfigFileUsed())
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks that threshold values are coherent
func (c *Config) validate() error {
	if c.Segment.MaxWords <= 0 {
		return fmt.Errorf("segment.max_words must be positive")
	}
	if c.Segment.MinIntermediateWords <= 0 ||
		c.Segment.MinIntermediateWords > c.Segment.MaxWords {
		return fmt.Errorf("segment.min_intermediate_words must be in (0, max_words]")
	}
	if c.Validate.RatioError <= 0 || c.Validate.RatioError >= c.Validate.RatioWarnLow {
		return fmt.Errorf("validate.ratio_error must be below ratio_warn_low")
	}
	if _, err := language.Parse(c.Language.Source); err != nil {
		return fmt.Errorf("invalid source language %q: %w", c.Language.Source, err)
	}
	if _, err := language.Parse(c.Language.Target); err != nil {
		return fmt.Errorf("invalid target language %q: %w", c.Language.Target, err)
	}
	return nil
}

// SourceTag returns the source language as a parsed tag.
func (c *Config) SourceTag() language.Tag {
	return language.Make(c.Language.Source)
}

// TargetTag returns the target language as a parsed tag.
func (c *Config) TargetTag() language.Tag {
	return language.Make(c.Language.Target)
}

// TargetSuffix returns the filename suffix for translated files, e.g. "_ro".
func (c *Config) TargetSuffix() string {
	return "_" + strings.ToLower(c.Language.Target)
}
