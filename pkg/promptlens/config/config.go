package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/promptlens/pkg/promptlens/grade"
	"github.com/cognicore/promptlens/pkg/promptlens/ideas"
	"github.com/cognicore/promptlens/pkg/promptlens/internalerr"
	"github.com/cognicore/promptlens/pkg/promptlens/tokenizer"
)

// validate is shared; validator.Validate caches struct metadata and is safe
// for concurrent use.
var validate = validator.New()

// Config holds the engine settings
type Config struct {
	// Concurrency bounds the first-tier stages running at once
	Concurrency int `yaml:"concurrency" validate:"min=1,max=4"`

	// ClusterSimilarity is the keyword Jaccard a sentence needs to join a cluster
	ClusterSimilarity float64 `yaml:"cluster_similarity" validate:"gt=0,lte=1"`

	// TopNGrams is how many n-grams of each order the tokenizer reports
	TopNGrams int `yaml:"top_ngrams" validate:"min=1,max=100"`

	// StrengthsCount is how many strengths and weak areas the grader reports
	StrengthsCount int `yaml:"strengths_count" validate:"min=1,max=7"`

	// LexiconPath optionally layers a YAML lexicon over the built-in one
	LexiconPath string `yaml:"lexicon_path"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Concurrency:       4,
		ClusterSimilarity: ideas.DefaultSimilarity,
		TopNGrams:         tokenizer.DefaultTopK,
		StrengthsCount:    grade.DefaultStrengths,
		LogLevel:          "info",
	}
}

// Load reads a YAML config file. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks every field against its allowed range
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gt":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// Loader returns a loader building the components this config describes
func (c Config) Loader() Loader {
	return Loader{
		LexiconPath:       c.LexiconPath,
		TopNGrams:         c.TopNGrams,
		ClusterSimilarity: c.ClusterSimilarity,
		StrengthsCount:    c.StrengthsCount,
	}
}
