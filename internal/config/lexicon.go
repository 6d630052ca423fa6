package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"
	"go.yaml.in/yaml/v3"
)

const (
	DefaultLexiconPath = "configs/lexicon.yaml"
	LexiconPathEnv     = "LEXICON_CONFIG_PATH"
)

// LoadLexiconConfig reads the lexicon file named by LEXICON_CONFIG_PATH,
// falling back to configs/lexicon.yaml.
func LoadLexiconConfig() (*LexiconConfig, error) {
	path := os.Getenv(LexiconPathEnv)
	if path == "" {
		path = DefaultLexiconPath
	}
	return LoadLexiconFile(path)
}

func LoadLexiconFile(path string) (*LexiconConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg LexiconConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon config %s: %w", path, err)
	}

	return &cfg, nil
}

// applyDefaults fills every set missing from the file with the bundled one.
func applyDefaults(cfg *LexiconConfig) {
	defaults := analysis.DefaultLexicon()
	l := &cfg.Lexicon

	fill := func(set *[]string, fallback []string) {
		if len(*set) == 0 {
			*set = fallback
		}
	}
	fill(&l.Positive, defaults.Positive)
	fill(&l.Negative, defaults.Negative)
	fill(&l.Empathy, defaults.Empathy)
	fill(&l.Fallback, defaults.Fallback)
	fill(&l.Hedges, defaults.Hedges)
	fill(&l.Resolution, defaults.Resolution)
	fill(&l.InfoRequestAll, defaults.InfoRequestAll)
	fill(&l.InfoRequestAny, defaults.InfoRequestAny)
	fill(&l.Fulfillment, defaults.Fulfillment)
}

func (c *LexiconConfig) Validate() error {
	sets := map[string][]string{
		"positive":         c.Lexicon.Positive,
		"negative":         c.Lexicon.Negative,
		"empathy":          c.Lexicon.Empathy,
		"fallback":         c.Lexicon.Fallback,
		"hedges":           c.Lexicon.Hedges,
		"resolution":       c.Lexicon.Resolution,
		"info_request_all": c.Lexicon.InfoRequestAll,
		"info_request_any": c.Lexicon.InfoRequestAny,
		"fulfillment":      c.Lexicon.Fulfillment,
	}

	var errs []error
	for name, entries := range sets {
		for i, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: empty entry", name, i))
			}
		}
	}

	// token sets are compared against single tokens
	for name, entries := range map[string][]string{"positive": c.Lexicon.Positive, "negative": c.Lexicon.Negative} {
		for _, entry := range entries {
			if len(analysis.Tokenize(entry)) > 1 {
				errs = append(errs, fmt.Errorf("%s: %q is not a single word", name, entry))
			}
		}
	}

	return errors.Join(errs...)
}
