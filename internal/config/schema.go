package config

import "github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"

// LexiconConfig is the YAML document holding the scorer lexicons.
type LexiconConfig struct {
	Lexicon analysis.Lexicon `yaml:"lexicon"`
}
