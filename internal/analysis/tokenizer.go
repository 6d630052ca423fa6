package analysis

import (
	"regexp"
	"strings"
)

var (
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// Tokenize lowercases text and returns its word tokens. Punctuation and
// whitespace only separate tokens.
func Tokenize(text string) []string {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// SentenceCount returns the number of segments produced by splitting the
// trimmed text on runs of terminal punctuation. It is never below 1.
func SentenceCount(text string) int {
	runs := sentencePattern.FindAllStringIndex(strings.TrimSpace(text), -1)
	return max(1, len(runs)+1)
}

func uniqueTokens(text string) map[string]struct{} {
	tokens := Tokenize(text)
	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	return unique
}
