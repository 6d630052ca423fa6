package analysis

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/aggregator"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

const (
	idealSentenceLength = 12.0
	sentenceLengthSpan  = 20.0
	idealWordLength     = 5.0
	wordLengthSpan      = 6.0

	sentenceWeight = 0.7
	wordWeight     = 0.3

	empathyPerMarker = 0.5

	hedgedAccuracy   = 0.4
	concreteAccuracy = 0.6
	neutralAccuracy  = 0.5
)

// MessageScorer maps one assistant message to a score.
type MessageScorer func(text string) float64

// ScoreEach applies the scorer to every text, preserving order.
func ScoreEach(texts []string, scorer MessageScorer) []float64 {
	scores := make([]float64, 0, len(texts))
	for _, text := range texts {
		scores = append(scores, scorer(text))
	}
	return scores
}

// ClarityScore rewards moderate sentence and word lengths. Each factor peaks
// at its ideal value and decays linearly to zero across its span.
func ClarityScore(text string) float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return 0.0
	}

	chars := 0
	for _, t := range tokens {
		chars += utf8.RuneCountInString(t)
	}
	avgWordLength := float64(chars) / float64(len(tokens))
	avgSentenceLength := float64(len(tokens)) / float64(SentenceCount(text))

	sentenceFactor := closeness(avgSentenceLength, idealSentenceLength, sentenceLengthSpan)
	wordFactor := closeness(avgWordLength, idealWordLength, wordLengthSpan)

	return aggregator.Round(sentenceFactor*sentenceWeight+wordFactor*wordWeight, 3)
}

func closeness(value, ideal, span float64) float64 {
	return math.Max(0, 1-math.Abs(value-ideal)/span)
}

// RelevanceScore is the share of the user's unique tokens that the
// assistant's reply repeats.
func RelevanceScore(assistantText, userText string) float64 {
	assistantTokens := uniqueTokens(assistantText)
	userTokens := uniqueTokens(userText)
	if len(assistantTokens) == 0 || len(userTokens) == 0 {
		return 0.0
	}

	overlap := 0
	for token := range userTokens {
		if _, ok := assistantTokens[token]; ok {
			overlap++
		}
	}
	return aggregator.Round(float64(overlap)/float64(len(userTokens)), 3)
}

// RelevanceSeries pairs every assistant message with the closest earlier
// user message. Assistant messages without one are skipped.
func RelevanceSeries(transcript models.Transcript) []float64 {
	var scores []float64
	lastUser := -1
	for i, msg := range transcript {
		switch msg.Sender.Normalize() {
		case models.SenderUser:
			lastUser = i
		case models.SenderAssistant:
			if lastUser >= 0 {
				scores = append(scores, RelevanceScore(msg.Text, transcript[lastUser].Text))
			}
		}
	}
	return scores
}

// EmpathyScore gives half a point per distinct empathy marker, capped at 1.
func (a *Analyzer) EmpathyScore(text string) float64 {
	hits := countContained(strings.ToLower(text), a.lexicon.empathy)
	return aggregator.Round(math.Min(1.0, float64(hits)*empathyPerMarker), 3)
}

// FallbackCount counts the distinct fallback phrases in a message.
func (a *Analyzer) FallbackCount(text string) int {
	return countContained(strings.ToLower(text), a.lexicon.fallback)
}

// AccuracyScore penalizes hedged language and rewards concrete figures.
// Hedging takes priority over digits.
func (a *Analyzer) AccuracyScore(text string) float64 {
	if containsAny(strings.ToLower(text), a.lexicon.hedges) {
		return hedgedAccuracy
	}
	if strings.IndexFunc(text, isDigit) >= 0 {
		return concreteAccuracy
	}
	return neutralAccuracy
}

// isDigit accepts decimal digits and other numeric digits such as superscripts.
func isDigit(r rune) bool {
	return unicode.IsDigit(r) || unicode.Is(unicode.No, r)
}
