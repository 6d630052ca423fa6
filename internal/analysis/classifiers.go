package analysis

import (
	"math"
	"strings"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/aggregator"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

const (
	positiveThreshold = 0.66
	negativeThreshold = 0.34
	neutralScore      = 0.5

	infoRequestCredit = 0.6
	fulfillmentCredit = 1.0
)

type SentimentResult struct {
	Label models.Sentiment `json:"label"`
	Score float64          `json:"score"`
}

// SentimentOfUser classifies the polarity of the user's messages. Without
// any lexicon hit the result is neutral at 0.5.
func (a *Analyzer) SentimentOfUser(userTexts []string) SentimentResult {
	pos, neg := 0, 0
	for _, text := range userTexts {
		for token := range uniqueTokens(text) {
			if _, ok := a.lexicon.positive[token]; ok {
				pos++
			}
			if _, ok := a.lexicon.negative[token]; ok {
				neg++
			}
		}
	}

	total := pos + neg
	if total == 0 {
		return SentimentResult{Label: models.SentimentNeutral, Score: neutralScore}
	}

	polarity := float64(pos-neg) / float64(total)
	score := aggregator.Round((polarity+1)/2, 3)

	label := models.SentimentNeutral
	if score > positiveThreshold {
		label = models.SentimentPositive
	} else if score < negativeThreshold {
		label = models.SentimentNegative
	}

	return SentimentResult{Label: label, Score: score}
}

// DetectResolution reports whether the assistant announced a completed
// request while the user never used negative language. A single negative
// word anywhere in the user's text vetoes resolution.
func (a *Analyzer) DetectResolution(transcript models.Transcript) bool {
	var assistantText, userText []string
	for _, msg := range transcript {
		switch msg.Sender.Normalize() {
		case models.SenderAssistant:
			assistantText = append(assistantText, strings.ToLower(msg.Text))
		case models.SenderUser:
			userText = append(userText, strings.ToLower(msg.Text))
		}
	}

	completed := containsAny(strings.Join(assistantText, " "), a.lexicon.resolution)
	vetoed := containsAny(strings.Join(userText, " "), a.lexicon.negativeList)

	return completed && !vetoed
}

// EscalationNeeded flags unresolved conversations with a negative user.
func EscalationNeeded(resolution bool, sentiment models.Sentiment) bool {
	return !resolution && sentiment == models.SentimentNegative
}

// CompletenessScore credits assistant messages that request missing
// information and, independently, messages that confirm fulfillment.
func (a *Analyzer) CompletenessScore(assistantTexts []string) float64 {
	total := 0.0
	for _, text := range assistantTexts {
		lowered := strings.ToLower(text)
		if containsAll(lowered, a.lexicon.infoRequestAll) || containsAny(lowered, a.lexicon.infoRequestAny) {
			total += infoRequestCredit
		}
		if containsAny(lowered, a.lexicon.fulfillment) {
			total += fulfillmentCredit
		}
	}

	mean := total / float64(max(1, len(assistantTexts)))
	return aggregator.Round(math.Min(1.0, mean), 3)
}
