package analysis

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

func newTestAnalyzer(opts ...Option) *Analyzer {
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewAnalyzer(opts...)
}

func orderTranscript() models.Transcript {
	return models.Transcript{
		{Sender: models.SenderUser, Text: "Hi, I need help with my order."},
		{Sender: models.SenderAssistant, Text: "Sure, can you please share your order ID?"},
		{Sender: models.SenderUser, Text: "It's 12345."},
		{Sender: models.SenderAssistant, Text: "Thanks! Your order has been shipped and will arrive tomorrow."},
	}
}

func TestAnalyzeConversation_EmptyTranscript(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores := map[string]float64{
		"clarity":      result.ClarityScore,
		"relevance":    result.RelevanceScore,
		"accuracy":     result.AccuracyScore,
		"completeness": result.CompletenessScore,
		"empathy":      result.EmpathyScore,
	}
	for name, score := range scores {
		if score != 0.0 {
			t.Errorf("expected %s score 0.0, got %v", name, score)
		}
	}

	if result.FallbackCount != 0 {
		t.Errorf("expected no fallbacks, got %d", result.FallbackCount)
	}
	if result.Sentiment != models.SentimentNeutral || result.SentimentScore != 0.5 {
		t.Errorf("expected neutral 0.5, got %s %v", result.Sentiment, result.SentimentScore)
	}
	if result.Resolution || result.EscalationNeeded {
		t.Errorf("expected no resolution and no escalation, got %v %v", result.Resolution, result.EscalationNeeded)
	}
	if result.AvgUserResponseSeconds != 8.0 || result.AvgAIResponseSeconds != 12.0 {
		t.Errorf("unexpected response times: %v/%v", result.AvgUserResponseSeconds, result.AvgAIResponseSeconds)
	}
	if !almostEqual(result.OverallScore, 0.06) {
		t.Errorf("expected overall 0.06, got %v", result.OverallScore)
	}
}

func TestAnalyzeConversation_OrderExample(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Resolution {
		t.Error("expected resolution")
	}
	if result.FallbackCount != 0 {
		t.Errorf("expected no fallbacks, got %d", result.FallbackCount)
	}
	if result.CompletenessScore <= 0 {
		t.Errorf("expected positive completeness, got %v", result.CompletenessScore)
	}
	if !almostEqual(result.CompletenessScore, 0.8) {
		t.Errorf("expected completeness 0.8, got %v", result.CompletenessScore)
	}
	if result.Sentiment != models.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %s", result.Sentiment)
	}
	if result.EscalationNeeded {
		t.Error("expected no escalation")
	}
	if result.AccuracyScore != 0.5 {
		t.Errorf("expected accuracy 0.5, got %v", result.AccuracyScore)
	}

	// clarity (0.67 + 0.697) / 2 and relevance (0.143 + 0) / 2 sit on a rounding edge
	if math.Abs(result.ClarityScore-0.683) > 0.0011 {
		t.Errorf("expected clarity ~0.683, got %v", result.ClarityScore)
	}
	if math.Abs(result.RelevanceScore-0.071) > 0.0011 {
		t.Errorf("expected relevance ~0.071, got %v", result.RelevanceScore)
	}
	if !almostEqual(result.OverallScore, 0.494) {
		t.Errorf("expected overall 0.494, got %v", result.OverallScore)
	}
}

func TestAnalyzeConversation_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer()

	first, err := analyzer.AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := analyzer.AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first.CreatedAt, second.CreatedAt = time.Time{}, time.Time{}
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestAnalyzeConversation_CreatedAtIsUTC(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", result.CreatedAt.Location())
	}
	if !result.CreatedAt.Equal(fixedTime) {
		t.Errorf("expected %v, got %v", fixedTime, result.CreatedAt)
	}
}

func TestAnalyzeConversation_HedgeBeatsDigit(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{
		{Sender: models.SenderUser, Text: "When will it arrive?"},
		{Sender: models.SenderAssistant, Text: "I think it's 5 days"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AccuracyScore != 0.4 {
		t.Errorf("expected accuracy 0.4, got %v", result.AccuracyScore)
	}
}

func TestAnalyzeConversation_AssistantOnly(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{
		{Sender: models.SenderAssistant, Text: "Hello! How can I help you today?"},
		{Sender: models.SenderAssistant, Text: "Are you still there?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RelevanceScore != 0.0 {
		t.Errorf("expected relevance 0.0, got %v", result.RelevanceScore)
	}
	if result.Sentiment != models.SentimentNeutral || result.SentimentScore != 0.5 {
		t.Errorf("expected neutral 0.5, got %s %v", result.Sentiment, result.SentimentScore)
	}
}

func TestAnalyzeConversation_UserOnly(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{
		{Sender: models.SenderUser, Text: "This is bad, my order is late!"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ClarityScore != 0 || result.AccuracyScore != 0 || result.CompletenessScore != 0 {
		t.Errorf("expected zero assistant scores, got %+v", result)
	}
	if result.Sentiment != models.SentimentNegative {
		t.Errorf("expected negative sentiment, got %s", result.Sentiment)
	}
	if !result.EscalationNeeded {
		t.Error("expected escalation for an unresolved negative conversation")
	}
}

func TestAnalyzeConversation_ResolutionVeto(t *testing.T) {
	result, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{
		{Sender: models.SenderUser, Text: "There is a problem with my delivery"},
		{Sender: models.SenderAssistant, Text: "Your replacement has shipped."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Resolution {
		t.Error("expected negative user language to veto resolution")
	}
}

func TestAnalyzeConversation_AIAlias(t *testing.T) {
	canonical, err := newTestAnalyzer().AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	aliased := orderTranscript()
	for i := range aliased {
		if aliased[i].Sender == models.SenderAssistant {
			aliased[i].Sender = "ai"
		}
	}
	got, err := newTestAnalyzer().AnalyzeConversation(aliased)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != canonical {
		t.Errorf("expected the ai alias to score like assistant, got %+v", got)
	}
}

func TestAnalyzeConversation_UnknownSender(t *testing.T) {
	_, err := newTestAnalyzer().AnalyzeConversation(models.Transcript{
		{Sender: models.SenderUser, Text: "hello"},
		{Sender: "system", Text: "you are a bot"},
	})

	if !errors.Is(err, ErrUnknownSender) {
		t.Errorf("expected ErrUnknownSender, got %v", err)
	}
}

func TestAnalyzeConversation_CustomLexicon(t *testing.T) {
	lexicon := DefaultLexicon()
	lexicon.Positive = []string{"merci"}
	lexicon.Negative = []string{"horrible"}
	lexicon.Empathy = []string{"désolé"}

	result, err := newTestAnalyzer(WithLexicon(lexicon)).AnalyzeConversation(models.Transcript{
		{Sender: models.SenderUser, Text: "C'est horrible"},
		{Sender: models.SenderAssistant, Text: "Désolé pour le retard"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Sentiment != models.SentimentNegative {
		t.Errorf("expected negative sentiment from the custom lexicon, got %s", result.Sentiment)
	}
	if result.EmpathyScore != 0.5 {
		t.Errorf("expected empathy 0.5 from the custom lexicon, got %v", result.EmpathyScore)
	}
}

func TestAnalyzeConversation_CustomResponseTimeEstimator(t *testing.T) {
	estimator := ResponseTimeEstimator{SecondsPerExchange: 30, UserShare: 0.5}

	result, err := newTestAnalyzer(WithResponseTimeEstimator(estimator)).AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AvgUserResponseSeconds != 15.0 {
		t.Errorf("AvgUserResponseSeconds: %v, want: 15", result.AvgUserResponseSeconds)
	}
	if result.AvgAIResponseSeconds != 15.0 {
		t.Errorf("AvgAIResponseSeconds: %v, want: 15", result.AvgAIResponseSeconds)
	}
}

func TestAnalyzeConversation_Invariants(t *testing.T) {
	transcripts := []models.Transcript{
		{},
		orderTranscript(),
		{{Sender: models.SenderUser, Text: ""}, {Sender: models.SenderAssistant, Text: ""}},
		{{Sender: models.SenderUser, Text: "?!"}, {Sender: models.SenderAssistant, Text: "..."}},
		{
			{Sender: models.SenderUser, Text: "I'm angry, this is wrong and late!"},
			{Sender: models.SenderAssistant, Text: "I'm sorry, I don't know. I think maybe it's delayed."},
			{Sender: models.SenderUser, Text: "Not good."},
			{Sender: models.SenderAssistant, Text: "I understand and apologize. Can you share the tracking number? It might be delivered by 5pm."},
		},
		{
			{Sender: models.SenderUser, Text: "Thanks, great service, awesome!"},
			{Sender: models.SenderAssistant, Text: "Happy to help. Your refund is completed and the item was delivered."},
		},
	}

	analyzer := NewAnalyzer()
	for i, transcript := range transcripts {
		result, err := analyzer.AnalyzeConversation(transcript)
		if err != nil {
			t.Fatalf("transcript %d: unexpected error: %v", i, err)
		}

		bounded := map[string]float64{
			"clarity":      result.ClarityScore,
			"relevance":    result.RelevanceScore,
			"empathy":      result.EmpathyScore,
			"completeness": result.CompletenessScore,
			"sentiment":    result.SentimentScore,
			"accuracy":     result.AccuracyScore,
			"overall":      result.OverallScore,
		}
		for name, v := range bounded {
			if v < 0 || v > 1 {
				t.Errorf("transcript %d: %s score %v out of [0,1]", i, name, v)
			}
		}
		if result.FallbackCount < 0 {
			t.Errorf("transcript %d: negative fallback count", i)
		}

		wantEscalation := !result.Resolution && result.Sentiment == models.SentimentNegative
		if result.EscalationNeeded != wantEscalation {
			t.Errorf("transcript %d: escalation %v inconsistent with resolution %v and sentiment %s",
				i, result.EscalationNeeded, result.Resolution, result.Sentiment)
		}
	}
}

func TestAnalyzeConversation_ConcurrentCallers(t *testing.T) {
	analyzer := newTestAnalyzer()
	want, err := analyzer.AnalyzeConversation(orderTranscript())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan models.AnalysisResult, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := analyzer.AnalyzeConversation(orderTranscript())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	for got := range results {
		if got != want {
			t.Errorf("concurrent result differs: %+v", got)
		}
	}
}
