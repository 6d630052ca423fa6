package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/aggregator"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

var ErrUnknownSender = errors.New("unknown message sender")

// Analyzer scores transcripts. It holds only immutable configuration and is
// safe for concurrent use.
type Analyzer struct {
	lexicon    compiledLexicon
	aggregator *aggregator.Aggregator
	estimator  ResponseTimeEstimator
	now        func() time.Time
}

type Option func(*Analyzer)

// WithLexicon replaces the bundled lexicon. The lexicon is copied.
func WithLexicon(l Lexicon) Option {
	return func(a *Analyzer) {
		a.lexicon = compile(l)
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Analyzer) {
		a.now = now
	}
}

func WithResponseTimeEstimator(e ResponseTimeEstimator) Option {
	return func(a *Analyzer) {
		a.estimator = e
	}
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		lexicon:    compile(DefaultLexicon()),
		aggregator: aggregator.NewAggregator(aggregator.DefaultWeights()),
		estimator:  DefaultResponseTimeEstimator(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeConversation scores a transcript. Empty transcripts, single-role
// transcripts and empty messages resolve to defaults; only a message with an
// unknown sender is rejected.
func (a *Analyzer) AnalyzeConversation(transcript models.Transcript) (models.AnalysisResult, error) {
	var userTexts, assistantTexts []string
	for i, msg := range transcript {
		switch msg.Sender.Normalize() {
		case models.SenderUser:
			userTexts = append(userTexts, msg.Text)
		case models.SenderAssistant:
			assistantTexts = append(assistantTexts, msg.Text)
		default:
			return models.AnalysisResult{}, fmt.Errorf("message %d: %w: %q", i, ErrUnknownSender, msg.Sender)
		}
	}

	clarity := ScoreEach(assistantTexts, ClarityScore)
	relevance := RelevanceSeries(transcript)
	empathy := ScoreEach(assistantTexts, a.EmpathyScore)
	accuracy := ScoreEach(assistantTexts, a.AccuracyScore)

	fallbacks := 0
	for _, text := range assistantTexts {
		fallbacks += a.FallbackCount(text)
	}

	sentiment := a.SentimentOfUser(userTexts)
	resolution := a.DetectResolution(transcript)
	userSeconds, assistantSeconds := a.estimator.Estimate()

	scores := aggregator.Scores{
		Clarity:        aggregator.Round(aggregator.Mean(clarity), 3),
		Relevance:      aggregator.Round(aggregator.Mean(relevance), 3),
		Accuracy:       aggregator.Round(aggregator.Mean(accuracy), 3),
		Completeness:   a.CompletenessScore(assistantTexts),
		Empathy:        aggregator.Round(aggregator.Mean(empathy), 3),
		SentimentScore: sentiment.Score,
		Resolution:     resolution,
	}

	return models.AnalysisResult{
		ClarityScore:           scores.Clarity,
		RelevanceScore:         scores.Relevance,
		AccuracyScore:          scores.Accuracy,
		CompletenessScore:      scores.Completeness,
		EmpathyScore:           scores.Empathy,
		FallbackCount:          fallbacks,
		Sentiment:              sentiment.Label,
		SentimentScore:         sentiment.Score,
		Resolution:             resolution,
		EscalationNeeded:       EscalationNeeded(resolution, sentiment.Label),
		AvgUserResponseSeconds: userSeconds,
		AvgAIResponseSeconds:   assistantSeconds,
		OverallScore:           a.aggregator.Overall(scores),
		CreatedAt:              a.now().UTC(),
	}, nil
}
