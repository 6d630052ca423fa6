package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/metrics"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . ConversationStore,ConversationAnalyzer

// ConversationStore persists conversations and their analyses
type ConversationStore interface {
	CreateConversation(ctx context.Context, title string, transcript models.Transcript) (models.Conversation, error)
	GetConversation(ctx context.Context, id string) (models.Conversation, error)
	ListUnanalyzed(ctx context.Context, limit int) ([]string, error)
	SaveAnalysis(ctx context.Context, conversationID string, result models.AnalysisResult) (int64, error)
	ListReports(ctx context.Context, limit int) ([]models.Report, error)
}

// ConversationAnalyzer scores a single transcript
type ConversationAnalyzer interface {
	AnalyzeConversation(transcript models.Transcript) (models.AnalysisResult, error)
}

var ErrEmptyTranscript = errors.New("no chat messages found")

const (
	DefaultTitle   = "Chat Upload"
	DefaultWorkers = 4

	// maxPending bounds a single sweep.
	maxPending = 10000

	sourceInline = "inline"
	sourceStored = "stored"
)

// SweepSummary reports the outcome of AnalyzePending.
type SweepSummary struct {
	Processed int `json:"processed_conversations"`
	Failed    int `json:"failed_conversations"`
}

type Executor struct {
	store    ConversationStore
	analyzer ConversationAnalyzer
	workers  int
	logger   *zerolog.Logger
}

func NewExecutor(
	store ConversationStore,
	analyzer ConversationAnalyzer,
	workers int,
	logger *zerolog.Logger,
) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{
		store:    store,
		analyzer: analyzer,
		workers:  workers,
		logger:   logger,
	}
}

// Upload stores a transcript and returns the new conversation id.
func (e *Executor) Upload(ctx context.Context, title string, transcript models.Transcript) (string, error) {
	if len(transcript) == 0 {
		return "", ErrEmptyTranscript
	}
	if title == "" {
		title = DefaultTitle
	}

	conversation, err := e.store.CreateConversation(ctx, title, transcript)
	if err != nil {
		return "", fmt.Errorf("failed to store conversation: %w", err)
	}

	e.logger.Info().
		Str("conversationID", conversation.ID).
		Int("messages", len(transcript)).
		Msg("conversation uploaded")
	return conversation.ID, nil
}

// AnalyzeTranscript scores a transcript without storing anything.
func (e *Executor) AnalyzeTranscript(ctx context.Context, transcript models.Transcript) (models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return models.AnalysisResult{}, err
	}

	result, err := e.analyzer.AnalyzeConversation(transcript)
	if err != nil {
		metrics.RecordAnalysisError(sourceInline)
		return models.AnalysisResult{}, err
	}

	e.record(sourceInline, "", result)
	return result, nil
}

// AnalyzeStored loads a stored conversation, analyzes it and persists the
// result.
func (e *Executor) AnalyzeStored(ctx context.Context, conversationID string) (models.Report, error) {
	conversation, err := e.store.GetConversation(ctx, conversationID)
	if err != nil {
		return models.Report{}, err
	}

	result, err := e.analyzer.AnalyzeConversation(conversation.Messages)
	if err != nil {
		metrics.RecordAnalysisError(sourceStored)
		return models.Report{}, fmt.Errorf("failed to analyze conversation %s: %w", conversationID, err)
	}

	id, err := e.store.SaveAnalysis(ctx, conversationID, result)
	if err != nil {
		metrics.RecordAnalysisError(sourceStored)
		return models.Report{}, err
	}

	e.record(sourceStored, conversationID, result)
	return models.Report{
		ID:           id,
		Conversation: conversation,
		Analysis:     result,
	}, nil
}

func (e *Executor) ListReports(ctx context.Context, limit int) ([]models.Report, error) {
	return e.store.ListReports(ctx, limit)
}

// AnalyzePending analyzes every stored conversation that has no analysis
// yet. Failures are counted and do not stop the sweep.
func (e *Executor) AnalyzePending(ctx context.Context) (SweepSummary, error) {
	start := time.Now()

	ids, err := e.store.ListUnanalyzed(ctx, maxPending)
	if err != nil {
		return SweepSummary{}, fmt.Errorf("failed to list pending conversations: %w", err)
	}

	e.logger.Info().Int("pending", len(ids)).Int("workers", e.workers).Msg("starting pending analysis")

	jobs := make(chan string)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		summary SweepSummary
	)

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				_, err := e.AnalyzeStored(ctx, id)

				mu.Lock()
				if err != nil {
					summary.Failed++
				} else {
					summary.Processed++
				}
				mu.Unlock()

				if err != nil {
					e.logger.Error().Err(err).Str("conversationID", id).Msg("failed to analyze conversation")
				}
			}
		}()
	}

dispatch:
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- id:
		}
	}
	close(jobs)
	wg.Wait()

	metrics.RecordSweep(summary.Processed, summary.Failed, time.Since(start))
	e.logger.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Dur("duration", time.Since(start)).
		Msg("pending analysis complete")

	return summary, ctx.Err()
}

func (e *Executor) record(source, conversationID string, result models.AnalysisResult) {
	metrics.RecordAnalysis(source, result.OverallScore, result.EscalationNeeded, result.FallbackCount)
	e.logger.Info().
		Str("source", source).
		Str("conversationID", conversationID).
		Float64("overall", result.OverallScore).
		Str("sentiment", string(result.Sentiment)).
		Bool("resolution", result.Resolution).
		Bool("escalation", result.EscalationNeeded).
		Msg("analysis complete")
}
