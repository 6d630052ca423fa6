package redis

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/executor"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	red "github.com/povarna/generative-ai-agents/conversation-analyzer/internal/redis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runIntegration = flag.Bool("integration", false, "Run integration tests against Redis (REDIS_ADDR)")

type fakeService struct {
	inline    models.Transcript
	stored    string
	result    models.AnalysisResult
	report    models.Report
	err       error
}

func (f *fakeService) AnalyzeTranscript(_ context.Context, transcript models.Transcript) (models.AnalysisResult, error) {
	f.inline = transcript
	return f.result, f.err
}

func (f *fakeService) AnalyzeStored(_ context.Context, id string) (models.Report, error) {
	f.stored = id
	return f.report, f.err
}

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]any
		expectErr error
		wantID    string
		wantMsgs  int
	}{
		{
			name:   "stored conversation",
			values: map[string]any{"payload": `{"conversation_id":"c-1"}`},
			wantID: "c-1",
		},
		{
			name:     "inline messages",
			values:   map[string]any{"payload": `{"request_id":"r-1","messages":[{"sender":"user","message":"hi"}]}`},
			wantMsgs: 1,
		},
		{
			name:      "missing payload",
			values:    map[string]any{"other": "x"},
			expectErr: ErrMissingPayload,
		},
		{
			name:      "empty request",
			values:    map[string]any{"payload": `{"request_id":"r-2"}`},
			expectErr: ErrEmptyRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := decodeRequest(tt.values)
			if tt.expectErr != nil {
				assert.True(t, errors.Is(err, tt.expectErr), "expected %v, got %v", tt.expectErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, req.ConversationID)
			assert.Len(t, req.Messages, tt.wantMsgs)
		})
	}
}

func TestDecodeRequest_InvalidJSON(t *testing.T) {
	_, err := decodeRequest(map[string]any{"payload": `{broken`})
	assert.Error(t, err)
}

func TestConsumer_Handle(t *testing.T) {
	t.Run("inline request returns result", func(t *testing.T) {
		service := &fakeService{result: models.AnalysisResult{OverallScore: 0.42}}
		consumer := NewConsumer(nil, DefaultStream, DefaultGroup, "test", service, testLogger())

		transcript := models.Transcript{{Sender: models.SenderUser, Text: "hi"}}
		result, retry := consumer.handle(context.Background(), models.AnalysisRequest{RequestID: "r-1", Messages: transcript})

		assert.False(t, retry)
		require.NotNil(t, result)
		assert.Equal(t, "r-1", result.RequestID)
		require.NotNil(t, result.Analysis)
		assert.Equal(t, 0.42, result.Analysis.OverallScore)
		assert.Empty(t, result.Error)
		assert.Equal(t, transcript, service.inline)
	})

	t.Run("inline failure carries error", func(t *testing.T) {
		service := &fakeService{err: errors.New("unknown message sender")}
		consumer := NewConsumer(nil, DefaultStream, DefaultGroup, "test", service, testLogger())

		result, retry := consumer.handle(context.Background(), models.AnalysisRequest{RequestID: "r-2", Messages: models.Transcript{}})

		assert.False(t, retry)
		require.NotNil(t, result)
		assert.Nil(t, result.Analysis)
		assert.Equal(t, "unknown message sender", result.Error)
	})

	t.Run("stored request publishes nothing", func(t *testing.T) {
		service := &fakeService{report: models.Report{ID: 3}}
		consumer := NewConsumer(nil, DefaultStream, DefaultGroup, "test", service, testLogger())

		result, retry := consumer.handle(context.Background(), models.AnalysisRequest{ConversationID: "c-9"})

		assert.Nil(t, result)
		assert.False(t, retry)
		assert.Equal(t, "c-9", service.stored)
	})

	t.Run("stored failures", func(t *testing.T) {
		tests := []struct {
			name      string
			err       error
			wantRetry bool
		}{
			{name: "database unavailable", err: errors.New("connection refused"), wantRetry: true},
			{name: "context cancelled", err: context.Canceled, wantRetry: true},
			{name: "not found", err: store.ErrConversationNotFound, wantRetry: false},
			{name: "already analysed", err: fmt.Errorf("save: %w", store.ErrAlreadyAnalyzed), wantRetry: false},
			{name: "unknown sender", err: fmt.Errorf("message 0: %w", analysis.ErrUnknownSender), wantRetry: false},
			{name: "empty transcript", err: executor.ErrEmptyTranscript, wantRetry: false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				service := &fakeService{err: tt.err}
				consumer := NewConsumer(nil, DefaultStream, DefaultGroup, "test", service, testLogger())

				result, retry := consumer.handle(context.Background(), models.AnalysisRequest{ConversationID: "c-9"})

				assert.Nil(t, result)
				assert.Equal(t, tt.wantRetry, retry)
			})
		}
	})
}

func TestResultsStream(t *testing.T) {
	assert.Equal(t, "analysis-requests:results", ResultsStream(DefaultStream))
}

func TestNewRedisStreamConfig_Defaults(t *testing.T) {
	cfg := NewRedisStreamConfig("localhost:6379", "", "", "", "")

	assert.Equal(t, DefaultStream, cfg.Stream)
	assert.Equal(t, DefaultGroup, cfg.Group)
	assert.Equal(t, "analyzer", cfg.ConsumerName)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestConsumer_Integration_InlineRoundTrip(t *testing.T) {
	if !*runIntegration {
		t.Skip("Skipping integration test. Use -integration flag to run")
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := red.ConnectRedis(ctx, addr, os.Getenv("REDIS_PASSWORD"), 1)
	require.NoError(t, err)
	defer client.Close()

	stream := "analysis-requests-test-" + time.Now().Format("150405.000000")
	defer client.Del(context.Background(), stream, ResultsStream(stream))

	service := &fakeService{result: models.AnalysisResult{Sentiment: models.SentimentNeutral, OverallScore: 0.06}}
	consumer := NewConsumer(client, stream, DefaultGroup, "it", service, testLogger())
	require.NoError(t, consumer.Setup(ctx))
	require.NoError(t, consumer.Setup(ctx), "setup is idempotent")

	_, err = Publish(ctx, client, stream, models.AnalysisRequest{
		RequestID: "it-1",
		Messages:  models.Transcript{{Sender: models.SenderUser, Text: "hello"}},
	})
	require.NoError(t, err)

	consumeCtx, stop := context.WithCancel(ctx)
	go consumer.Start(consumeCtx)
	defer stop()

	var entries []redis.XMessage
	require.Eventually(t, func() bool {
		entries, err = client.XRange(ctx, ResultsStream(stream), "-", "+").Result()
		return err == nil && len(entries) == 1
	}, 10*time.Second, 100*time.Millisecond)

	var result Result
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["payload"].(string)), &result))
	assert.Equal(t, "it-1", result.RequestID)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, models.SentimentNeutral, result.Analysis.Sentiment)
}
