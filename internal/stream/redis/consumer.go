package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/executor"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	red "github.com/povarna/generative-ai-agents/conversation-analyzer/internal/redis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const payloadField = "payload"

var (
	ErrMissingPayload = errors.New("missing payload field")
	ErrEmptyRequest   = errors.New("request has neither conversation_id nor messages")
)

// AnalysisService runs the analyses requested on the stream
type AnalysisService interface {
	AnalyzeTranscript(ctx context.Context, transcript models.Transcript) (models.AnalysisResult, error)
	AnalyzeStored(ctx context.Context, conversationID string) (models.Report, error)
}

// Result is published for every inline request.
type Result struct {
	RequestID string                 `json:"request_id"`
	Analysis  *models.AnalysisResult `json:"analysis,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	service      AnalysisService
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, service AnalysisService, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		service:      service,
		logger:       logger,
	}
}

func NewConsumerFromConfig(ctx context.Context, cfg *RedisStreamConfig, service AnalysisService, logger *zerolog.Logger) (*Consumer, error) {
	client, err := red.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.MaxRetries)
	if err != nil {
		return nil, err
	}
	return NewConsumer(client, cfg.Stream, cfg.Group, cfg.ConsumerName, service, logger), nil
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", c.groupID, err)
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    10,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	req, err := decodeRequest(msg.Values)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, retry := c.handle(ctx, req)
	if retry {
		// Left in the pending entries list. The nightly sweep also picks up
		// conversations that were never analysed.
		c.logger.Warn().Str("id", msg.ID).Msg("Message left pending for retry")
		return
	}
	if result != nil {
		if err := c.publish(ctx, *result); err != nil {
			c.logger.Error().Err(err).Str("request_id", result.RequestID).Msg("Failed to publish result")
		}
	}

	c.ack(ctx, msg.ID)
}

// handle runs one request. Inline requests yield a Result to publish; stored
// conversations are persisted by the service and yield nil.
// handle runs one request. retry is true when a stored analysis failed on a
// transient error; the entry then stays pending instead of being acked.
func (c *Consumer) handle(ctx context.Context, req models.AnalysisRequest) (result *Result, retry bool) {
	if req.ConversationID != "" {
		report, err := c.service.AnalyzeStored(ctx, req.ConversationID)
		if err != nil {
			c.logger.Error().Err(err).Str("conversation_id", req.ConversationID).Msg("Stored analysis failed")
			return nil, !permanentFailure(err)
		}
		c.logger.Info().
			Str("conversation_id", req.ConversationID).
			Int64("report_id", report.ID).
			Float64("overall", report.Analysis.OverallScore).
			Msg("Stored analysis complete")
		return nil, false
	}

	result = &Result{RequestID: req.RequestID}
	analyzed, err := c.service.AnalyzeTranscript(ctx, req.Messages)
	if err != nil {
		c.logger.Error().Err(err).Str("request_id", req.RequestID).Msg("Inline analysis failed")
		result.Error = err.Error()
		return result, false
	}
	result.Analysis = &analyzed
	return result, false
}

// permanentFailure reports whether retrying a stored analysis cannot succeed.
func permanentFailure(err error) bool {
	return errors.Is(err, store.ErrConversationNotFound) ||
		errors.Is(err, store.ErrAlreadyAnalyzed) ||
		errors.Is(err, analysis.ErrUnknownSender) ||
		errors.Is(err, executor.ErrEmptyTranscript)
}

func (c *Consumer) publish(ctx context.Context, result Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: ResultsStream(c.stream),
		Values: map[string]any{payloadField: string(data)},
	}).Err()
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}

func decodeRequest(values map[string]any) (models.AnalysisRequest, error) {
	payload, ok := values[payloadField].(string)
	if !ok {
		return models.AnalysisRequest{}, ErrMissingPayload
	}

	var req models.AnalysisRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return models.AnalysisRequest{}, fmt.Errorf("invalid payload: %w", err)
	}
	if req.ConversationID == "" && req.Messages == nil {
		return models.AnalysisRequest{}, ErrEmptyRequest
	}
	return req, nil
}
