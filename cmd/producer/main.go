package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	red "github.com/povarna/generative-ai-agents/conversation-analyzer/internal/redis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/setup"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/setup/logger"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/stream/redis"
	"github.com/rs/zerolog/log"
)

func main() {
	data := flag.String("d", "", `Inline JSON request: {"conversation_id":"..."} or {"request_id":"...","messages":[...]}`)
	conversationID := flag.String("conversation", "", "Stored conversation id to analyse")
	stream := flag.String("stream", "", "Stream name (default: ANALYSIS_STREAM or analysis-requests)")
	flag.Parse()

	if *data == "" && *conversationID == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>' | -conversation <id>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := setup.LoadConfig()
	logger.New(cfg.LogLevel)

	if *stream == "" {
		*stream = cfg.Stream
	}

	if err := run(cfg, *data, *conversationID, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(cfg *setup.Config, data, conversationID, stream string) error {
	req := models.AnalysisRequest{ConversationID: conversationID}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &req); err != nil {
			return fmt.Errorf("invalid request JSON: %w", err)
		}
	}

	ctx := context.Background()
	client, err := red.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 3)
	if err != nil {
		return err
	}
	defer client.Close()

	id, err := redis.Publish(ctx, client, stream, req)
	if err != nil {
		return err
	}

	log.Info().
		Str("stream", stream).
		Str("id", id).
		Str("conversation_id", req.ConversationID).
		Str("request_id", req.RequestID).
		Msg("Published successfully!")
	return nil
}
