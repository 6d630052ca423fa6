package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

type HealthResponse struct {
	Status  string `json:"status" description:"Service status"`
	Version string `json:"version" description:"API version"`
}

// UploadRequest documents the object form of an upload. A bare JSON array of
// messages, or a JSON string holding either form, is accepted as well.
type UploadRequest struct {
	Title    string           `json:"title,omitempty" description:"Conversation title (default: Chat Upload)"`
	Messages []models.Message `json:"messages" description:"Ordered chat messages"`
}

type UploadResponse struct {
	ConversationID string `json:"conversation_id" description:"Id of the stored conversation"`
}

type AnalyzeRequest struct {
	Messages []models.Message `json:"messages" description:"Ordered chat messages"`
}

type SweepResponse struct {
	Status                 string `json:"status" description:"Sweep status"`
	ProcessedConversations int    `json:"processed_conversations" description:"Conversations analysed"`
	FailedConversations    int    `json:"failed_conversations" description:"Conversations that failed analysis"`
}

type uploadEnvelope struct {
	Title    string             `json:"title"`
	Messages *[]json.RawMessage `json:"messages"`
}

type rawMessage struct {
	Sender  *string `json:"sender"`
	Message *string `json:"message"`
	Text    *string `json:"text"`
}

// parseUpload decodes an upload body into a title and transcript.
func parseUpload(body []byte) (string, models.Transcript, error) {
	return parseUploadBody(bytes.TrimSpace(body), true)
}

func parseUploadBody(body []byte, allowText bool) (string, models.Transcript, error) {
	if len(body) == 0 {
		return "", nil, middleware.ErrNoMessages
	}

	var (
		title string
		raw   []json.RawMessage
	)

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &raw); err != nil {
			return "", nil, middleware.ErrInvalidInput
		}
	case '{':
		var envelope uploadEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Messages == nil {
			return "", nil, middleware.ErrInvalidInput
		}
		title = envelope.Title
		raw = *envelope.Messages
	case '"':
		if !allowText {
			return "", nil, middleware.ErrInvalidInput
		}
		var text string
		if err := json.Unmarshal(body, &text); err != nil {
			return "", nil, middleware.ErrInvalidJSONText
		}
		inner := bytes.TrimSpace([]byte(text))
		if len(inner) > 0 && !json.Valid(inner) {
			return "", nil, middleware.ErrInvalidJSONText
		}
		return parseUploadBody(inner, false)
	default:
		return "", nil, middleware.ErrInvalidInput
	}

	if len(raw) == 0 {
		return "", nil, middleware.ErrNoMessages
	}

	transcript := make(models.Transcript, 0, len(raw))
	for i, item := range raw {
		msg, err := decodeMessage(item)
		if err != nil {
			return "", nil, fmt.Errorf("%w: message %d", err, i)
		}
		transcript = append(transcript, msg)
	}

	return title, transcript, nil
}

func decodeMessage(item json.RawMessage) (models.Message, error) {
	var raw rawMessage
	if err := json.Unmarshal(item, &raw); err != nil {
		return models.Message{}, middleware.ErrInvalidMessage
	}
	if raw.Sender == nil {
		return models.Message{}, middleware.ErrInvalidMessage
	}

	msg := models.Message{Sender: models.Sender(*raw.Sender)}
	switch {
	case raw.Message != nil:
		msg.Text = *raw.Message
	case raw.Text != nil:
		msg.Text = *raw.Text
	default:
		return models.Message{}, middleware.ErrInvalidMessage
	}

	if !msg.Sender.Valid() {
		return models.Message{}, middleware.ErrInvalidMessage
	}
	return msg, nil
}
