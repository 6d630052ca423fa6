package models

import (
	"encoding/json"
	"time"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"

	// senderAI is the assistant role as stored by the upload endpoint.
	senderAI Sender = "ai"
)

// Normalize maps wire aliases onto the canonical roles.
func (s Sender) Normalize() Sender {
	if s == senderAI {
		return SenderAssistant
	}
	return s
}

func (s Sender) Valid() bool {
	switch s.Normalize() {
	case SenderUser, SenderAssistant:
		return true
	}
	return false
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Message is one turn of a transcript.
type Message struct {
	Sender Sender `json:"sender" jsonschema:"message author: user or assistant"`
	Text   string `json:"message" jsonschema:"message text"`
}

// UnmarshalJSON accepts both "message" and "text" for the message body.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Sender  *Sender `json:"sender"`
		Message *string `json:"message"`
		Text    *string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Sender, m.Text = "", ""
	if raw.Sender != nil {
		m.Sender = *raw.Sender
	}
	switch {
	case raw.Message != nil:
		m.Text = *raw.Message
	case raw.Text != nil:
		m.Text = *raw.Text
	}
	return nil
}

type Transcript []Message

// Input message for the analysis stream and batch files
type AnalysisRequest struct {
	RequestID      string     `json:"request_id,omitempty"`
	ConversationID string     `json:"conversation_id,omitempty"`
	Messages       Transcript `json:"messages,omitempty"`
}

// AnalysisResult is the quality report for one transcript. Field names are
// fixed for downstream consumers.
type AnalysisResult struct {
	ClarityScore           float64   `json:"clarity_score"`
	RelevanceScore         float64   `json:"relevance_score"`
	AccuracyScore          float64   `json:"accuracy_score"`
	CompletenessScore      float64   `json:"completeness_score"`
	EmpathyScore           float64   `json:"empathy_score"`
	FallbackCount          int       `json:"fallback_count"`
	Sentiment              Sentiment `json:"sentiment"`
	SentimentScore         float64   `json:"sentiment_score"`
	Resolution             bool      `json:"resolution"`
	EscalationNeeded       bool      `json:"escalation_needed"`
	AvgUserResponseSeconds float64   `json:"avg_user_response_seconds"`
	AvgAIResponseSeconds   float64   `json:"avg_ai_response_seconds"`
	OverallScore           float64   `json:"overall_score"`
	CreatedAt              time.Time `json:"created_at"`
}

// Stored conversation
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  Transcript `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
}

// Report is a persisted analysis together with its conversation.
type Report struct {
	ID           int64          `json:"id"`
	Conversation Conversation   `json:"conversation"`
	Analysis     AnalysisResult `json:"analysis"`
}
