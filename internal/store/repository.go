package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrAlreadyAnalyzed      = errors.New("conversation already analyzed")
)

const uniqueViolation = "23505"

// CreateConversation stores a conversation and its messages in one transaction.
func (db *DB) CreateConversation(ctx context.Context, title string, transcript models.Transcript) (models.Conversation, error) {
	conversation := models.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		Messages:  transcript,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO conversations (id, title, created_at) VALUES ($1, $2, $3)`,
		conversation.ID, conversation.Title, conversation.CreatedAt)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to insert conversation: %w", err)
	}

	rows := make([][]any, 0, len(transcript))
	for i, msg := range transcript {
		rows = append(rows, []any{conversation.ID, i, string(msg.Sender.Normalize()), msg.Text})
	}

	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"messages"},
		[]string{"conversation_id", "position", "sender", "text"},
		pgx.CopyFromRows(rows),
	); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to insert messages: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Conversation{}, fmt.Errorf("failed to commit conversation: %w", err)
	}

	log.Info().Str("conversation_id", conversation.ID).Int("messages", len(transcript)).Msg("Conversation stored")
	return conversation, nil
}

func (db *DB) GetConversation(ctx context.Context, id string) (models.Conversation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}

	var conversation models.Conversation
	err := db.Pool.QueryRow(ctx,
		`SELECT id, title, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&conversation.ID, &conversation.Title, &conversation.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Conversation{}, fmt.Errorf("%w: %s", ErrConversationNotFound, id)
	}
	if err != nil {
		return models.Conversation{}, fmt.Errorf("failed to load conversation %s: %w", id, err)
	}

	messages, err := db.messages(ctx, id)
	if err != nil {
		return models.Conversation{}, err
	}
	conversation.Messages = messages

	return conversation, nil
}

func (db *DB) messages(ctx context.Context, conversationID string) (models.Transcript, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT sender, text FROM messages WHERE conversation_id = $1 ORDER BY position`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	transcript := models.Transcript{}
	for rows.Next() {
		var sender, text string
		if err := rows.Scan(&sender, &text); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		transcript = append(transcript, models.Message{Sender: models.Sender(sender), Text: text})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return transcript, nil
}

// ListUnanalyzed returns the ids of conversations without an analysis,
// oldest first.
func (db *DB) ListUnanalyzed(ctx context.Context, limit int) ([]string, error) {
	query := `
	SELECT c.id
	FROM conversations c
	LEFT JOIN conversation_analyses a ON a.conversation_id = c.id
	WHERE a.id IS NULL
	ORDER BY c.created_at
	LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query unanalyzed conversations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}

// SaveAnalysis stores the analysis of a conversation. A conversation has at
// most one analysis.
func (db *DB) SaveAnalysis(ctx context.Context, conversationID string, result models.AnalysisResult) (int64, error) {
	query := `
	INSERT INTO conversation_analyses (
		conversation_id, clarity_score, relevance_score, accuracy_score,
		completeness_score, empathy_score, fallback_count, sentiment,
		sentiment_score, resolution, escalation_needed,
		avg_user_response_seconds, avg_ai_response_seconds, overall_score, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	RETURNING id`

	var id int64
	err := db.Pool.QueryRow(ctx, query,
		conversationID,
		result.ClarityScore,
		result.RelevanceScore,
		result.AccuracyScore,
		result.CompletenessScore,
		result.EmpathyScore,
		result.FallbackCount,
		string(result.Sentiment),
		result.SentimentScore,
		result.Resolution,
		result.EscalationNeeded,
		result.AvgUserResponseSeconds,
		result.AvgAIResponseSeconds,
		result.OverallScore,
		result.CreatedAt,
	).Scan(&id)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, fmt.Errorf("%w: %s", ErrAlreadyAnalyzed, conversationID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis for %s: %w", conversationID, err)
	}

	return id, nil
}

// ListReports returns stored analyses with their conversations, newest first.
func (db *DB) ListReports(ctx context.Context, limit int) ([]models.Report, error) {
	query := `
	SELECT
		a.id, c.id, c.title, c.created_at,
		a.clarity_score, a.relevance_score, a.accuracy_score, a.completeness_score,
		a.empathy_score, a.fallback_count, a.sentiment, a.sentiment_score,
		a.resolution, a.escalation_needed, a.avg_user_response_seconds,
		a.avg_ai_response_seconds, a.overall_score, a.created_at
	FROM conversation_analyses a
	JOIN conversations c ON c.id = a.conversation_id
	ORDER BY a.created_at DESC
	LIMIT $1`

	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var (
			report    models.Report
			sentiment string
		)
		a := &report.Analysis
		if err := rows.Scan(
			&report.ID, &report.Conversation.ID, &report.Conversation.Title, &report.Conversation.CreatedAt,
			&a.ClarityScore, &a.RelevanceScore, &a.AccuracyScore, &a.CompletenessScore,
			&a.EmpathyScore, &a.FallbackCount, &sentiment, &a.SentimentScore,
			&a.Resolution, &a.EscalationNeeded, &a.AvgUserResponseSeconds,
			&a.AvgAIResponseSeconds, &a.OverallScore, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		a.Sentiment = models.Sentiment(sentiment)
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	rows.Close()

	for i := range reports {
		messages, err := db.messages(ctx, reports[i].Conversation.ID)
		if err != nil {
			return nil, err
		}
		reports[i].Conversation.Messages = messages
	}

	return reports, nil
}
