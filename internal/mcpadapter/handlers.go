package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

const (
	AnalyzeToolName       = "analyze_conversation"
	AnalyzeStoredToolName = "analyze_stored_conversation"
)

// Service is the executor surface exposed as MCP tools.
type Service interface {
	AnalyzeTranscript(ctx context.Context, transcript models.Transcript) (models.AnalysisResult, error)
	AnalyzeStored(ctx context.Context, conversationID string) (models.Report, error)
}

// AnalyzeInput is the MCP tool input schema for an inline transcript.
type AnalyzeInput struct {
	Messages []models.Message `json:"messages" jsonschema:"ordered chat messages, sender is user or assistant"`
}

// AnalyzeStoredInput is the MCP tool input schema for a stored conversation.
type AnalyzeStoredInput struct {
	ConversationID string `json:"conversation_id" jsonschema:"id returned by the upload endpoint"`
}

// NewAnalyzeHandler returns a tool handler that scores an inline transcript.
// Pass the returned function to mcp.AddTool.
func NewAnalyzeHandler(service Service) func(context.Context, *mcp.CallToolRequest, AnalyzeInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, models.AnalysisResult, error) {
		result, err := service.AnalyzeTranscript(ctx, input.Messages)
		return nil, result, err
	}
}

// NewAnalyzeStoredHandler returns a tool handler that analyses a stored
// conversation and persists the report.
func NewAnalyzeStoredHandler(service Service) func(context.Context, *mcp.CallToolRequest, AnalyzeStoredInput) (*mcp.CallToolResult, models.Report, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeStoredInput) (*mcp.CallToolResult, models.Report, error) {
		report, err := service.AnalyzeStored(ctx, input.ConversationID)
		return nil, report, err
	}
}

// NewServer builds an MCP server exposing the analysis tools.
func NewServer(service Service, version string) *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "conversation-analyzer",
			Version: version,
		}, nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        AnalyzeToolName,
		Description: "Score a chat transcript for clarity, relevance, accuracy, completeness, empathy, sentiment and resolution. Nothing is stored.",
	}, NewAnalyzeHandler(service))

	mcp.AddTool(server, &mcp.Tool{
		Name:        AnalyzeStoredToolName,
		Description: "Analyse a stored conversation by id and persist the report.",
	}, NewAnalyzeStoredHandler(service))

	return server
}
