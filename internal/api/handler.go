package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/analysis"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/executor"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/store"
	"github.com/rs/zerolog"
)

const (
	defaultReportLimit = 100
	maxReportLimit     = 1000
	maxBodyBytes       = 4 << 20
)

// ConversationService is the executor surface the handlers depend on.
type ConversationService interface {
	Upload(ctx context.Context, title string, transcript models.Transcript) (string, error)
	AnalyzeTranscript(ctx context.Context, transcript models.Transcript) (models.AnalysisResult, error)
	AnalyzeStored(ctx context.Context, conversationID string) (models.Report, error)
	AnalyzePending(ctx context.Context) (executor.SweepSummary, error)
	ListReports(ctx context.Context, limit int) ([]models.Report, error)
}

type Handler struct {
	service ConversationService
	logger  *zerolog.Logger
}

func NewHandler(service ConversationService, logger *zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// POST /api/v1/conversations
// Body: JSON array of messages, {"messages": [...]} or a JSON string of either
// Returns: UploadResponse
func (h *Handler) UploadConversation(req *restful.Request, resp *restful.Response) {
	body, err := io.ReadAll(io.LimitReader(req.Request.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read request body")
		middleware.HandleError(resp, middleware.ErrInvalidInput, http.StatusBadRequest)
		return
	}

	title, transcript, err := parseUpload(body)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Rejected upload")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	id, err := h.service.Upload(req.Request.Context(), title, transcript)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusCreated, UploadResponse{ConversationID: id})
}

// POST /api/v1/analyse
// Returns: SweepResponse
func (h *Handler) AnalysePending(req *restful.Request, resp *restful.Response) {
	summary, err := h.service.AnalyzePending(req.Request.Context())
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, SweepResponse{
		Status:                 "success",
		ProcessedConversations: summary.Processed,
		FailedConversations:    summary.Failed,
	})
}

// POST /api/v1/analyse/{conversation_id}
// Returns: models.Report
func (h *Handler) AnalyseConversation(req *restful.Request, resp *restful.Response) {
	conversationID := req.PathParameter("conversation_id")

	report, err := h.service.AnalyzeStored(req.Request.Context(), conversationID)
	if err != nil {
		h.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("Analysis failed")
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusCreated, report)
}

// POST /api/v1/analyze
// Body: AnalyzeRequest
// Returns: models.AnalysisResult, nothing is stored
func (h *Handler) Analyze(req *restful.Request, resp *restful.Response) {
	var analyzeRequest AnalyzeRequest
	if err := req.ReadEntity(&analyzeRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.AnalyzeTranscript(req.Request.Context(), analyzeRequest.Messages)
	if err != nil {
		middleware.HandleError(resp, err, statusFor(err))
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/reports?limit=
// Returns: []models.Report newest first
func (h *Handler) ListReports(req *restful.Request, resp *restful.Response) {
	limit := defaultReportLimit
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			middleware.HandleError(resp, middleware.ErrInvalidLimit, http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxReportLimit)
	}

	reports, err := h.service.ListReports(req.Request.Context(), limit)
	if err != nil {
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}
	if reports == nil {
		reports = []models.Report{}
	}

	resp.WriteHeaderAndEntity(http.StatusOK, reports)
}

// Health handler GET API /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	healthResponse := HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	}

	resp.WriteHeaderAndEntity(http.StatusOK, healthResponse)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrConversationNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyAnalyzed):
		return http.StatusConflict
	case errors.Is(err, executor.ErrEmptyTranscript),
		errors.Is(err, analysis.ErrUnknownSender):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
