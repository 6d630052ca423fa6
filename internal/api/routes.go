package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/conversation-analyzer/internal/models"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.
		Route(ws.POST("/conversations").
			To(handler.UploadConversation).
			Doc("Upload a chat transcript").
			Metadata(restfulspec.KeyOpenAPITags, []string{"conversations"}).
			Reads(UploadRequest{}).
			Writes(UploadResponse{}).
			Returns(201, "Created", UploadResponse{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/analyse").
			To(handler.AnalysePending).
			Doc("Analyse every conversation without an analysis").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analysis"}).
			Writes(SweepResponse{}).
			Returns(200, "OK", SweepResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/analyse/{conversation_id}").
			To(handler.AnalyseConversation).
			Doc("Analyse a stored conversation").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analysis"}).
			Param(ws.PathParameter("conversation_id", "Conversation id").DataType("string")).
			Writes(models.Report{}).
			Returns(201, "Created", models.Report{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(404, "Conversation Not Found", middleware.ErrorResponse{}).
			Returns(409, "Already Analysed", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.POST("/analyze").
			To(handler.Analyze).
			Doc("Analyse a transcript without storing it").
			Metadata(restfulspec.KeyOpenAPITags, []string{"analysis"}).
			Reads(AnalyzeRequest{}).
			Writes(models.AnalysisResult{}).
			Returns(200, "OK", models.AnalysisResult{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	ws.
		Route(ws.GET("/reports").
			To(handler.ListReports).
			Doc("List analyses, newest first").
			Metadata(restfulspec.KeyOpenAPITags, []string{"reports"}).
			Param(ws.QueryParameter("limit", "Maximum reports to return (default: 100, max: 1000)").DataType("integer").Required(false)).
			Writes([]models.Report{}).
			Returns(200, "OK", []models.Report{}).
			Returns(400, "Bad Request", middleware.ErrorResponse{}).
			Returns(500, "Internal Server Error", middleware.ErrorResponse{}))

	container.Add(ws)
}
