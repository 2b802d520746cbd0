package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tprm-backend/internal/documents"
	"tprm-backend/internal/shared/server/respond"
	"tprm-backend/internal/vendors"
)

// Handler wires analysis HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analysis", h.analyzeText)
	rg.POST("/documents/:id/analyze", h.analyzeDocument)
	rg.POST("/vendors/:id/analyze-all", h.analyzeAll)
	rg.GET("/vendors/:id/comprehensive", h.comprehensive)
}

type analyzeTextRequest struct {
	TextContent  string `json:"textContent" binding:"required"`
	DocumentType string `json:"documentType"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "textContent is required", nil)
		return
	}

	res, err := h.Svc.AnalyzeText(c.Request.Context(), req.DocumentType, req.TextContent)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrInjectionDetected):
			respond.Error(c, http.StatusBadRequest, ErrorCodeInjection, err.Error(), nil)
		case errors.Is(err, ErrEmptyInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnrecoverableOutput):
			respond.Error(c, http.StatusBadGateway, ErrorCodeLLMOutput, "analysis output could not be interpreted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze text", nil)
		}
		return
	}

	respond.OK(c, res)
}

func (h *Handler) analyzeDocument(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, err := h.Svc.AnalyzeDocument(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInjectionDetected):
			respond.Error(c, http.StatusBadRequest, ErrorCodeInjection, err.Error(), nil)
		case errors.Is(err, ErrEmptyInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnrecoverableOutput):
			respond.Error(c, http.StatusBadGateway, ErrorCodeLLMOutput, "analysis output could not be interpreted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to analyze document", nil)
		}
		return
	}

	respond.OK(c, toDocumentAnalysisResponse(doc))
}

func (h *Handler) analyzeAll(c *gin.Context) {
	vendorID := c.Param("id")
	c.Set("vendorId", vendorID)

	res, err := h.Svc.AnalyzeAll(c.Request.Context(), vendorID)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vendor not found", nil)
		case errors.Is(err, ErrNoDocuments), errors.Is(err, ErrTooManyDocuments):
			respond.Error(c, http.StatusBadRequest, ErrorCodePrecondition, err.Error(), nil)
		case errors.Is(err, ErrInjectionDetected):
			respond.Error(c, http.StatusBadRequest, ErrorCodeInjection, err.Error(), nil)
		case errors.Is(err, ErrEmptyInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUnrecoverableOutput):
			respond.Error(c, http.StatusBadGateway, ErrorCodeLLMOutput, "synthesis output could not be interpreted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to run comprehensive analysis", nil)
		}
		return
	}

	respond.OK(c, toComprehensiveResponse(res))
}

func (h *Handler) comprehensive(c *gin.Context) {
	vendorID := c.Param("id")
	c.Set("vendorId", vendorID)

	res, err := h.Svc.GetComprehensive(c.Request.Context(), vendorID)
	if err != nil {
		switch {
		case errors.Is(err, vendors.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vendor not found", nil)
		case errors.Is(err, ErrAssessmentNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no comprehensive assessment for vendor", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load comprehensive assessment", nil)
		}
		return
	}

	respond.OK(c, toComprehensiveResponse(res))
}
