package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"peakbridge/internal/detect"
	"peakbridge/internal/domain"
	"peakbridge/internal/service"
)

// ExtractHandler exposes the extraction engine for tooling and debugging:
// paste text, get the canonical row back without touching the queue.
type ExtractHandler struct {
	extractService service.ExtractService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService}
}

// ExtractRequest is the raw-text extraction request body.
type ExtractRequest struct {
	Text     string `json:"text" binding:"required"`
	Filename string `json:"filename"`
}

// Extract handles POST /api/v1/extract
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	outcome := h.extractService.ExtractDocument(c.Request.Context(), req.Text, req.Filename, domain.JobFilter{})
	RespondOK(c, outcome)
}

// Detect handles POST /api/v1/detect
func (h *ExtractHandler) Detect(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	platform, scores := detect.Details(req.Text, req.Filename)
	RespondOK(c, gin.H{
		"platform":     platform,
		"display_name": detect.DisplayName(platform),
		"scores":       scores,
	})
}
