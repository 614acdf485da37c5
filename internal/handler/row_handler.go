package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"peakbridge/internal/service"
)

// RowHandler handles review edits on extracted rows.
type RowHandler struct {
	jobService service.JobService
}

// NewRowHandler creates a new RowHandler.
func NewRowHandler(jobService service.JobService) *RowHandler {
	return &RowHandler{jobService: jobService}
}

// Patch handles PATCH /api/v1/rows/:id. The body is a flat object of
// column-key edits; the edited row is re-validated and its review
// status recomputed.
func (h *RowHandler) Patch(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var patch service.RowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if len(patch) == 0 {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "no fields to update")
		return
	}

	rec, err := h.jobService.PatchRow(c.Request.Context(), id, patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}
