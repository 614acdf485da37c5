package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"peakbridge/internal/domain"
	"peakbridge/internal/export"
	"peakbridge/internal/middleware"
	"peakbridge/internal/service"
)

// JobHandler handles upload-batch endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create handles POST /api/v1/jobs. Multipart form: files[] plus
// optional comma-separated companies and platforms filter fields.
func (h *JobHandler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "expected multipart form upload")
		return
	}
	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}

	input := service.CreateJobInput{
		CreatedBy: userID,
		Filter: domain.JobFilter{
			Companies: splitList(c.PostForm("companies")),
			Platforms: splitList(c.PostForm("platforms")),
		},
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read uploaded file "+fh.Filename)
			return
		}
		defer f.Close()
		input.Files = append(input.Files, service.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		})
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, job)
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	jobs, total, err := h.jobService.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// Cancel handles POST /api/v1/jobs/:id/cancel
func (h *JobHandler) Cancel(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.CancelJob(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, job)
}

// ListFiles handles GET /api/v1/jobs/:id/files
func (h *JobHandler) ListFiles(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	files, err := h.jobService.ListFiles(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, files)
}

// ListRows handles GET /api/v1/jobs/:id/rows
func (h *JobHandler) ListRows(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	rows, err := h.jobService.ListRows(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// ExportCSV handles GET /api/v1/jobs/:id/export.csv
func (h *JobHandler) ExportCSV(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	rows, err := h.jobService.ExportRows(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(id.String(), "csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, rows); err != nil {
		// Headers are gone; all that is left is to log.
		_ = c.Error(err)
	}
}

// ExportXLSX handles GET /api/v1/jobs/:id/export.xlsx
func (h *JobHandler) ExportXLSX(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	rows, err := h.jobService.ExportRows(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(id.String(), "xlsx")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := export.WriteXLSX(c.Writer, rows); err != nil {
		_ = c.Error(err)
	}
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
