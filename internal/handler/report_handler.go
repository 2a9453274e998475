package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qalib/internal/domain"
	"qalib/internal/middleware"
	"qalib/internal/service"
)

// ReportHandler handles job card report endpoints.
type ReportHandler struct {
	reportService  service.ReportService
	sessionService service.SessionService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService, sessionService service.SessionService) *ReportHandler {
	return &ReportHandler{reportService: reportService, sessionService: sessionService}
}

// JobCardRequest is the request body for report rendering. When Record is
// omitted the record saved in the current session is used.
type JobCardRequest struct {
	Record *domain.JobDescriptionRecord `json:"record"`
}

// RenderPDF handles POST /api/v1/reports/job-card
// @Summary Render a job card record as an Arabic PDF report
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Param request body JobCardRequest true "Record to render; omit to use the session record"
// @Success 200 {file} binary "Rendered PDF"
// @Failure 400 {object} APIResponse "Empty record"
// @Failure 500 {object} APIResponse "Report fonts missing"
// @Security BearerAuth
// @Router /reports/job-card [post]
func (h *ReportHandler) RenderPDF(c *gin.Context) {
	record, ok := h.resolveRecord(c)
	if !ok {
		return
	}

	out, err := h.reportService.RenderPDF(c.Request.Context(), record)
	if err != nil {
		HandleError(c, err)
		return
	}
	streamDocument(c, out, domain.TemplateContentTypes[domain.TemplateFormatPDF], "job-card.pdf")
}

// RenderDOCX handles POST /api/v1/reports/job-card/docx
// @Summary Render a job card record as a tabular DOCX form
// @Tags reports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param request body JobCardRequest true "Record to render; omit to use the session record"
// @Success 200 {file} binary "Rendered DOCX"
// @Failure 400 {object} APIResponse "Missing record"
// @Security BearerAuth
// @Router /reports/job-card/docx [post]
func (h *ReportHandler) RenderDOCX(c *gin.Context) {
	record, ok := h.resolveRecord(c)
	if !ok {
		return
	}

	out, err := h.reportService.RenderDOCX(c.Request.Context(), record)
	if err != nil {
		HandleError(c, err)
		return
	}
	streamDocument(c, out, domain.TemplateContentTypes[domain.TemplateFormatDOCX], "job-card.docx")
}

// Template handles GET /api/v1/templates/job-card
// @Summary Download the standard job card template with placeholders
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Success 200 {file} binary "Template DOCX"
// @Router /templates/job-card [get]
func (h *ReportHandler) Template(c *gin.Context) {
	out, err := h.reportService.Template(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	streamDocument(c, out, domain.TemplateContentTypes[domain.TemplateFormatDOCX], "job-card-template.docx")
}

// resolveRecord reads the record from the request body, falling back to the
// session record when the body omits it.
func (h *ReportHandler) resolveRecord(c *gin.Context) (*domain.JobDescriptionRecord, bool) {
	var req JobCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return nil, false
	}
	if req.Record != nil {
		return req.Record, true
	}

	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusBadRequest, "MISSING_RECORD", "no record in request and no active session")
		return nil, false
	}
	sess, err := h.sessionService.Get(sessionID)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	if sess.Record == nil {
		RespondError(c, http.StatusBadRequest, "MISSING_RECORD", "no record in request and none saved in session")
		return nil, false
	}
	return sess.Record, true
}
