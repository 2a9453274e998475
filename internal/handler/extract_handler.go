package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qalib/internal/docsource"
	"qalib/internal/domain"
	"qalib/internal/middleware"
	"qalib/internal/service"
)

// ExtractHandler handles AI extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
	sessionService service.SessionService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService, sessionService service.SessionService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService, sessionService: sessionService}
}

// ExtractRequest is the request body for POST /extract.
type ExtractRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language"`
	Save     bool   `json:"save"`
}

// Extract handles POST /api/v1/extract
// @Summary Extract a job card record from free text or a DOCX upload
// @Description Run AI extraction over job description text and return a structured record; optionally save it to the current session. Accepts either a JSON body or multipart form data with a "source" DOCX file.
// @Tags extract
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body ExtractRequest true "Text to extract from"
// @Success 200 {object} APIResponse{data=service.ExtractResult}
// @Failure 400 {object} APIResponse "Missing or empty text"
// @Failure 502 {object} APIResponse "Extraction provider failed"
// @Security BearerAuth
// @Router /extract [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	req, ok := h.bindExtractRequest(c)
	if !ok {
		return
	}

	result, err := h.extractService.Extract(c.Request.Context(), service.ExtractInput{
		Text:     req.Text,
		Language: req.Language,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if req.Save {
		if sessionID, ok := middleware.GetSessionID(c); ok {
			if err := h.saveToSession(sessionID, result.Record); err != nil {
				HandleError(c, err)
				return
			}
		}
	}

	RespondOK(c, result)
}

// saveToSession stores the extracted record in the session. A record already
// saved there holds manual edits, so its non-empty fields win over the
// extraction.
func (h *ExtractHandler) saveToSession(sessionID string, record *domain.JobDescriptionRecord) error {
	sess, err := h.sessionService.Get(sessionID)
	if err != nil {
		return err
	}
	if sess.Record != nil {
		record = h.extractService.Prefill(sess.Record, record)
	}
	_, err = h.sessionService.SaveRecord(sessionID, record)
	return err
}

// bindExtractRequest reads the extraction input from either a JSON body or a
// multipart form carrying a DOCX source file. For uploads, the paragraph text
// is joined with newlines before it reaches the provider.
func (h *ExtractHandler) bindExtractRequest(c *gin.Context) (ExtractRequest, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		source, _, ok := readFilePart(c, "source")
		if !ok {
			return ExtractRequest{}, false
		}
		paras, err := docsource.Paragraphs(source)
		if err != nil {
			HandleError(c, err)
			return ExtractRequest{}, false
		}
		return ExtractRequest{
			Text:     strings.Join(paras, "\n"),
			Language: c.PostForm("language"),
			Save:     c.PostForm("save") == "true",
		}, true
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "text field is required")
		return ExtractRequest{}, false
	}
	return req, true
}
