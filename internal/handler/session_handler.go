package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qalib/internal/domain"
	"qalib/internal/middleware"
	"qalib/internal/service"
)

// SessionHandler handles working-session endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start handles POST /api/v1/sessions
// @Summary Open a working session
// @Description Create an empty session and return its bearer token
// @Tags sessions
// @Produce json
// @Success 201 {object} APIResponse{data=service.SessionStartOutput}
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	out, err := h.sessionService.Start()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, out)
}

// Current handles GET /api/v1/sessions/current
// @Summary Fetch the current session state
// @Tags sessions
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse "Invalid session"
// @Security BearerAuth
// @Router /sessions/current [get]
func (h *SessionHandler) Current(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "SESSION_INVALID", "missing session context")
		return
	}
	sess, err := h.sessionService.Get(sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// SaveDataRequest is the request body for saving form data into a session.
type SaveDataRequest struct {
	Data domain.FlatRecord `json:"data" binding:"required"`
}

// SaveData handles PUT /api/v1/sessions/current/data
// @Summary Merge flat key/value data into the current session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SaveDataRequest true "Data to merge"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse "Invalid session"
// @Security BearerAuth
// @Router /sessions/current/data [put]
func (h *SessionHandler) SaveData(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "SESSION_INVALID", "missing session context")
		return
	}

	var req SaveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "data field is required")
		return
	}

	sess, err := h.sessionService.SaveData(sessionID, req.Data)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// SaveRecordRequest is the request body for saving a job card record.
type SaveRecordRequest struct {
	Record *domain.JobDescriptionRecord `json:"record" binding:"required"`
}

// SaveRecord handles PUT /api/v1/sessions/current/record
// @Summary Save a job card record into the current session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body SaveRecordRequest true "Record to save"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse "Invalid session"
// @Security BearerAuth
// @Router /sessions/current/record [put]
func (h *SessionHandler) SaveRecord(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "SESSION_INVALID", "missing session context")
		return
	}

	var req SaveRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "record field is required")
		return
	}

	sess, err := h.sessionService.SaveRecord(sessionID, req.Record)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// End handles DELETE /api/v1/sessions/current
// @Summary Close the current session and discard its state
// @Tags sessions
// @Produce json
// @Success 200 {object} APIResponse
// @Security BearerAuth
// @Router /sessions/current [delete]
func (h *SessionHandler) End(c *gin.Context) {
	sessionID, ok := middleware.GetSessionID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "SESSION_INVALID", "missing session context")
		return
	}
	h.sessionService.End(sessionID)
	RespondOK(c, gin.H{"ended": true})
}
