package team

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventworks/backend/internal/middleware"
	"github.com/eventworks/backend/internal/models"
	"github.com/eventworks/backend/pkg/response"
)

// MemberRequest is the body for POST /events/orgs and PATCH /events/orgs.
type MemberRequest struct {
	EventID int64  `json:"event_id" binding:"required,gt=0"`
	UserID  int64  `json:"user_id" binding:"required,gt=0"`
	Role    string `json:"role" binding:"required"`
}

func (req MemberRequest) toInput(c *gin.Context) (MemberInput, bool) {
	role := models.Role(req.Role)
	if !role.Valid() {
		response.BadRequest(c, "role must be EXECUTOR or MANAGER")
		return MemberInput{}, false
	}
	return MemberInput{EventID: req.EventID, UserID: req.UserID, Role: role}, true
}

// Handler handles organizing-team HTTP endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a team handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Add handles POST /events/orgs.
func (h *Handler) Add(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	view, err := h.service.Add(c.Request.Context(), requesterID, in)
	if err != nil {
		h.logger.Warn("add team member failed", zap.Int64("event_id", in.EventID),
			zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.Created(c, view)
}

// Update handles PATCH /events/orgs.
func (h *Handler) Update(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	view, err := h.service.Update(c.Request.Context(), requesterID, in)
	if err != nil {
		h.logger.Warn("update team member failed", zap.Int64("event_id", in.EventID),
			zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.OK(c, view)
}

// Delete handles DELETE /events/orgs?eventId=&userId=.
func (h *Handler) Delete(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Query("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.BadRequest(c, "eventId must be a positive integer")
		return
	}
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "userId must be a positive integer")
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	if err := h.service.Delete(c.Request.Context(), requesterID, eventID, userID); err != nil {
		h.logger.Warn("delete team member failed", zap.Int64("event_id", eventID),
			zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

// Members handles GET /events/orgs/:eventId. The listing is public.
func (h *Handler) Members(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("eventId"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	views, err := h.service.Members(c.Request.Context(), eventID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, views)
}
