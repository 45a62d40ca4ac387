package events

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventworks/backend/internal/middleware"
	"github.com/eventworks/backend/internal/models"
	"github.com/eventworks/backend/pkg/response"
)

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// EventRequest is the body for POST /events and PATCH /events/:id.
type EventRequest struct {
	Name               string `json:"name" binding:"required"`
	Description        string `json:"description" binding:"required"`
	StartsAt           string `json:"starts_at" binding:"required"`
	EndsAt             string `json:"ends_at" binding:"required"`
	Location           string `json:"location" binding:"required"`
	RegistrationStatus string `json:"registration_status"`
	IsLimited          bool   `json:"is_limited"`
	ParticipantLimit   *int   `json:"participant_limit"`
}

func (req EventRequest) toInput(c *gin.Context) (Input, bool) {
	startsAt, err := parseTime(req.StartsAt)
	if err != nil {
		response.BadRequest(c, "invalid starts_at")
		return Input{}, false
	}
	endsAt, err := parseTime(req.EndsAt)
	if err != nil {
		response.BadRequest(c, "invalid ends_at")
		return Input{}, false
	}
	status := models.RegistrationStatus(req.RegistrationStatus)
	if req.RegistrationStatus == "" {
		status = models.RegistrationOpen
	}
	return Input{
		Name:               req.Name,
		Description:        req.Description,
		StartsAt:           startsAt,
		EndsAt:             endsAt,
		Location:           req.Location,
		RegistrationStatus: status,
		IsLimited:          req.IsLimited,
		ParticipantLimit:   req.ParticipantLimit,
	}, true
}

// Handler handles event HTTP endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates an event handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// Create handles POST /events.
func (h *Handler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	view, err := h.service.Create(c.Request.Context(), in, requesterID)
	if err != nil {
		h.logger.Warn("create event failed", zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.Created(c, view)
}

// Update handles PATCH /events/:id.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	in, ok := req.toInput(c)
	if !ok {
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	view, err := h.service.Update(c.Request.Context(), id, in, requesterID)
	if err != nil {
		h.logger.Warn("update event failed", zap.Int64("event_id", id), zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.OK(c, view)
}

// Get handles GET /events/:id. The X-User-Id header is optional.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	view, err := h.service.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, view)
}

// List handles GET /events?page=&size=&ownerId=&status=.
func (h *Handler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		response.BadRequest(c, "page must be zero or positive")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size <= 0 {
		response.BadRequest(c, "size must be positive")
		return
	}
	params := ListParams{Page: page, Size: size}
	if raw := c.Query("ownerId"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid ownerId")
			return
		}
		params.OwnerID = &ownerID
	}
	if raw := c.Query("status"); raw != "" {
		status := models.RegistrationStatus(raw)
		params.Status = &status
	}

	views, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, views)
}

// Delete handles DELETE /events/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}
	requesterID := c.MustGet(middleware.ContextUserID).(int64)

	if err := h.service.Delete(c.Request.Context(), id, requesterID); err != nil {
		h.logger.Warn("delete event failed", zap.Int64("event_id", id), zap.Int64("requester_id", requesterID), zap.Error(err))
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
