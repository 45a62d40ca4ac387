package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventworks/backend/pkg/response"
)

const (
	// HeaderUserID carries the requester identity, asserted by the caller
	// and trusted as-is.
	HeaderUserID = "X-User-Id"
	// ContextUserID is the key for the requester id in gin context.
	ContextUserID = "user_id"
)

// RequireUser extracts a positive X-User-Id header into the context and
// rejects the request with 400 when it is missing or malformed.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUserID(c)
		if !ok {
			c.Abort()
			return
		}
		if id == nil {
			response.BadRequest(c, "missing "+HeaderUserID+" header")
			c.Abort()
			return
		}
		c.Set(ContextUserID, *id)
		c.Next()
	}
}

// OptionalUser extracts X-User-Id when present. An absent header leaves the
// request anonymous; a malformed one is still rejected.
func OptionalUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUserID(c)
		if !ok {
			c.Abort()
			return
		}
		if id != nil {
			c.Set(ContextUserID, *id)
		}
		c.Next()
	}
}

// UserID returns the requester id from the context, or nil for anonymous
// requests.
func UserID(c *gin.Context) *int64 {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	id := v.(int64)
	return &id
}

func parseUserID(c *gin.Context) (*int64, bool) {
	raw := c.GetHeader(HeaderUserID)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, HeaderUserID+" must be a positive integer")
		return nil, false
	}
	return &id, true
}
