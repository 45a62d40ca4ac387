// Package router assembles the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventworks/backend/internal/events"
	"github.com/eventworks/backend/internal/middleware"
	"github.com/eventworks/backend/internal/team"
	"github.com/eventworks/backend/pkg/response"
)

// New builds the gin engine with all routes and middleware attached.
func New(logger *zap.Logger, corsOrigins string, eventHandler *events.Handler, teamHandler *team.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(corsOrigins))
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	ev := r.Group("/events")
	{
		ev.POST("", middleware.RequireUser(), eventHandler.Create)
		ev.GET("", eventHandler.List)

		// Organizing team routes sit under the static /events/orgs prefix so
		// they never collide with the :id routes below.
		ev.POST("/orgs", middleware.RequireUser(), teamHandler.Add)
		ev.PATCH("/orgs", middleware.RequireUser(), teamHandler.Update)
		ev.DELETE("/orgs", middleware.RequireUser(), teamHandler.Delete)
		ev.GET("/orgs/:eventId", teamHandler.Members)

		ev.GET("/:id", middleware.OptionalUser(), eventHandler.Get)
		ev.PATCH("/:id", middleware.RequireUser(), eventHandler.Update)
		ev.DELETE("/:id", middleware.RequireUser(), eventHandler.Delete)
	}

	return r
}
