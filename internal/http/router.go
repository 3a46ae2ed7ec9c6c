// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sweetspot/internal/http/handlers"
	"sweetspot/internal/http/middleware"
	"sweetspot/internal/view"
)

type RouterDeps struct {
	Planner handlers.Planner
	Options handlers.Options
	Logger  *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Logger), middleware.Recovery())
	r.SetHTMLTemplate(view.Templates())

	pages := handlers.NewPageHandler(deps.Planner, deps.Options)
	r.GET("/", pages.Index)
	r.POST("/itineraries", pages.Submit)

	api := handlers.NewItineraryHandler(deps.Planner, deps.Options)
	r.POST("/api/itineraries", api.Create)
	r.GET("/api/share", api.Share)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
