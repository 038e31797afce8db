// README: HTTP shell; wires middleware and handlers onto a gin engine.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/http/handlers"
	"taxifare/internal/http/middleware"
	"taxifare/internal/modules/session"
	"taxifare/internal/view"
)

type ServerDeps struct {
	Sessions *session.Manager
	Maps     handlers.MapRenderer
	Endpoint string
}

type Server struct {
	sessions *session.Manager
	page     *handlers.PageHandler
	fare     *handlers.FareHandler
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		sessions: deps.Sessions,
		page:     handlers.NewPageHandler(deps.Sessions, deps.Maps, deps.Endpoint),
		fare:     handlers.NewFareHandler(deps.Sessions, deps.Endpoint),
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())
	r.SetHTMLTemplate(view.Templates())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	registerRoutes(r.Group("/", middleware.Session(s.sessions)), s.page, s.fare)
	return r
}
