// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"taxifare/internal/http/handlers"
)

func registerRoutes(r *gin.RouterGroup, page *handlers.PageHandler, fare *handlers.FareHandler) {
	r.GET("/", page.Show)
	r.POST("/predict", page.Predict)
	r.POST("/inputs", page.Inputs)
	r.POST("/cancel", page.Cancel)
	r.GET("/map.png", page.MapImage)

	api := r.Group("/api")
	api.GET("/state", fare.State)
	api.GET("/history", fare.History)
	api.POST("/predict", fare.Predict)
	api.POST("/inputs", fare.Inputs)
	api.POST("/cancel", fare.Cancel)
	api.DELETE("/session", fare.Teardown)
}
