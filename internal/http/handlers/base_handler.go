// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxifare/internal/modules/prediction"
	"taxifare/internal/modules/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePredictError(c *gin.Context, err error) {
	var remote *prediction.RemoteError
	switch {
	case errors.Is(err, session.ErrPending):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrCancelled):
		writeError(c, http.StatusConflict, err.Error())
	case errors.As(err, &remote):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
