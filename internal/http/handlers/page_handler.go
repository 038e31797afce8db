// README: Browser-facing handlers: page render, form trigger, cancel and map image.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taxifare/internal/http/middleware"
	"taxifare/internal/modules/ride"
	"taxifare/internal/modules/session"
	"taxifare/internal/types"
	"taxifare/internal/view"
)

// MapRenderer produces a raster map image for the page.
type MapRenderer interface {
	Render(ctx context.Context, m view.Map) ([]byte, error)
}

type PageHandler struct {
	sessions *session.Manager
	maps     MapRenderer
	endpoint string
	now      func() time.Time
}

// NewPageHandler builds the handler; maps may be nil when no static map key is configured.
func NewPageHandler(sessions *session.Manager, maps MapRenderer, endpoint string) *PageHandler {
	return &PageHandler{sessions: sessions, maps: maps, endpoint: endpoint, now: time.Now}
}

// Show handles GET /.
func (h *PageHandler) Show(c *gin.Context) {
	page, err := h.page(c)
	if err != nil {
		log.Printf("render page: %v", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, view.PageTemplate, page)
}

// Predict handles POST /predict. It waits for the prediction while the
// browser is connected and always redirects back to the page.
func (h *PageHandler) Predict(c *gin.Context) {
	s := middleware.CurrentSession(c)

	var form ride.Form
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("session %s: bind form: %v", s.ID(), err)
	}
	req := ride.Collect(form, h.now())

	done, err := s.Trigger(h.sessions.Context(), req)
	switch {
	case errors.Is(err, session.ErrPending):
	case err != nil:
		log.Printf("session %s: trigger: %v", s.ID(), err)
	default:
		select {
		case <-done:
		case <-c.Request.Context().Done():
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Inputs handles POST /inputs: the edited fields replace the session's
// current request so the map follows them. No prediction is made.
func (h *PageHandler) Inputs(c *gin.Context) {
	s := middleware.CurrentSession(c)

	var form ride.Form
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("session %s: bind form: %v", s.ID(), err)
	}
	if err := s.SetRequest(ride.Collect(form, h.now())); err != nil {
		log.Printf("session %s: set inputs: %v", s.ID(), err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Cancel handles POST /cancel.
func (h *PageHandler) Cancel(c *gin.Context) {
	middleware.CurrentSession(c).Cancel()
	c.Redirect(http.StatusSeeOther, "/")
}

// MapImage handles GET /map.png.
func (h *PageHandler) MapImage(c *gin.Context) {
	if h.maps == nil {
		writeError(c, http.StatusNotFound, "static map not configured")
		return
	}
	snap, err := middleware.CurrentSession(c).Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	img, err := h.maps.Render(c.Request.Context(), view.BuildMap(snap.Request))
	if err != nil {
		log.Printf("static map: %v", err)
		writeError(c, http.StatusBadGateway, "static map unavailable")
		return
	}
	c.Data(http.StatusOK, "image/png", img)
}

func (h *PageHandler) page(c *gin.Context) (view.Page, error) {
	snap, err := middleware.CurrentSession(c).Snapshot(c.Request.Context())
	if err != nil {
		return view.Page{}, err
	}
	in := view.Input{
		Request:  snap.Request,
		Outcome:  snap.Outcome,
		History:  snap.History,
		Pending:  snap.State == session.StatePending,
		Endpoint: h.endpoint,
	}
	if h.maps != nil {
		center := types.Midpoint(snap.Request.Pickup, snap.Request.Dropoff)
		in.MapImage = fmt.Sprintf("/map.png?c=%.6f,%.6f", center.Lat, center.Lng)
	}
	return view.Build(in), nil
}
