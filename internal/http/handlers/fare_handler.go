// README: JSON API over the same session flow the page uses.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taxifare/internal/http/middleware"
	"taxifare/internal/modules/history"
	"taxifare/internal/modules/ride"
	"taxifare/internal/modules/session"
	"taxifare/internal/view"
)

type FareHandler struct {
	sessions *session.Manager
	endpoint string
	now      func() time.Time
}

func NewFareHandler(sessions *session.Manager, endpoint string) *FareHandler {
	return &FareHandler{sessions: sessions, endpoint: endpoint, now: time.Now}
}

type predictReq struct {
	PickupDate     string   `json:"pickup_date"`
	PickupTime     string   `json:"pickup_time"`
	PickupLat      *float64 `json:"pickup_latitude"`
	PickupLon      *float64 `json:"pickup_longitude"`
	DropoffLat     *float64 `json:"dropoff_latitude"`
	DropoffLon     *float64 `json:"dropoff_longitude"`
	PassengerCount *int     `json:"passenger_count"`
}

func (r predictReq) form() ride.Form {
	f := ride.Form{PickupDate: r.PickupDate, PickupTime: r.PickupTime}
	f.PickupLat = floatField(r.PickupLat)
	f.PickupLon = floatField(r.PickupLon)
	f.DropoffLat = floatField(r.DropoffLat)
	f.DropoffLon = floatField(r.DropoffLon)
	if r.PassengerCount != nil {
		f.PassengerCount = strconv.Itoa(*r.PassengerCount)
	}
	return f
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

type predictResp struct {
	Fare    float64      `json:"fare"`
	Message string       `json:"message"`
	Request ride.Request `json:"request"`
	History int          `json:"history_len"`
}

// Predict handles POST /api/predict and answers once the prediction resolves.
func (h *FareHandler) Predict(c *gin.Context) {
	var req predictReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	s := middleware.CurrentSession(c)
	rideReq := ride.Collect(req.form(), h.now())

	done, err := s.Trigger(h.sessions.Context(), rideReq)
	if err != nil {
		writePredictError(c, err)
		return
	}
	select {
	case <-done:
	case <-c.Request.Context().Done():
		writeError(c, http.StatusRequestTimeout, "client went away")
		return
	}

	snap, err := s.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	switch {
	case snap.Outcome == nil:
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	case snap.Outcome.Err != nil:
		writePredictError(c, snap.Outcome.Err)
		return
	}
	msg := view.ResultMessage(snap.Outcome)
	writeJSON(c, http.StatusOK, predictResp{
		Fare:    float64(snap.Outcome.Fare.Fare),
		Message: msg.Text,
		Request: snap.Request,
		History: len(snap.History),
	})
}

// State handles GET /api/state: the same page model the HTML view renders.
func (h *FareHandler) State(c *gin.Context) {
	h.writeState(c, middleware.CurrentSession(c))
}

// Inputs handles POST /api/inputs. Fields left out keep their current value;
// the request is updated without calling the prediction API.
func (h *FareHandler) Inputs(c *gin.Context) {
	var req predictReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "invalid json")
			return
		}
	}
	s := middleware.CurrentSession(c)
	snap, err := s.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	form := ride.FormOf(snap.Request).Overlay(req.form())
	if err := s.SetRequest(ride.Collect(form, h.now())); err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	h.writeState(c, s)
}

func (h *FareHandler) writeState(c *gin.Context, s *session.Session) {
	snap, err := s.Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"session_id": snap.ID,
		"state":      snap.State,
		"page": view.Build(view.Input{
			Request:  snap.Request,
			Outcome:  snap.Outcome,
			History:  snap.History,
			Pending:  snap.State == session.StatePending,
			Endpoint: h.endpoint,
		}),
	})
}

// History handles GET /api/history.
func (h *FareHandler) History(c *gin.Context) {
	snap, err := middleware.CurrentSession(c).Snapshot(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	entries := snap.History
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(c, http.StatusOK, gin.H{"entries": entries})
}

// Cancel handles POST /api/cancel.
func (h *FareHandler) Cancel(c *gin.Context) {
	cancelled := middleware.CurrentSession(c).Cancel()
	writeJSON(c, http.StatusOK, gin.H{"cancelled": cancelled})
}

// Teardown handles DELETE /api/session, ending the session and its history.
func (h *FareHandler) Teardown(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if err := h.sessions.Teardown(c.Request.Context(), s.ID()); err != nil {
		writeError(c, http.StatusNotFound, err.Error())
		return
	}
	middleware.ClearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
