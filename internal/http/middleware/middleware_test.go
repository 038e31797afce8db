// README: Tests for session binding and panic recovery middleware.
package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxifare/internal/config"
	"taxifare/internal/http/middleware"
	"taxifare/internal/modules/session"
)

func newTestRouter(m *session.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Session(m))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.CurrentSession(c).ID())
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}

func TestSession_NewCookieIssued(t *testing.T) {
	m := session.NewManager(context.Background(), nil, nil, config.SessionConfig{})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(w)
	require.NotNil(t, ck)
	assert.Equal(t, w.Body.String(), ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, 1, m.Len())
}

func TestSession_ExistingCookieReused(t *testing.T) {
	m := session.NewManager(context.Background(), nil, nil, config.SessionConfig{})
	r := newTestRouter(m)
	s := m.Create()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: s.ID()})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, s.ID(), w.Body.String())
	assert.Nil(t, sessionCookie(w), "no new cookie for a known session")
	assert.Equal(t, 1, m.Len())
}

func TestSession_UnknownCookieReplaced(t *testing.T) {
	m := session.NewManager(context.Background(), nil, nil, config.SessionConfig{})
	r := newTestRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "stale"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	ck := sessionCookie(w)
	require.NotNil(t, ck)
	assert.NotEqual(t, "stale", ck.Value)
}

func TestRecovery(t *testing.T) {
	m := session.NewManager(context.Background(), nil, nil, config.SessionConfig{})
	r := newTestRouter(m)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
