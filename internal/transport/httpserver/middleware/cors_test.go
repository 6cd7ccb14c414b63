package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fitness-app-go/internal/transport/httpserver/middleware"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	next := &captureHandler{}
	handler := middleware.NewCORS([]string{"http://localhost:5173/", " "})(next)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, next.called)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	next.called = false
	req = httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.False(t, next.called)
}

func TestCORS_AnyOrigin(t *testing.T) {
	handler := middleware.NewCORS([]string{"*"})(&captureHandler{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://anything.example")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "http://anything.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
