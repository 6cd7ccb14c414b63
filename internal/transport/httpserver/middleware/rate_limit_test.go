package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitness-app-go/internal/transport/httpserver/middleware"
	"fitness-app-go/pkg/logger"

	"github.com/go-redis/redis_rate/v9"
	"github.com/stretchr/testify/assert"
)

type stubLimiter struct {
	allowed int
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	return &redis_rate.Result{Limit: limit, Allowed: s.allowed, RetryAfter: 1500 * time.Millisecond}, nil
}

func TestRateLimit(t *testing.T) {
	testCases := []struct {
		name           string
		limiter        *stubLimiter
		expectedStatus int
		expectedCalled bool
	}{
		{name: "Allowed", limiter: &stubLimiter{allowed: 1}, expectedStatus: http.StatusOK, expectedCalled: true},
		{name: "Throttled", limiter: &stubLimiter{allowed: 0}, expectedStatus: http.StatusTooManyRequests},
		{name: "LimiterDown", limiter: &stubLimiter{err: errors.New("redis down")}, expectedStatus: http.StatusOK, expectedCalled: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next := &captureHandler{}
			handler := middleware.RateLimit(tc.limiter, "login", 10, logger.Discard())(next)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
			req.RemoteAddr = "10.0.0.1"
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, tc.expectedCalled, next.called)
			assert.Equal(t, []string{"rate::login::10.0.0.1"}, tc.limiter.keys)
			if rr.Code == http.StatusTooManyRequests {
				assert.Equal(t, "2", rr.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRateLimitKeysOnHostOnly(t *testing.T) {
	limiter := &stubLimiter{allowed: 1}
	handler := middleware.RateLimit(limiter, "login", 10, logger.Discard())(&captureHandler{})

	for _, addr := range []string{"203.0.113.7:50001", "203.0.113.7:50002", "[2001:db8::1]:443"} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = addr
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, []string{
		"rate::login::203.0.113.7",
		"rate::login::203.0.113.7",
		"rate::login::2001:db8::1",
	}, limiter.keys)
}
