package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fitness-app-go/internal/transport/httpserver/middleware"
	"fitness-app-go/pkg/plan"
	"github.com/go-chi/chi/v5"
)

// selfUserID returns the authenticated user when it matches the {user_id}
// path parameter. Otherwise the response has already been written.
func selfUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}

	pathUserID := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if pathUserID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return "", false
	}
	if pathUserID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "access to another user's plan is not allowed")
		return "", false
	}
	return user.ID, true
}

func parseDayParam(value string) (time.Weekday, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("day is required")
	}
	day, ok := plan.ParseWeekday(value)
	if !ok {
		return 0, fmt.Errorf("unknown day %q", value)
	}
	return day, nil
}
