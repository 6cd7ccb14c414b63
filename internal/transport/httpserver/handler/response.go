package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	authdomain "fitness-app-go/internal/domain/auth"
	userdomain "fitness-app-go/internal/domain/user"
	workoutdomain "fitness-app-go/internal/domain/workout"
)

const invalidCredentialsMessage = "Credenciais inválidas."

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps service errors onto the error envelope. Anything
// unknown is logged and reported as an internal error.
func (h *Handlers) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *userdomain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
			Code:    "validation_failed",
			Message: verr.Error(),
			Field:   verr.Field,
		}})
	case errors.Is(err, userdomain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", invalidCredentialsMessage)
	case errors.Is(err, userdomain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", "email already registered")
	case errors.Is(err, userdomain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "not_found", "user not found")
	case errors.Is(err, userdomain.ErrUnsupportedAvatar):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_avatar", "avatar must be a jpeg, png or webp image")
	case errors.Is(err, userdomain.ErrAvatarTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "avatar_too_large", "avatar image too large")
	case errors.Is(err, authdomain.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
	case errors.Is(err, workoutdomain.ErrWorkoutNotFound):
		writeError(w, http.StatusNotFound, "not_found", "workout not found")
	case errors.Is(err, workoutdomain.ErrRestDay):
		writeError(w, http.StatusConflict, "rest_day", "rest days cannot be completed")
	case errors.Is(err, workoutdomain.ErrInvalidExercise):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("http: request failed", err, "method", r.Method, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
