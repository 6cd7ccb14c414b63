package handler

import (
	"errors"
	"net/http"

	userdomain "fitness-app-go/internal/domain/user"
	"fitness-app-go/internal/transport/httpserver/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Users.Register(r.Context(), userdomain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	token, err := h.Auth.Issue(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.log.Info("auth: user registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: toProfileResponse(*user)})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	token, user, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrInvalidCredentials) {
			h.metrics.CounterLogins.WithLabelValues("rejected").Inc()
			h.log.BusinessError("auth: login rejected", err)
		}
		h.writeDomainError(w, r, err)
		return
	}

	h.metrics.CounterLogins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: toProfileResponse(*user)})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if ok {
		if err := h.Auth.Logout(r.Context(), token); err != nil {
			h.writeDomainError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
