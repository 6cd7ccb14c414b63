package handler

import (
	"errors"
	"net/http"

	userdomain "fitness-app-go/internal/domain/user"
	"fitness-app-go/internal/transport/httpserver/middleware"
)

// multipart overhead allowed on top of the avatar itself
const formOverheadBytes = 1 << 20

type profileResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	AvatarURL *string  `json:"avatar_url"`
	Height    *float64 `json:"height"`
	Weight    *float64 `json:"weight"`
	BodyFat   *float64 `json:"body_fat"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*profile))
}

// UpdateProfile takes multipart/form-data with name, height, weight and an
// optional avatar file. Url-encoded forms are accepted when no avatar is sent.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxAvatarBytes+formOverheadBytes)
	if err := r.ParseMultipartForm(formOverheadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "avatar_too_large", "avatar image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid form body")
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	input := userdomain.UpdateProfileInput{
		UserID: user.ID,
		Name:   r.FormValue("name"),
		Height: r.FormValue("height"),
		Weight: r.FormValue("weight"),
	}

	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["avatar"]; len(files) > 0 {
			header := files[0]
			file, err := header.Open()
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_form", "unreadable avatar file")
				return
			}
			defer file.Close()

			input.Avatar = &userdomain.AvatarUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Size:        header.Size,
				Body:        file,
			}
		}
	}

	updated, err := h.Users.UpdateProfile(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(*updated))
}

// ChangePassword signs the user out everywhere and returns a fresh token for
// the caller.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	err := h.Users.ChangePassword(r.Context(), userdomain.ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if err := h.Auth.RevokeAll(r.Context(), user.ID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	token, err := h.Auth.Issue(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func toProfileResponse(user userdomain.User) profileResponse {
	return profileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		Height:    user.HeightCm,
		Weight:    user.WeightKg,
		BodyFat:   user.BodyFat(),
	}
}
