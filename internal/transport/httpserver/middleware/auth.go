package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fitness-app-go/internal/config"
	authdomain "fitness-app-go/internal/domain/auth"
	userdomain "fitness-app-go/internal/domain/user"
	"fitness-app-go/pkg/logger"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
	tokenKey
)

type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*userdomain.User, error)
}

type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, userID, email, name, avatarURL string) error
}

// BearerAuth resolves the Authorization header against the session store.
type BearerAuth struct {
	verifier TokenVerifier
	profiles ProfileEnsurer
	skipAuth bool
	mockUser User
	log      logger.Logger
}

func NewBearerAuth(cfg config.AuthConfig, verifier TokenVerifier, profiles ProfileEnsurer, log logger.Logger) *BearerAuth {
	return &BearerAuth{
		verifier: verifier,
		profiles: profiles,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:        strings.TrimSpace(cfg.MockUserID),
			Email:     strings.TrimSpace(cfg.MockUserEmail),
			Name:      strings.TrimSpace(cfg.MockUserName),
			AvatarURL: strings.TrimSpace(cfg.MockUserAvatar),
		},
		log: log,
	}
}

func (a *BearerAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			user := a.mockUser
			if user.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			if a.profiles != nil {
				if err := a.profiles.EnsureProfile(r.Context(), user.ID, user.Email, user.Name, user.AvatarURL); err != nil {
					a.log.Error("auth: ensure mock profile failed", "user_id", user.ID, "err", err)
				}
			}
			ctx := WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if a.verifier == nil {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		verified, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			if !errors.Is(err, authdomain.ErrInvalidToken) {
				a.log.InternalError("auth: verify token failed", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			unauthorized(w)
			return
		}

		user := User{
			ID:    verified.ID,
			Email: verified.Email,
			Name:  verified.Name,
		}
		if verified.AvatarURL != nil {
			user.AvatarURL = *verified.AvatarURL
		}

		ctx := WithUser(r.Context(), user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// TokenFromContext returns the bearer token the request was authenticated
// with. It is empty in mock mode.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
