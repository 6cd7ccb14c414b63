package handler

import (
	"net/http"

	authdomain "fitness-app-go/internal/domain/auth"
	userdomain "fitness-app-go/internal/domain/user"
	workoutdomain "fitness-app-go/internal/domain/workout"
	"fitness-app-go/internal/metrics"
	"fitness-app-go/pkg/logger"
)

const defaultMaxAvatarBytes = 5 << 20

type Handlers struct {
	Auth     *authdomain.Service
	Users    *userdomain.Service
	Workouts *workoutdomain.Service

	metrics        *metrics.Manager
	log            logger.Logger
	maxAvatarBytes int64
}

func New(auth *authdomain.Service, users *userdomain.Service, workouts *workoutdomain.Service, m *metrics.Manager, log logger.Logger, maxAvatarBytes int64) *Handlers {
	if maxAvatarBytes <= 0 {
		maxAvatarBytes = defaultMaxAvatarBytes
	}
	return &Handlers{
		Auth:           auth,
		Users:          users,
		Workouts:       workouts,
		metrics:        m,
		log:            log,
		maxAvatarBytes: maxAvatarBytes,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
