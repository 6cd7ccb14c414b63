package handler

import (
	"net/http"

	workoutdomain "fitness-app-go/internal/domain/workout"
	"fitness-app-go/pkg/plan"
	"github.com/go-chi/chi/v5"
)

type weekResponse struct {
	Items []plan.Entry `json:"items"`
}

type exerciseRequest struct {
	Name   string   `json:"name"`
	Sets   int      `json:"sets"`
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight"`
	Image  string   `json:"image"`
}

type upsertDayRequest struct {
	Title     string            `json:"title"`
	Focus     string            `json:"focus"`
	Image     string            `json:"image"`
	Exercises []exerciseRequest `json:"exercises"`
}

type completionsResponse struct {
	WeekStart  string   `json:"week_start"`
	WorkoutIDs []string `json:"workout_ids"`
}

type progressResponse struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Tier      string  `json:"tier"`
	Message   string  `json:"message"`
}

func (h *Handlers) ListWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfUserID(w, r)
	if !ok {
		return
	}

	week, err := h.Workouts.ListWeek(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, weekResponse{Items: week})
}

func (h *Handlers) UpsertDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfUserID(w, r)
	if !ok {
		return
	}

	day, err := parseDayParam(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var req upsertDayRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := workoutdomain.UpsertDayInput{
		UserID:    userID,
		Day:       day,
		Title:     req.Title,
		Focus:     req.Focus,
		ImageURL:  req.Image,
		Exercises: make([]workoutdomain.ExerciseInput, 0, len(req.Exercises)),
	}
	for _, ex := range req.Exercises {
		input.Exercises = append(input.Exercises, workoutdomain.ExerciseInput{
			Name:     ex.Name,
			Sets:     ex.Sets,
			Reps:     ex.Reps,
			WeightKg: ex.Weight,
			ImageURL: ex.Image,
		})
	}

	entry, err := h.Workouts.UpsertDay(r.Context(), input)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *Handlers) ListCompletions(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfUserID(w, r)
	if !ok {
		return
	}

	ids, err := h.Workouts.CompletedThisWeek(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, completionsResponse{
		WeekStart:  h.Workouts.CurrentWeekStart().Format("2006-01-02"),
		WorkoutIDs: ids,
	})
}

func (h *Handlers) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfUserID(w, r)
	if !ok {
		return
	}

	workoutID := chi.URLParam(r, "workout_id")
	if workoutID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "workout_id is required")
		return
	}

	if err := h.Workouts.Complete(r.Context(), userID, workoutID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.metrics.CounterCompletions.Inc()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := selfUserID(w, r)
	if !ok {
		return
	}

	progress, err := h.Workouts.Progress(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, progressResponse{
		Completed: progress.Completed,
		Total:     progress.Total,
		Percent:   progress.Percent,
		Tier:      progress.Tier.String(),
		Message:   progress.Message,
	})
}
