package workout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitness-app-go/pkg/plan"
	"github.com/google/uuid"
)

type Service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	zone     *time.Location
	now      func() time.Time
}

type Option func(*Service)

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
			s.cacheTTL = ttl
		}
	}
}

// WithWeekZone sets the time zone in which weeks start on Monday 00:00.
func WithWeekZone(zone *time.Location) Option {
	return func(s *Service) {
		if zone != nil {
			s.zone = zone
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		cache: noopCache{},
		zone:  time.UTC,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListWeek returns one entry per weekday, Monday first. Days without a stored
// workout come back as rest entries without an id.
func (s *Service) ListWeek(ctx context.Context, userID string) ([]plan.Entry, error) {
	if cached, ok := s.cache.GetWeek(userID); ok {
		return cached, nil
	}

	workouts, err := s.repo.ListWorkouts(ctx, userID)
	if err != nil {
		return nil, err
	}

	workoutIDs := make([]string, 0, len(workouts))
	for _, w := range workouts {
		workoutIDs = append(workoutIDs, w.ID)
	}

	exercisesByWorkout, err := s.repo.GetExercisesByWorkoutIDs(ctx, workoutIDs)
	if err != nil {
		return nil, err
	}

	planned := make(map[time.Weekday]struct{}, len(workouts))
	entries := make([]plan.Entry, 0, len(plan.WeekOrder))
	for _, w := range workouts {
		if day, ok := plan.ParseWeekday(w.DayOfWeek); ok {
			planned[day] = struct{}{}
		}
		entries = append(entries, toEntry(WorkoutWithExercises{Workout: w, Exercises: exercisesByWorkout[w.ID]}))
	}
	for _, day := range plan.WeekOrder {
		if _, ok := planned[day]; !ok {
			entries = append(entries, plan.Entry{Day: plan.DayName(day), Exercises: []plan.Exercise{}})
		}
	}

	week := plan.NewCatalog(entries).Entries()
	s.cache.SetWeek(userID, week, s.cacheTTL)
	return week, nil
}

// UpsertDay replaces the plan of one weekday. A blank title turns the day
// into a rest day and drops its exercises.
func (s *Service) UpsertDay(ctx context.Context, input UpsertDayInput) (*plan.Entry, error) {
	title := strings.TrimSpace(input.Title)
	inputs := input.Exercises
	if title == "" {
		inputs = nil
	}
	for i, ex := range inputs {
		if strings.TrimSpace(ex.Name) == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrInvalidExercise, i+1)
		}
		if ex.Sets < 0 || ex.Reps < 0 || (ex.WeightKg != nil && *ex.WeightKg < 0) {
			return nil, fmt.Errorf("%w: exercise %d has negative values", ErrInvalidExercise, i+1)
		}
	}

	day := plan.DayName(input.Day)
	var saved WorkoutWithExercises

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		existing, err := tx.GetWorkoutByDay(ctx, input.UserID, day)
		creating := errors.Is(err, ErrWorkoutNotFound)
		if err != nil && !creating {
			return err
		}

		w := Workout{ID: uuid.NewString(), UserID: input.UserID, DayOfWeek: day}
		if !creating {
			w = *existing
		}
		w.Title = optional(title)
		w.Focus = optional(input.Focus)
		w.ImageURL = optional(input.ImageURL)
		w.UpdatedAt = time.Now().UTC()

		if creating {
			err = tx.CreateWorkout(ctx, &w)
		} else {
			err = tx.UpdateWorkout(ctx, &w)
		}
		if err != nil {
			return err
		}

		exercises := make([]Exercise, 0, len(inputs))
		for i, ex := range inputs {
			exercises = append(exercises, Exercise{
				ID:            uuid.NewString(),
				WorkoutID:     w.ID,
				Name:          strings.TrimSpace(ex.Name),
				Sets:          ex.Sets,
				Reps:          ex.Reps,
				WeightKg:      ex.WeightKg,
				ImageURL:      optional(ex.ImageURL),
				ExerciseOrder: i,
			})
		}
		if err := tx.ReplaceExercises(ctx, w.ID, exercises); err != nil {
			return err
		}

		saved = WorkoutWithExercises{Workout: w, Exercises: exercises}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.DeleteWeek(input.UserID)
	entry := toEntry(saved)
	return &entry, nil
}

// Complete records the workout as done in the current week. Repeating the
// call is harmless. Ids that are not UUIDs cannot name a workout.
func (s *Service) Complete(ctx context.Context, userID, workoutID string) error {
	if _, err := uuid.Parse(workoutID); err != nil {
		return ErrWorkoutNotFound
	}
	w, err := s.repo.GetWorkoutByID(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	if w.Title == nil || strings.TrimSpace(*w.Title) == "" {
		return ErrRestDay
	}

	return s.repo.AddCompletion(ctx, &Completion{
		UserID:    userID,
		WorkoutID: workoutID,
		WeekStart: s.weekStart(),
	})
}

func (s *Service) CompletedThisWeek(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.repo.ListCompletedWorkoutIDs(ctx, userID, s.weekStart())
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *Service) Progress(ctx context.Context, userID string) (plan.Progress, error) {
	week, err := s.ListWeek(ctx, userID)
	if err != nil {
		return plan.Progress{}, err
	}
	completed, err := s.CompletedThisWeek(ctx, userID)
	if err != nil {
		return plan.Progress{}, err
	}
	return plan.ComputeProgress(plan.NewCatalog(week), plan.NewTracker(completed...)), nil
}

// CurrentWeekStart is the Monday that completions are currently recorded
// against.
func (s *Service) CurrentWeekStart() time.Time {
	return s.weekStart()
}

// weekStart is the current week's Monday as a UTC date.
func (s *Service) weekStart() time.Time {
	start := plan.WeekStart(s.now().In(s.zone))
	y, m, d := start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toEntry(w WorkoutWithExercises) plan.Entry {
	entry := plan.Entry{
		ID:        w.ID,
		Day:       w.DayOfWeek,
		Title:     deref(w.Title),
		Focus:     deref(w.Focus),
		Image:     deref(w.ImageURL),
		Exercises: make([]plan.Exercise, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		entry.Exercises = append(entry.Exercises, plan.Exercise{
			Name:   ex.Name,
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.WeightKg,
			Image:  deref(ex.ImageURL),
		})
	}
	return entry
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
