package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	workoutdomain "fitness-app-go/internal/domain/workout"
)

type WorkoutRepository struct {
	mu          sync.RWMutex
	workouts    map[string]workoutdomain.Workout
	exercises   map[string][]workoutdomain.Exercise
	completions map[completionKey]workoutdomain.Completion
}

type completionKey struct {
	userID    string
	workoutID string
	weekStart string
}

func NewWorkoutRepository() *WorkoutRepository {
	return &WorkoutRepository{
		workouts:    make(map[string]workoutdomain.Workout),
		exercises:   make(map[string][]workoutdomain.Exercise),
		completions: make(map[completionKey]workoutdomain.Completion),
	}
}

// Transaction runs fn directly. Each call is atomic on its own, which is all
// a single-process store offers.
func (r *WorkoutRepository) Transaction(ctx context.Context, fn func(workoutdomain.Repository) error) error {
	return fn(r)
}

func (r *WorkoutRepository) ListWorkouts(ctx context.Context, userID string) ([]workoutdomain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]workoutdomain.Workout, 0)
	for _, w := range r.workouts {
		if w.UserID == userID {
			items = append(items, w)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *WorkoutRepository) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*workoutdomain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workouts[workoutID]
	if !ok || w.UserID != userID {
		return nil, workoutdomain.ErrWorkoutNotFound
	}
	return &w, nil
}

func (r *WorkoutRepository) GetWorkoutByDay(ctx context.Context, userID, day string) (*workoutdomain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.workouts {
		if w.UserID == userID && w.DayOfWeek == day {
			return &w, nil
		}
	}
	return nil, workoutdomain.ErrWorkoutNotFound
}

func (r *WorkoutRepository) CreateWorkout(ctx context.Context, workout *workoutdomain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now().UTC()
	}
	r.workouts[workout.ID] = *workout
	return nil
}

func (r *WorkoutRepository) UpdateWorkout(ctx context.Context, workout *workoutdomain.Workout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.workouts[workout.ID]
	if !ok || existing.UserID != workout.UserID {
		return workoutdomain.ErrWorkoutNotFound
	}
	existing.Title = workout.Title
	existing.Focus = workout.Focus
	existing.ImageURL = workout.ImageURL
	existing.UpdatedAt = workout.UpdatedAt
	r.workouts[workout.ID] = existing
	return nil
}

func (r *WorkoutRepository) GetExercisesByWorkoutIDs(ctx context.Context, workoutIDs []string) (map[string][]workoutdomain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]workoutdomain.Exercise, len(workoutIDs))
	for _, id := range workoutIDs {
		if items, ok := r.exercises[id]; ok {
			copied := make([]workoutdomain.Exercise, len(items))
			copy(copied, items)
			result[id] = copied
		}
	}
	return result, nil
}

func (r *WorkoutRepository) ReplaceExercises(ctx context.Context, workoutID string, exercises []workoutdomain.Exercise) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(exercises) == 0 {
		delete(r.exercises, workoutID)
		return nil
	}
	copied := make([]workoutdomain.Exercise, len(exercises))
	copy(copied, exercises)
	sort.SliceStable(copied, func(i, j int) bool { return copied[i].ExerciseOrder < copied[j].ExerciseOrder })
	r.exercises[workoutID] = copied
	return nil
}

func (r *WorkoutRepository) AddCompletion(ctx context.Context, completion *workoutdomain.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := completionKey{
		userID:    completion.UserID,
		workoutID: completion.WorkoutID,
		weekStart: completion.WeekStart.Format("2006-01-02"),
	}
	if _, ok := r.completions[key]; ok {
		return nil
	}
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}
	r.completions[key] = *completion
	return nil
}

func (r *WorkoutRepository) ListCompletedWorkoutIDs(ctx context.Context, userID string, weekStart time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	week := weekStart.Format("2006-01-02")
	items := make([]workoutdomain.Completion, 0)
	for key, c := range r.completions {
		if key.userID == userID && key.weekStart == week {
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CompletedAt.Before(items[j].CompletedAt) })

	ids := make([]string, 0, len(items))
	for _, c := range items {
		ids = append(ids, c.WorkoutID)
	}
	return ids, nil
}
