package workout

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	// Workout operations
	ListWorkouts(ctx context.Context, userID string) ([]Workout, error)
	GetWorkoutByID(ctx context.Context, userID, workoutID string) (*Workout, error)
	GetWorkoutByDay(ctx context.Context, userID, day string) (*Workout, error)
	CreateWorkout(ctx context.Context, workout *Workout) error
	UpdateWorkout(ctx context.Context, workout *Workout) error

	// Exercise operations
	GetExercisesByWorkoutIDs(ctx context.Context, workoutIDs []string) (map[string][]Exercise, error)
	ReplaceExercises(ctx context.Context, workoutID string, exercises []Exercise) error

	// Completion operations
	AddCompletion(ctx context.Context, completion *Completion) error
	ListCompletedWorkoutIDs(ctx context.Context, userID string, weekStart time.Time) ([]string, error)
}
