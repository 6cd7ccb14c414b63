package workout

import (
	"context"
	"errors"
	"time"

	domain "fitness-app-go/internal/domain/workout"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

// Workout operations

func (r *PostgresRepository) ListWorkouts(ctx context.Context, userID string) ([]domain.Workout, error) {
	var items []domain.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetWorkoutByID(ctx context.Context, userID, workoutID string) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, workoutID).
		First(&workout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *PostgresRepository) GetWorkoutByDay(ctx context.Context, userID, day string) (*domain.Workout, error) {
	var workout domain.Workout
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ?", userID, day).
		First(&workout).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *PostgresRepository) CreateWorkout(ctx context.Context, workout *domain.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *PostgresRepository) UpdateWorkout(ctx context.Context, workout *domain.Workout) error {
	return r.db.WithContext(ctx).
		Model(&domain.Workout{}).
		Where("id = ? AND user_id = ?", workout.ID, workout.UserID).
		Updates(map[string]interface{}{
			"title":      workout.Title,
			"focus":      workout.Focus,
			"image_url":  workout.ImageURL,
			"updated_at": workout.UpdatedAt,
		}).Error
}

// Exercise operations

func (r *PostgresRepository) GetExercisesByWorkoutIDs(ctx context.Context, workoutIDs []string) (map[string][]domain.Exercise, error) {
	result := make(map[string][]domain.Exercise, len(workoutIDs))
	if len(workoutIDs) == 0 {
		return result, nil
	}

	var exercises []domain.Exercise
	if err := r.db.WithContext(ctx).
		Where("workout_id IN ?", workoutIDs).
		Order("exercise_order asc").
		Find(&exercises).Error; err != nil {
		return nil, err
	}

	for _, ex := range exercises {
		result[ex.WorkoutID] = append(result[ex.WorkoutID], ex)
	}

	return result, nil
}

func (r *PostgresRepository) ReplaceExercises(ctx context.Context, workoutID string, exercises []domain.Exercise) error {
	if err := r.db.WithContext(ctx).Where("workout_id = ?", workoutID).Delete(&domain.Exercise{}).Error; err != nil {
		return err
	}

	if len(exercises) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&exercises).Error
}

// Completion operations

func (r *PostgresRepository) AddCompletion(ctx context.Context, completion *domain.Completion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(completion).Error
}

func (r *PostgresRepository) ListCompletedWorkoutIDs(ctx context.Context, userID string, weekStart time.Time) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&domain.Completion{}).
		Where("user_id = ? AND week_start = ?", userID, weekStart.Format("2006-01-02")).
		Order("completed_at asc").
		Pluck("workout_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
