package workout

import "time"

// Workout is the plan of one weekday for a user. A nil or blank Title makes
// the day a rest day.
type Workout struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	DayOfWeek string    `gorm:"column:day_of_week;not null"`
	Title     *string   `gorm:"type:text"`
	Focus     *string   `gorm:"type:text"`
	ImageURL  *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Exercise is one ordered movement of a Workout.
type Exercise struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	WorkoutID     string    `gorm:"type:uuid;index;not null"`
	Name          string    `gorm:"not null"`
	Sets          int       `gorm:"not null;default:0"`
	Reps          int       `gorm:"not null;default:0"`
	WeightKg      *float64  `gorm:"type:numeric(6,2)"`
	ImageURL      *string   `gorm:"type:text"`
	ExerciseOrder int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Exercise) TableName() string {
	return "workout_exercises"
}

// Completion records that a workout was finished during a given week.
type Completion struct {
	UserID      string    `gorm:"type:uuid;primaryKey"`
	WorkoutID   string    `gorm:"type:uuid;primaryKey"`
	WeekStart   time.Time `gorm:"type:date;primaryKey"`
	CompletedAt time.Time `gorm:"autoCreateTime"`
}

func (Completion) TableName() string {
	return "workout_completions"
}

type WorkoutWithExercises struct {
	Workout
	Exercises []Exercise
}

type ExerciseInput struct {
	Name     string
	Sets     int
	Reps     int
	WeightKg *float64
	ImageURL string
}

type UpsertDayInput struct {
	UserID    string
	Day       time.Weekday
	Title     string
	Focus     string
	ImageURL  string
	Exercises []ExerciseInput
}
